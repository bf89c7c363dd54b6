//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runCLI executes the built quotegraph binary with the given subcommand.
func runCLI(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("quotegraph %s: %w", args[0], err)
	}
	return nil
}

// Fetch downloads the wiki export archive into data/dumps/.
func Fetch() error {
	mg.Deps(Build, Init)
	return runCLI("fetch")
}

// Parse extracts quote records from the downloaded export into data/records/.
func Parse() error {
	mg.Deps(Build, Init)
	return runCLI("parse")
}

// Load builds the SQLite quote graph in data/index/ from extracted records.
func Load() error {
	mg.Deps(Build, Init)
	return runCLI("load")
}

// Pipeline runs fetch, parse, and load in order.
func Pipeline() error {
	mg.SerialDeps(Fetch, Parse, Load)
	return runCLI("stats")
}
