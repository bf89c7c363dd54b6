// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quotegraph/internal/config"
	"github.com/pdiddy/quotegraph/internal/dump"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the wiki export archive",
	Long: `Fetch downloads the wiki quotation export archive to the local dump
file. An existing dump file is left in place; delete it to force a fresh
download. Transient mirror errors are retried with exponential backoff.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("url", config.DefaultDumpURL, "export archive URL")
	fetchCmd.Flags().String("dump-file", config.DefaultDumpFile, "local path for the downloaded archive")
	fetchCmd.Flags().Duration("timeout", config.DefaultHTTPTimeout, "HTTP request timeout")

	viper.BindPFlag("fetch.dump_url", fetchCmd.Flags().Lookup("url"))
	viper.BindPFlag("fetch.dump_file", fetchCmd.Flags().Lookup("dump-file"))
	viper.BindPFlag("fetch.timeout", fetchCmd.Flags().Lookup("timeout"))

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	client := &http.Client{
		Timeout: cfg.Fetch.Timeout,
	}

	skipped, err := dump.Fetch(context.Background(), client, cfg.Fetch, os.Stdout)
	if err != nil {
		return err
	}
	if skipped {
		logger.Info().Str("path", cfg.Fetch.DumpFile).Msg("dump file already present")
	}
	return nil
}
