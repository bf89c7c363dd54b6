// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the quotegraph CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quotegraph/internal/config"
	"github.com/pdiddy/quotegraph/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg and logger are resolved once in PersistentPreRunE and shared by
// all subcommands.
var (
	cfg    types.PipelineConfig
	logger zerolog.Logger
)

// rootCmd is the base command for the quotegraph CLI.
var rootCmd = &cobra.Command{
	Use:   "quotegraph",
	Short: "Extract, index, and search wiki quotations",
	Long: `quotegraph turns a wiki quotation export into a searchable quote graph.

Each pipeline stage is a subcommand: fetch downloads the export archive,
parse extracts author/quote/source records from it, load builds the graph
database, and search/stats/export query the result.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.FromViper(viper.GetViper())
		if err != nil {
			return err
		}

		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./quotegraph.yaml or ~/.config/quotegraph/config.yaml)")
}

func initConfig() {
	config.Bind(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("quotegraph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "quotegraph"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
