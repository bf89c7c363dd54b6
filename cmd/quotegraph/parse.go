// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quotegraph/internal/config"
	"github.com/pdiddy/quotegraph/internal/dump"
	"github.com/pdiddy/quotegraph/internal/pipeline"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract quote records from the wiki export",
	Long: `Parse streams the wiki export (plain XML or .bz2), segments each
author page into per-author sections, extracts quotes with their sources,
and writes deduplicated records to a JSON Lines file.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("dump-file", config.DefaultDumpFile, "wiki export to read")
	parseCmd.Flags().String("records-file", config.DefaultRecordsFile, "JSON Lines output path")
	parseCmd.Flags().Int("page-limit", 0, "stop after this many content pages (0 = no limit)")
	parseCmd.Flags().Int("min-quote-len", config.DefaultMinQuoteLen, "drop quotes of this many characters or fewer")

	viper.BindPFlag("parse.dump_file", parseCmd.Flags().Lookup("dump-file"))
	viper.BindPFlag("parse.records_file", parseCmd.Flags().Lookup("records-file"))
	viper.BindPFlag("parse.page_limit", parseCmd.Flags().Lookup("page-limit"))
	viper.BindPFlag("parse.min_quote_len", parseCmd.Flags().Lookup("min-quote-len"))

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	reader, err := dump.Open(cfg.Parse.DumpFile)
	if err != nil {
		return err
	}
	defer reader.Close()

	if dir := filepath.Dir(cfg.Parse.RecordsFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating records directory: %w", err)
		}
	}
	out, err := os.Create(cfg.Parse.RecordsFile)
	if err != nil {
		return fmt.Errorf("creating records file: %w", err)
	}

	summary, err := pipeline.New(cfg.Parse, logger).Run(context.Background(), reader, out)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	fmt.Printf("extracted %d quotes from %d pages (%d duplicate, %d too short, %d malformed entries)\n",
		summary.Quotes, summary.Pages, summary.Duplicates, summary.TooShort, summary.Malformed)
	fmt.Printf("wrote %s\n", cfg.Parse.RecordsFile)
	return nil
}
