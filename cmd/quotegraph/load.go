// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quotegraph/internal/config"
	"github.com/pdiddy/quotegraph/internal/graph"
	"github.com/pdiddy/quotegraph/pkg/types"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load extracted quote records into the graph database",
	Long: `Load reads the JSON Lines records file and upserts authors, sources,
and quotes into the SQLite graph database in batches. Loading is
idempotent: re-running over the same records reports duplicates and
leaves the graph unchanged.`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().String("records-file", config.DefaultRecordsFile, "JSON Lines records to load")
	loadCmd.Flags().String("db-path", config.DefaultDBPath, "SQLite database path")
	loadCmd.Flags().Int("batch-size", config.DefaultBatchSize, "records per transaction")

	rootCmd.AddCommand(loadCmd)
}

// loadSettings resolves the load command's inputs. The records file is
// shared with parse through the resolved configuration, so the flag is read
// directly here rather than bound to a viper key; a flag set on the command
// line wins over config.
func loadSettings(cmd *cobra.Command, cfg types.PipelineConfig) (recordsFile string, graphCfg types.GraphConfig) {
	recordsFile = cfg.Parse.RecordsFile
	if cmd.Flags().Changed("records-file") {
		recordsFile, _ = cmd.Flags().GetString("records-file")
	}

	graphCfg = cfg.Graph
	if cmd.Flags().Changed("db-path") {
		graphCfg.DBPath, _ = cmd.Flags().GetString("db-path")
	}
	if cmd.Flags().Changed("batch-size") {
		graphCfg.BatchSize, _ = cmd.Flags().GetInt("batch-size")
	}
	return recordsFile, graphCfg
}

func runLoad(cmd *cobra.Command, args []string) error {
	recordsFile, graphCfg := loadSettings(cmd, cfg)

	in, err := os.Open(recordsFile)
	if err != nil {
		return fmt.Errorf("opening records file: %w", err)
	}
	defer in.Close()

	store, err := graph.NewStore(graphCfg, cfg.Search)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Load(context.Background(), in, os.Stdout)
	if err != nil {
		return err
	}
	logger.Info().
		Int("loaded", summary.Loaded).
		Int("duplicate", summary.Duplicates).
		Int("rejected", summary.Rejected).
		Msg("graph load complete")
	return nil
}
