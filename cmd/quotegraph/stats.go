// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quotegraph/internal/graph"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print node and relationship counts for the quote graph",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Bool("json", false, "output stats as JSON")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := graph.NewStore(cfg.Graph, cfg.Search)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.GraphStats(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("authors:  %d\n", stats.Authors)
	fmt.Printf("quotes:   %d\n", stats.Quotes)
	fmt.Printf("sources:  %d\n", stats.Sources)
	fmt.Printf("attributed-to relationships: %d\n", stats.Attributed)
	fmt.Printf("appears-in relationships:    %d\n", stats.AppearsIn)
	return nil
}
