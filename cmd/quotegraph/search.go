// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quotegraph/internal/config"
	"github.com/pdiddy/quotegraph/internal/graph"
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search the quote graph",
	Long: `Search queries the graph database. A bare query runs prefix full-text
search over quote text, so partial words match as you type ("philo"
matches "philosophy"). Use --author or --source to list quotes by a
specific author or source instead; the match is a case-insensitive
substring.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("author", "", "list quotes by authors matching this name")
	searchCmd.Flags().String("source", "", "list quotes from sources matching this title")
	searchCmd.Flags().Int("limit", config.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	viper.BindPFlag("search.max_results", searchCmd.Flags().Lookup("limit"))

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	author, _ := cmd.Flags().GetString("author")
	source, _ := cmd.Flags().GetString("source")
	query := strings.Join(args, " ")

	modes := 0
	for _, set := range []bool{author != "", source != "", query != ""} {
		if set {
			modes++
		}
	}
	if modes == 0 {
		return fmt.Errorf("provide search terms, --author, or --source")
	}
	if modes > 1 {
		return fmt.Errorf("search terms, --author, and --source are mutually exclusive")
	}

	store, err := graph.NewStore(cfg.Graph, cfg.Search)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	limit := cfg.Search.MaxResults

	var results []graph.Result
	switch {
	case author != "":
		results, err = store.ByAuthor(ctx, author, limit)
	case source != "":
		results, err = store.BySource(ctx, source, limit)
	default:
		results, err = store.Autocomplete(ctx, query, limit)
	}
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []graph.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%d. %q\n", i+1, r.Quote)
		if r.Source != "" {
			fmt.Fprintf(os.Stdout, "   — %s, %s\n", r.Author, r.Source)
		} else {
			fmt.Fprintf(os.Stdout, "   — %s\n", r.Author)
		}
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}
