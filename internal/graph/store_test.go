// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quotegraph/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	cfg := types.GraphConfig{
		DBPath:    filepath.Join(t.TempDir(), "quotes.db"),
		BatchSize: 2,
	}
	s, err := NewStore(cfg, types.SearchConfig{MaxResults: 5})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// records serializes QuoteRecords the way the pipeline emitter does.
func records(t *testing.T, recs ...types.QuoteRecord) io.Reader {
	t.Helper()
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	for _, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			t.Fatalf("encoding record: %v", err)
		}
	}
	return strings.NewReader(sb.String())
}

var twain = []types.QuoteRecord{
	{Author: "Mark Twain", Quote: "The secret of getting ahead is getting started.", Source: "Pudd'nhead Wilson"},
	{Author: "Mark Twain", Quote: "Courage is resistance to fear, mastery of fear."},
	{Author: "Ambrose Bierce", Quote: "Speak when you are angry and you will make the best speech you will ever regret.", Source: "The Devil's Dictionary"},
}

func TestLoad_BuildsGraph(t *testing.T) {
	s := testStore(t)

	summary, err := s.Load(context.Background(), records(t, twain...), io.Discard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if summary.Loaded != 3 || summary.Duplicates != 0 {
		t.Errorf("summary = %+v, want 3 loaded", summary)
	}
	// Batch size 2 ⇒ two transactions for three records.
	if summary.Batches != 2 {
		t.Errorf("Batches = %d, want 2", summary.Batches)
	}

	stats, err := s.GraphStats(context.Background())
	if err != nil {
		t.Fatalf("GraphStats: %v", err)
	}
	want := Stats{Authors: 2, Quotes: 3, Sources: 2, Attributed: 3, AppearsIn: 2}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.Load(ctx, records(t, twain...), io.Discard); err != nil {
		t.Fatalf("first load: %v", err)
	}
	summary, err := s.Load(ctx, records(t, twain...), io.Discard)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}

	if summary.Loaded != 0 || summary.Duplicates != 3 {
		t.Errorf("reload summary = %+v, want all duplicates", summary)
	}

	stats, err := s.GraphStats(ctx)
	if err != nil {
		t.Fatalf("GraphStats: %v", err)
	}
	if stats.Quotes != 3 || stats.Authors != 2 || stats.Sources != 2 {
		t.Errorf("reload changed the graph: %+v", stats)
	}
}

func TestLoad_DistinguishesUnsourcedDuplicates(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	recs := []types.QuoteRecord{
		{Author: "A", Quote: "Same text"},
		{Author: "A", Quote: "Same text"},
		{Author: "A", Quote: "Same text", Source: "Book"},
	}
	summary, err := s.Load(ctx, records(t, recs...), io.Discard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// The unsourced repeat is a duplicate; the sourced variant is a new triple.
	if summary.Loaded != 2 || summary.Duplicates != 1 {
		t.Errorf("summary = %+v, want 2 loaded, 1 duplicate", summary)
	}
}

func TestLoad_RejectsIncompleteRecords(t *testing.T) {
	s := testStore(t)

	recs := []types.QuoteRecord{
		{Author: "", Quote: "No author"},
		{Author: "No Quote", Quote: ""},
		{Author: "A", Quote: "Fine"},
	}
	summary, err := s.Load(context.Background(), records(t, recs...), io.Discard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if summary.Rejected != 2 || summary.Loaded != 1 {
		t.Errorf("summary = %+v, want 2 rejected, 1 loaded", summary)
	}
}

func TestAutocomplete_PrefixMatch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.Load(ctx, records(t, twain...), io.Discard); err != nil {
		t.Fatalf("Load: %v", err)
	}

	results, err := s.Autocomplete(ctx, "get", 10)
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(results), results)
	}
	if results[0].Author != "Mark Twain" || results[0].Source != "Pudd'nhead Wilson" {
		t.Errorf("result = %+v", results[0])
	}
	if results[0].Score <= 0 {
		t.Errorf("score = %f, want positive relevance", results[0].Score)
	}
}

func TestAutocomplete_MultiTokenAndOperatorSafety(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.Load(ctx, records(t, twain...), io.Discard); err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		term string
		want int
	}{
		{term: "mastery of fe", want: 1},
		{term: "", want: 0},
		{term: "   ", want: 0},
		{term: `"AND" NOT`, want: 0},  // operators are neutralized, not parsed
		{term: "zzzunmatched", want: 0},
	}
	for _, tt := range tests {
		results, err := s.Autocomplete(ctx, tt.term, 10)
		if err != nil {
			t.Fatalf("Autocomplete(%q): %v", tt.term, err)
		}
		if len(results) != tt.want {
			t.Errorf("Autocomplete(%q) = %d results, want %d", tt.term, len(results), tt.want)
		}
	}
}

func TestAutocomplete_LimitApplied(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	var recs []types.QuoteRecord
	for _, text := range []string{
		"Wisdom is one thing entirely.",
		"Wisdom is quite another thing.",
		"Wisdom is a third thing as well.",
	} {
		recs = append(recs, types.QuoteRecord{Author: "A", Quote: text})
	}
	if _, err := s.Load(ctx, records(t, recs...), io.Discard); err != nil {
		t.Fatalf("Load: %v", err)
	}

	results, err := s.Autocomplete(ctx, "wisdom", 2)
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestByAuthorAndBySource(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.Load(ctx, records(t, twain...), io.Discard); err != nil {
		t.Fatalf("Load: %v", err)
	}

	byAuthor, err := s.ByAuthor(ctx, "twain", 10)
	if err != nil {
		t.Fatalf("ByAuthor: %v", err)
	}
	if len(byAuthor) != 2 {
		t.Errorf("ByAuthor = %d results, want 2: %+v", len(byAuthor), byAuthor)
	}

	bySource, err := s.BySource(ctx, "devil", 10)
	if err != nil {
		t.Fatalf("BySource: %v", err)
	}
	if len(bySource) != 1 || bySource[0].Author != "Ambrose Bierce" {
		t.Errorf("BySource = %+v", bySource)
	}
}

func TestExport(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.Load(ctx, records(t, twain...), io.Discard); err != nil {
		t.Fatalf("Load: %v", err)
	}

	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "export.json")
	if err := s.ExportJSON(ctx, jsonPath); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	var fromJSON []types.QuoteRecord
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatalf("parsing export: %v", err)
	}
	if len(fromJSON) != 3 {
		t.Errorf("JSON export has %d records, want 3", len(fromJSON))
	}

	yamlPath := filepath.Join(dir, "export.yaml")
	if err := s.ExportYAML(ctx, yamlPath); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	data, err = os.ReadFile(yamlPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	var fromYAML []types.QuoteRecord
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("parsing export: %v", err)
	}
	if len(fromYAML) != 3 {
		t.Errorf("YAML export has %d records, want 3", len(fromYAML))
	}
}
