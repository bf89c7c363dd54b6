// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Result is one quote with its author and optional source resolved.
type Result struct {
	Quote  string  `json:"quote" yaml:"quote"`
	Author string  `json:"author" yaml:"author"`
	Source string  `json:"source,omitempty" yaml:"source,omitempty"`
	Score  float64 `json:"score,omitempty" yaml:"score,omitempty"`
}

// ftsPrefixQuery turns free text into an FTS5 prefix match: every token is
// quoted (so FTS operators in user input stay inert) and the last one gets
// a prefix wildcard, which is what makes autocomplete work mid-word.
func ftsPrefixQuery(term string) string {
	fields := strings.Fields(term)
	if len(fields) == 0 {
		return ""
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		f = strings.ReplaceAll(f, `"`, `""`)
		quoted[i] = `"` + f + `"`
	}
	quoted[len(quoted)-1] += "*"
	return strings.Join(quoted, " ")
}

const resultColumns = `
	q.text, a.name, s.title
	FROM quotes q
	JOIN authors a ON a.id = q.author_id
	LEFT JOIN sources s ON s.id = q.source_id`

// Autocomplete runs a prefix full-text search over quote text and returns
// matches ranked by relevance. An empty or whitespace-only term yields no
// results. limit <= 0 uses the store default.
func (s *Store) Autocomplete(ctx context.Context, term string, limit int) ([]Result, error) {
	match := ftsPrefixQuery(term)
	if match == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT q.text, a.name, s.title, -quotes_fts.rank
		 FROM quotes_fts
		 JOIN quotes q ON q.id = quotes_fts.rowid
		 JOIN authors a ON a.id = q.author_id
		 LEFT JOIN sources s ON s.id = q.source_id
		 WHERE quotes_fts MATCH ?
		 ORDER BY quotes_fts.rank, q.id
		 LIMIT ?`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("querying quotes: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r      Result
			source sql.NullString
		)
		if err := rows.Scan(&r.Quote, &r.Author, &source, &r.Score); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if source.Valid {
			r.Source = source.String
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ByAuthor returns quotes whose author name contains the given text,
// case-insensitively, ordered by author then quote for stable output.
func (s *Store) ByAuthor(ctx context.Context, name string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+resultColumns+`
		 WHERE a.name LIKE '%' || ? || '%'
		 ORDER BY a.name, q.text
		 LIMIT ?`, name, limit)
	if err != nil {
		return nil, fmt.Errorf("querying by author: %w", err)
	}
	return scanResults(rows)
}

// BySource returns quotes whose source title contains the given text,
// case-insensitively, ordered by source then author.
func (s *Store) BySource(ctx context.Context, title string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+resultColumns+`
		 WHERE s.title LIKE '%' || ? || '%'
		 ORDER BY s.title, a.name
		 LIMIT ?`, title, limit)
	if err != nil {
		return nil, fmt.Errorf("querying by source: %w", err)
	}
	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r      Result
			source sql.NullString
		)
		if err := rows.Scan(&r.Quote, &r.Author, &source); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if source.Valid {
			r.Source = source.String
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
