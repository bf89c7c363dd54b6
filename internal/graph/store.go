// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph persists quote records in a SQLite database shaped as a
// small graph: Author and Source nodes, Quote nodes, and the two
// relationships as foreign keys. Loading is batched and idempotent, and an
// FTS5 index over quote text backs prefix autocomplete.
package graph

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/quotegraph/internal/pipeline"
	"github.com/pdiddy/quotegraph/pkg/types"
)

// Store manages the quote graph database.
type Store struct {
	db         *sql.DB
	batchSize  int
	maxResults int
}

// NewStore opens or creates the quote graph database at cfg.DBPath and
// creates the schema if it does not exist.
func NewStore(cfg types.GraphConfig, search types.SearchConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}
	maxResults := search.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	s := &Store{db: db, batchSize: batchSize, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS authors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS sources (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS quotes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			author_id INTEGER NOT NULL REFERENCES authors(id),
			source_id INTEGER REFERENCES sources(id)
		)`,
		// NULL source rows need their own uniqueness rule: SQLite treats
		// NULLs as distinct in a plain unique index.
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_quotes_sourced
			ON quotes(author_id, source_id, text) WHERE source_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_quotes_unsourced
			ON quotes(author_id, text) WHERE source_id IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_author ON quotes(author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_source ON quotes(source_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='quotes_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE quotes_fts USING fts5(text, content=quotes, content_rowid=id)`,
			`CREATE TRIGGER quotes_ai AFTER INSERT ON quotes BEGIN
				INSERT INTO quotes_fts(rowid, text) VALUES (new.id, new.text);
			END`,
			`CREATE TRIGGER quotes_ad AFTER DELETE ON quotes BEGIN
				INSERT INTO quotes_fts(quotes_fts, rowid, text) VALUES('delete', old.id, old.text);
			END`,
			`CREATE TRIGGER quotes_au AFTER UPDATE ON quotes BEGIN
				INSERT INTO quotes_fts(quotes_fts, rowid, text) VALUES('delete', old.id, old.text);
				INSERT INTO quotes_fts(rowid, text) VALUES (new.id, new.text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// LoadSummary holds counts from one graph loading run.
type LoadSummary struct {
	Loaded     int
	Duplicates int
	Rejected   int
	Batches    int
}

// Total returns the number of records processed.
func (s LoadSummary) Total() int {
	return s.Loaded + s.Duplicates + s.Rejected
}

// Load reads a JSON Lines record stream and upserts it into the graph in
// transactions of the configured batch size. Loading is idempotent:
// re-loading the same records merges into the existing nodes and inserts
// no second copy of any quote. Records with an empty author or quote are
// rejected and counted, never inserted.
func (s *Store) Load(ctx context.Context, r io.Reader, w io.Writer) (LoadSummary, error) {
	var (
		summary LoadSummary
		batch   []types.QuoteRecord
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		loaded, dups, err := s.loadBatch(ctx, batch)
		if err != nil {
			return err
		}
		summary.Loaded += loaded
		summary.Duplicates += dups
		summary.Batches++
		fmt.Fprintf(w, "batch %d: %d loaded, %d duplicate\n", summary.Batches, loaded, dups)
		batch = batch[:0]
		return nil
	}

	err := pipeline.ReadRecords(r, func(rec types.QuoteRecord) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if rec.Author == "" || rec.Quote == "" {
			summary.Rejected++
			return nil
		}
		batch = append(batch, rec)
		if len(batch) >= s.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return summary, err
	}
	if err := flush(); err != nil {
		return summary, err
	}

	fmt.Fprintf(w, "\nloaded: %d, duplicate: %d, rejected: %d (batches: %d)\n",
		summary.Loaded, summary.Duplicates, summary.Rejected, summary.Batches)
	return summary, nil
}

// loadBatch upserts one batch in a single transaction.
func (s *Store) loadBatch(ctx context.Context, batch []types.QuoteRecord) (loaded, dups int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	authorStmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO authors (name) VALUES (?)`)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing author insert: %w", err)
	}
	defer authorStmt.Close()

	sourceStmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO sources (title) VALUES (?)`)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing source insert: %w", err)
	}
	defer sourceStmt.Close()

	quoteStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO quotes (text, author_id, source_id)
		 VALUES (?,
			(SELECT id FROM authors WHERE name = ?),
			(SELECT id FROM sources WHERE title = ?))`)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing quote insert: %w", err)
	}
	defer quoteStmt.Close()

	for _, rec := range batch {
		if _, err := authorStmt.ExecContext(ctx, rec.Author); err != nil {
			return 0, 0, fmt.Errorf("upserting author %q: %w", rec.Author, err)
		}

		source := sql.NullString{String: rec.Source, Valid: rec.HasSource()}
		if source.Valid {
			if _, err := sourceStmt.ExecContext(ctx, rec.Source); err != nil {
				return 0, 0, fmt.Errorf("upserting source %q: %w", rec.Source, err)
			}
		}

		res, err := quoteStmt.ExecContext(ctx, rec.Quote, rec.Author, source)
		if err != nil {
			return 0, 0, fmt.Errorf("upserting quote: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, 0, fmt.Errorf("checking insert result: %w", err)
		}
		if n == 0 {
			dups++
		} else {
			loaded++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("committing batch: %w", err)
	}
	return loaded, dups, nil
}

// Stats holds node and relationship counts for the loaded graph.
type Stats struct {
	Authors    int `json:"authors" yaml:"authors"`
	Quotes     int `json:"quotes" yaml:"quotes"`
	Sources    int `json:"sources" yaml:"sources"`
	Attributed int `json:"attributed_to" yaml:"attributed_to"`
	AppearsIn  int `json:"appears_in" yaml:"appears_in"`
}

// GraphStats counts nodes and relationships. Every quote carries an
// author relationship; only sourced quotes carry an appears-in one.
func (s *Store) GraphStats(ctx context.Context) (Stats, error) {
	var st Stats
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT count(*) FROM authors`, &st.Authors},
		{`SELECT count(*) FROM quotes`, &st.Quotes},
		{`SELECT count(*) FROM sources`, &st.Sources},
		{`SELECT count(*) FROM quotes`, &st.Attributed},
		{`SELECT count(*) FROM quotes WHERE source_id IS NOT NULL`, &st.AppearsIn},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("counting: %w", err)
		}
	}
	return st, nil
}
