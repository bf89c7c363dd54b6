// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quotegraph/pkg/types"
)

const exportLimit = 1000000

// exportRecords reads the whole graph back as records in stable order:
// author name, then source title, then quote text.
func (s *Store) exportRecords(ctx context.Context) ([]types.QuoteRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.text, a.name, s.title
		 FROM quotes q
		 JOIN authors a ON a.id = q.author_id
		 LEFT JOIN sources s ON s.id = q.source_id
		 ORDER BY a.name, s.title NULLS FIRST, q.text
		 LIMIT ?`, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	defer rows.Close()

	var records []types.QuoteRecord
	for rows.Next() {
		var (
			rec    types.QuoteRecord
			source sql.NullString
		)
		if err := rows.Scan(&rec.Quote, &rec.Author, &source); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if source.Valid {
			rec.Source = source.String
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ExportYAML writes the loaded graph to path as a YAML document.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	records, err := s.exportRecords(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeExport(path, data)
}

// ExportJSON writes the loaded graph to path as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	records, err := s.exportRecords(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeExport(path, data)
}

func writeExport(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
