// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdiddy/quotegraph/pkg/types"
)

// Emitter serializes records as JSON Lines: one UTF-8 JSON object per line
// with the fields "author", "quote", and "source" (omitted when absent).
// Each record is written as it is produced, so everything extracted before
// a mid-run failure is preserved in the output file.
type Emitter struct {
	enc   *json.Encoder
	count int
}

// NewEmitter writes records to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{enc: json.NewEncoder(w)}
}

// Emit writes one record.
func (e *Emitter) Emit(rec types.QuoteRecord) error {
	if err := e.enc.Encode(rec); err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	e.count++
	return nil
}

// Count reports how many records have been written.
func (e *Emitter) Count() int {
	return e.count
}

// ReadRecords decodes a JSON Lines record stream, the inverse of Emit. The
// graph loader consumes records through this.
func ReadRecords(r io.Reader, fn func(types.QuoteRecord) error) error {
	dec := json.NewDecoder(r)
	for {
		var rec types.QuoteRecord
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("decoding record: %w", err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}
