// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the extraction pipeline: dump pages in, normalized
// quote records out. Processing is strictly sequential and pull-based; the
// only run-wide state is the Normalizer's dedup set.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pdiddy/quotegraph/internal/dump"
	"github.com/pdiddy/quotegraph/internal/wikitext"
	"github.com/pdiddy/quotegraph/pkg/types"
)

// Summary holds counts from one extraction run.
type Summary struct {
	Pages      int
	Malformed  int
	Quotes     int
	Duplicates int
	TooShort   int
	Ambiguous  int
}

// Pipeline extracts quote records from a page stream.
type Pipeline struct {
	cfg types.ParseConfig
	log zerolog.Logger
}

// New returns a pipeline for one run.
func New(cfg types.ParseConfig, log zerolog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// progressEvery controls how often a progress line is logged.
const progressEvery = 100

// Run pulls pages from r until the stream ends, the page limit is reached,
// or ctx is cancelled, and writes deduplicated records to w. Malformed
// entries are counted and skipped; only a broken stream or a write failure
// aborts the run, and records already written stay written.
//
// Given a deterministic page order, two runs over the same corpus produce
// byte-identical output.
func (p *Pipeline) Run(ctx context.Context, r *dump.Reader, w io.Writer) (Summary, error) {
	var summary Summary
	norm := NewNormalizer()
	emitter := NewEmitter(w)

	for {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if p.cfg.PageLimit > 0 && summary.Pages >= p.cfg.PageLimit {
			p.log.Info().Int("limit", p.cfg.PageLimit).Msg("page limit reached")
			break
		}

		page, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var malformed *dump.MalformedEntryError
			if errors.As(err, &malformed) {
				summary.Malformed++
				p.log.Warn().Str("title", malformed.Title).Err(malformed.Err).
					Msg("skipping malformed dump entry")
				continue
			}
			return summary, err
		}

		summary.Pages++
		found, err := p.processPage(page, norm, emitter, &summary)
		if err != nil {
			return summary, err
		}
		if found > 0 {
			p.log.Debug().Str("title", page.Title).Int("quotes", found).
				Msg("extracted quotes")
		}
		if summary.Pages%progressEvery == 0 {
			p.log.Info().Int("pages", summary.Pages).Int("quotes", summary.Quotes).
				Msg("progress")
		}
	}

	p.log.Info().
		Int("pages", summary.Pages).
		Int("quotes", summary.Quotes).
		Int("duplicates", summary.Duplicates).
		Int("malformed", summary.Malformed).
		Msg("extraction finished")
	return summary, nil
}

// processPage extracts one page's quotes and emits the records that survive
// length filtering and deduplication. Record order within a page follows
// source order.
func (p *Pipeline) processPage(page types.Page, norm *Normalizer, emitter *Emitter, summary *Summary) (int, error) {
	found := 0
	for _, seg := range wikitext.Segments(page) {
		for _, q := range wikitext.ExtractQuotes(seg) {
			if q.SourceAmbiguous {
				summary.Ambiguous++
				p.log.Debug().Str("title", page.Title).Str("quote", q.Text).
					Msg("multiple attribution candidates, keeping the first")
			}
			if utf8.RuneCountInString(q.Text) <= p.cfg.MinQuoteLen {
				summary.TooShort++
				continue
			}

			rec := types.QuoteRecord{Author: seg.Author, Quote: q.Text, Source: q.Source}
			if !norm.Admit(rec) {
				summary.Duplicates++
				continue
			}

			if err := emitter.Emit(rec); err != nil {
				return found, fmt.Errorf("page %q: %w", page.Title, err)
			}
			summary.Quotes++
			found++
		}
	}
	return found, nil
}
