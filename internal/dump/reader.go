// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dump reads MediaWiki XML exports one page at a time and fetches
// dump archives from a mirror.
package dump

import (
	"compress/bzip2"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/quotegraph/pkg/types"
)

// MalformedEntryError reports one structurally broken corpus entry. The
// reader returns it from Next and remains usable; callers count it as a
// warning and pull the next page.
type MalformedEntryError struct {
	// Title of the broken entry, when the decoder got far enough to see it.
	Title string
	Err   error
}

func (e *MalformedEntryError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("malformed dump entry %q: %v", e.Title, e.Err)
	}
	return fmt.Sprintf("malformed dump entry: %v", e.Err)
}

func (e *MalformedEntryError) Unwrap() error { return e.Err }

// Reader streams content pages out of a MediaWiki export. It holds at most
// one page's data in memory and is exhausted when Next returns io.EOF.
type Reader struct {
	dec    *xml.Decoder
	closer io.Closer
}

// Open opens a dump file for streaming. Files ending in .bz2 are
// decompressed transparently. The returned Reader must be closed.
// A fresh Open over the same file restarts the sequence from the top.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump %s: %w", path, err)
	}

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		r = bzip2.NewReader(f)
	}

	return &Reader{dec: xml.NewDecoder(r), closer: f}, nil
}

// NewReader streams pages from r, for callers that already hold an open
// stream (tests, pipes).
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: xml.NewDecoder(r)}
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// pageElement mirrors the subset of the export schema the pipeline needs.
// Revision text is nested one level down; every other field is ignored.
type pageElement struct {
	Title    string `xml:"title"`
	Ns       int    `xml:"ns"`
	Redirect *struct {
		Title string `xml:"title,attr"`
	} `xml:"redirect"`
	Revision struct {
		Text string `xml:"text"`
	} `xml:"revision"`
}

// Next advances to the next content page. It returns io.EOF at end of
// stream and *MalformedEntryError for an entry that fails to decode;
// the stream stays usable after a malformed entry unless the underlying
// token stream itself is broken, in which case the error is terminal.
//
// Non-content entries are skipped without surfacing: pages outside the
// main namespace, redirects, and pages with an empty text body.
func (r *Reader) Next() (types.Page, error) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return types.Page{}, io.EOF
			}
			return types.Page{}, fmt.Errorf("reading dump: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "page" {
			continue
		}

		var pe pageElement
		if err := r.dec.DecodeElement(&pe, &se); err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				// The token stream is wedged; no further entries are
				// recoverable.
				return types.Page{}, fmt.Errorf("reading dump: %w", err)
			}
			return types.Page{}, &MalformedEntryError{Title: pe.Title, Err: err}
		}

		page := types.Page{Title: strings.TrimSpace(pe.Title), Text: pe.Revision.Text}
		if !isContent(pe, page) {
			continue
		}
		return page, nil
	}
}

// isContent applies the original corpus filters: main namespace only, no
// redirects, no empty bodies. Titles with a colon are namespace pages in
// dumps that omit the <ns> element.
func isContent(pe pageElement, page types.Page) bool {
	if pe.Ns != 0 || pe.Redirect != nil {
		return false
	}
	if page.Title == "" || strings.Contains(page.Title, ":") {
		return false
	}
	body := strings.TrimSpace(page.Text)
	if body == "" {
		return false
	}
	if len(body) >= len("#REDIRECT") && strings.EqualFold(body[:len("#REDIRECT")], "#REDIRECT") {
		return false
	}
	return true
}
