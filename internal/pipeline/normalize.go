// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"strings"
	"unicode"

	"github.com/pdiddy/quotegraph/pkg/types"
)

// NormalizeKey canonicalizes a display string for duplicate detection:
// lower-cased, internal whitespace collapsed to single spaces, leading and
// trailing punctuation and whitespace trimmed. Normalizing an already
// normalized key returns it unchanged.
func NormalizeKey(s string) string {
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}

// tripleKey is the canonical identity of one (author, quote, source) triple.
type tripleKey struct {
	author string
	quote  string
	source string
}

// Normalizer holds the run-scoped set of seen triples. One value is built
// per pipeline run and owned by it; nothing outside the run touches it, so
// no locking is needed in the sequential pipeline.
type Normalizer struct {
	seen map[tripleKey]struct{}
}

// NewNormalizer returns an empty dedup set for one run.
func NewNormalizer() *Normalizer {
	return &Normalizer{seen: make(map[tripleKey]struct{})}
}

// Admit records the triple's canonical key and reports whether the record
// is the first occurrence. First occurrence wins: the display text of the
// first record seen for a key is the canonical one, and later duplicates
// are dropped regardless of casing or punctuation differences.
func (n *Normalizer) Admit(rec types.QuoteRecord) bool {
	key := tripleKey{
		author: NormalizeKey(rec.Author),
		quote:  NormalizeKey(rec.Quote),
		source: NormalizeKey(rec.Source),
	}
	if _, dup := n.seen[key]; dup {
		return false
	}
	n.seen[key] = struct{}{}
	return true
}

// Len reports how many distinct triples have been admitted.
func (n *Normalizer) Len() int {
	return len(n.seen)
}
