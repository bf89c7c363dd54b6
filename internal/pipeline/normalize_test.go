// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"testing"

	"github.com/pdiddy/quotegraph/pkg/types"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Mark Twain", want: "mark twain"},
		{in: "  Mark   Twain  ", want: "mark twain"},
		{in: `"The secret of getting ahead."`, want: "the secret of getting ahead"},
		{in: "...ellipsis bound...", want: "ellipsis bound"},
		{in: "inner, punctuation. kept", want: "inner, punctuation. kept"},
		{in: "", want: ""},
		{in: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeKey(tt.in); got != tt.want {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeKey_Idempotent(t *testing.T) {
	inputs := []string{
		"Mark Twain",
		`"Quoted text, with punctuation!"`,
		"  ragged   input  ",
		"MIXED Case",
	}
	for _, in := range inputs {
		once := NormalizeKey(in)
		if twice := NormalizeKey(once); once != twice {
			t.Errorf("NormalizeKey not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizer_FirstOccurrenceWins(t *testing.T) {
	n := NewNormalizer()

	first := types.QuoteRecord{Author: "Mark Twain", Quote: "Get started.", Source: "Notebook"}
	if !n.Admit(first) {
		t.Fatal("first record rejected")
	}

	// Same triple modulo casing, whitespace, and boundary punctuation.
	dup := types.QuoteRecord{Author: "mark  TWAIN", Quote: `"Get started."`, Source: "notebook!"}
	if n.Admit(dup) {
		t.Error("duplicate admitted")
	}

	if n.Len() != 1 {
		t.Errorf("Len = %d, want 1", n.Len())
	}
}

func TestNormalizer_SourcePartOfIdentity(t *testing.T) {
	n := NewNormalizer()

	withSource := types.QuoteRecord{Author: "A", Quote: "Same quote text here", Source: "Book"}
	withoutSource := types.QuoteRecord{Author: "A", Quote: "Same quote text here"}
	otherSource := types.QuoteRecord{Author: "A", Quote: "Same quote text here", Source: "Other"}

	for i, rec := range []types.QuoteRecord{withSource, withoutSource, otherSource} {
		if !n.Admit(rec) {
			t.Errorf("record %d rejected, distinct sources are distinct triples", i)
		}
	}
}
