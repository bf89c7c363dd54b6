// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikitext

import (
	"strings"

	"github.com/pdiddy/quotegraph/pkg/types"
)

// Quote is one extracted quotation from a segment, with its source resolved
// when an attribution sub-bullet was present.
type Quote struct {
	// Text is the markup-stripped quote text. Never empty.
	Text string

	// Source is the originating work's title, empty when no attribution
	// line was found. Absence is a normal outcome, not an error.
	Source string

	// SourceAmbiguous reports that more than one attribution candidate
	// followed the quote; the first one was kept.
	SourceAmbiguous bool
}

// isQuoteLine reports whether a trimmed line is a top-level quote bullet:
// it starts with one of the corpus's list markers and is not a sub-bullet
// (those carry citations, handled by the source resolver).
func isQuoteLine(line string) bool {
	if line == "" || (line[0] != '*' && line[0] != '#') {
		return false
	}
	if len(line) > 1 && (line[1] == '*' || line[1] == '#' || line[1] == ':') {
		return false
	}
	return true
}

// isSubBullet reports whether a trimmed line is one nesting level below a
// top-level bullet.
func isSubBullet(line string) bool {
	if len(line) < 2 || (line[0] != '*' && line[0] != '#') {
		return false
	}
	return line[1] == '*' || line[1] == '#' || line[1] == ':'
}

// attributionMarkers are leading decorations conventionally placed before a
// source title on attribution lines.
const attributionMarkers = "~-–—"

// cleanAttribution reduces a stripped attribution line to the source title:
// leading dash/tilde markers go, then a leading "Source:"/"From" keyword.
func cleanAttribution(s string) string {
	s = strings.TrimLeft(s, attributionMarkers+" ")
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "source:"):
		s = s[len("source:"):]
	case strings.HasPrefix(lower, "from:"):
		s = s[len("from:"):]
	case strings.HasPrefix(lower, "from "):
		s = s[len("from "):]
	}
	return strings.TrimSpace(s)
}

// resolveSource scans the lines following a quote line for an attribution
// sub-bullet. The scan stops at the next top-level bullet or heading; the
// first sub-bullet that cleans to non-empty text wins, and any further
// candidates before the boundary only flag ambiguity. The scan is strictly
// top-to-bottom, so resolution is deterministic.
func resolveSource(following []string) (source string, ambiguous bool) {
	for _, raw := range following {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if _, _, isHeading := headingLevel(line); isHeading || isQuoteLine(line) {
			break
		}
		if !isSubBullet(line) {
			break
		}

		candidate := cleanAttribution(Strip(strings.TrimLeft(line, "*#: ")))
		if candidate == "" {
			continue
		}
		if source == "" {
			source = candidate
			continue
		}
		ambiguous = true
	}
	return source, ambiguous
}

// ExtractQuotes scans a segment's lines for quote bullets and resolves each
// one's source. Candidates that strip to empty are dropped silently; many
// bullet lines are annotations, not quotations.
func ExtractQuotes(seg types.Segment) []Quote {
	lines := strings.Split(seg.Body, "\n")

	var quotes []Quote
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if !isQuoteLine(line) {
			continue
		}

		text := Strip(strings.TrimLeft(line, "*# "))
		if text == "" {
			continue
		}

		source, ambiguous := resolveSource(lines[i+1:])
		quotes = append(quotes, Quote{
			Text:            text,
			Source:          source,
			SourceAmbiguous: ambiguous,
		})
	}
	return quotes
}
