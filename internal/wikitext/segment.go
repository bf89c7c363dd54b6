// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wikitext

import (
	"strings"

	"github.com/pdiddy/quotegraph/pkg/types"
)

// authorHeadingLevel is the heading depth that carries author names on the
// corpus's theme pages: == Name ==.
const authorHeadingLevel = 2

// headingLevel parses a wiki heading line. It returns the heading depth and
// the inner text, or ok=false when the line is not a heading. The depth is
// the smaller of the leading and trailing delimiter runs, matching how the
// wiki renderer treats unbalanced headings.
func headingLevel(line string) (level int, text string, ok bool) {
	line = strings.TrimSpace(line)
	if len(line) < 2 || line[0] != '=' || line[len(line)-1] != '=' {
		return 0, "", false
	}

	lead := 0
	for lead < len(line) && line[lead] == '=' {
		lead++
	}
	trail := 0
	for trail < len(line)-lead && line[len(line)-1-trail] == '=' {
		trail++
	}
	if lead+trail >= len(line) {
		// Nothing but delimiters; treat as an empty heading.
		return len(line) / 2, "", true
	}

	level = min(lead, trail)
	text = strings.TrimSpace(line[lead : len(line)-trail])
	return level, text, true
}

// Segments splits a page's text into author-attributed segments. A level-2
// heading opens a segment whose author is the heading text with markup
// stripped; the segment runs until the next heading of the same or
// shallower level or end of page. Deeper headings stay inside the segment
// body. Text before the first author heading is page preamble and is
// discarded, as are segments whose heading strips to empty.
func Segments(page types.Page) []types.Segment {
	var (
		segments []types.Segment
		author   string
		body     []string
		open     bool
	)

	flush := func() {
		if open && author != "" {
			segments = append(segments, types.Segment{
				Author: author,
				Body:   strings.Join(body, "\n"),
			})
		}
		body = nil
	}

	for _, line := range strings.Split(page.Text, "\n") {
		level, text, isHeading := headingLevel(line)
		if isHeading && level <= authorHeadingLevel {
			flush()
			if level == authorHeadingLevel {
				author = Strip(text)
				open = true
			} else {
				author = ""
				open = false
			}
			continue
		}

		if open {
			body = append(body, line)
		}
	}

	flush()
	return segments
}
