// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wikitext turns raw wiki markup into author segments and plain-text
// quotes. It is a best-effort heuristic over the corpus conventions, not a
// parser of the full markup grammar.
package wikitext

import (
	"regexp"
	"strings"
)

// Rule is one independent markup rewrite step. Rules are applied in a fixed
// order so each markup class can be tested and extended in isolation.
type Rule struct {
	Name  string
	Apply func(string) string
}

var (
	pipedLinkRe = regexp.MustCompile(`\[\[[^|\[\]]*\|([^\[\]]*)\]\]`)
	plainLinkRe = regexp.MustCompile(`\[\[([^|\[\]]*)\]\]`)
	extLinkRe   = regexp.MustCompile(`\[(?:https?|ftp)://\S*\s+([^\]]*)\]`)
	bracketRe   = regexp.MustCompile(`\[([^\[\]]*)\]`)
	templateRe  = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	tagRe       = regexp.MustCompile(`<[^<>]+>`)
)

// entityReplacer decodes the HTML entities the corpus actually carries.
// Wikitext stored inside XML dumps is escaped a second time, so literal
// entities survive the XML decoder.
var entityReplacer = strings.NewReplacer(
	"&quot;", `"`,
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&nbsp;", " ",
)

// StripRules is the ordered list of markup rewrite rules. Order matters:
// internal links resolve before external-link brackets, and entities decode
// before residual tags are dropped.
var StripRules = []Rule{
	{Name: "piped-links", Apply: func(s string) string {
		// [[target|label]] keeps the label.
		return pipedLinkRe.ReplaceAllString(s, "$1")
	}},
	{Name: "plain-links", Apply: func(s string) string {
		// [[target]] keeps the target.
		return plainLinkRe.ReplaceAllString(s, "$1")
	}},
	{Name: "external-links", Apply: func(s string) string {
		// [url label] keeps the label; other single brackets keep their
		// inner text.
		s = extLinkRe.ReplaceAllString(s, "$1")
		return bracketRe.ReplaceAllString(s, "$1")
	}},
	{Name: "emphasis", Apply: func(s string) string {
		s = strings.ReplaceAll(s, "'''", "")
		return strings.ReplaceAll(s, "''", "")
	}},
	{Name: "templates", Apply: func(s string) string {
		// Rendering directives, not quote content. Innermost-first so
		// nested invocations collapse completely.
		for {
			next := templateRe.ReplaceAllString(s, "")
			if next == s {
				return s
			}
			s = next
		}
	}},
	{Name: "entities", Apply: entityReplacer.Replace},
	{Name: "tags", Apply: func(s string) string {
		return tagRe.ReplaceAllString(s, "")
	}},
}

// Strip removes wiki markup from s, collapses whitespace runs to single
// spaces, and trims the result. The rule list is applied until a fixpoint
// so that nested markup exposed by one pass is caught by the next; every
// rewrite strictly shortens the string, so the loop terminates. Strip is
// idempotent: applying it to already-stripped text returns the text
// unchanged.
func Strip(s string) string {
	for {
		prev := s
		for _, rule := range StripRules {
			s = rule.Apply(s)
		}
		if s == prev {
			break
		}
	}
	return CollapseWhitespace(s)
}

// CollapseWhitespace reduces every whitespace run to a single space and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
