/*
Package search implements the fuzzy-match-with-fallback engine shared by every
switcher mode.

A query is prepared once per input pass with Prepare and then matched against
each candidate with FuzzyMatch. The primary text (usually a title) is tried
first; the fallback text (usually the full vault path) is only consulted when
the primary text does not match. Absence of a match is a normal result, never
an error.

	q := search.Prepare("proj")
	res := search.FuzzyMatch(q, "Notes", "projects/Notes.md")
	// res.MatchType == search.MatchParentPath

Matching is case-insensitive and ignores diacritics, so "cafe" finds "Café".
*/
package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Query is a prepared search query.
type Query struct {
	// Raw is the trimmed user input.
	Raw string
	// Pattern is the folded form used for matching: lower-cased, without
	// diacritics and whitespace.
	Pattern string
	// HasSearchTerm is false when nothing is left to match against.
	HasSearchTerm bool
}

// Prepare builds a Query from free text.
func Prepare(text string) Query {
	raw := strings.TrimSpace(text)

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		// decomposed input carries its accents as separate marks
		if unicode.IsSpace(r) || unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(foldRune(r))
	}
	pattern := b.String()

	return Query{
		Raw:           raw,
		Pattern:       pattern,
		HasSearchTerm: pattern != "",
	}
}

// fold maps every rune of s through foldRune. The result has the same rune
// count as s, so rune offsets computed on it are valid on s.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteRune(foldRune(r))
	}
	return b.String()
}

// foldRune lower-cases r and strips a combining accent from it.
func foldRune(r rune) rune {
	if r < utf8.RuneSelf {
		return unicode.ToLower(r)
	}
	base, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
	if base == utf8.RuneError || unicode.Is(unicode.Mn, base) {
		return unicode.ToLower(r)
	}
	return unicode.ToLower(base)
}
