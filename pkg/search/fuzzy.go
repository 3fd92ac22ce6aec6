package search

import (
	"sort"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// MatchType tells which part of a candidate matched the query.
type MatchType int

const (
	// MatchNone means no query was supplied or nothing matched.
	MatchNone MatchType = iota
	// MatchContent is a hit on the primary text.
	MatchContent
	// MatchParentPath is a hit on the fallback text only.
	MatchParentPath
)

func (m MatchType) String() string {
	switch m {
	case MatchContent:
		return "content"
	case MatchParentPath:
		return "parentPath"
	default:
		return "none"
	}
}

// Range is a half-open span of rune offsets into the matched text.
type Range struct {
	Start int
	End   int
}

// Match holds the score and matched spans of a successful match.
// Higher scores are better.
type Match struct {
	Score  int
	Ranges []Range
}

// Span returns the number of runes from the first matched rune to the last
// one, inclusive. Zero for a nil or empty match.
func (m *Match) Span() int {
	if m == nil || len(m.Ranges) == 0 {
		return 0
	}
	return m.Ranges[len(m.Ranges)-1].End - m.Ranges[0].Start
}

// Result is the outcome of FuzzyMatch.
type Result struct {
	MatchType MatchType
	Match     *Match
}

// FuzzyMatch matches q against primary, then against fallback.
// An empty query yields {MatchNone, nil}, which callers treat as an unscored
// include. A non-empty query that matches neither string also yields
// {MatchNone, nil}, which callers treat as an exclusion.
func FuzzyMatch(q Query, primary, fallback string) Result {
	if !q.HasSearchTerm {
		return Result{MatchType: MatchNone}
	}
	if m := Score(q, primary); m != nil {
		return Result{MatchType: MatchContent, Match: m}
	}
	if fallback != "" {
		if m := Score(q, fallback); m != nil {
			return Result{MatchType: MatchParentPath, Match: m}
		}
	}
	return Result{MatchType: MatchNone}
}

// Score matches a single string against q. Returns nil when q has no search
// term or text does not contain the pattern as a subsequence.
func Score(q Query, text string) *Match {
	if !q.HasSearchTerm || text == "" {
		return nil
	}
	folded := fold(text)

	// cheap reject before the scorer allocates
	if !fuzzysearch.MatchNormalizedFold(q.Pattern, folded) {
		return nil
	}

	matches := fuzzy.Find(q.Pattern, []string{folded})
	if len(matches) == 0 {
		return nil
	}
	best := matches[0]
	return &Match{
		Score:  best.Score,
		Ranges: toRanges(folded, best.MatchedIndexes),
	}
}

// toRanges converts byte indexes reported by the scorer into merged rune ranges.
func toRanges(s string, byteIndexes []int) []Range {
	if len(byteIndexes) == 0 {
		return nil
	}
	runeAt := make(map[int]int, len(s))
	ri := 0
	for bi := range s {
		runeAt[bi] = ri
		ri++
	}

	positions := make([]int, 0, len(byteIndexes))
	for _, bi := range byteIndexes {
		if r, ok := runeAt[bi]; ok {
			positions = append(positions, r)
		}
	}
	sort.Ints(positions)

	var ranges []Range
	for _, p := range positions {
		if n := len(ranges); n > 0 && ranges[n-1].End == p {
			ranges[n-1].End = p + 1
			continue
		}
		if n := len(ranges); n > 0 && ranges[n-1].End > p {
			continue
		}
		ranges = append(ranges, Range{Start: p, End: p + 1})
	}
	return ranges
}
