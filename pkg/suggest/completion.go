package suggest

import (
	"github.com/bastiangx/quickswitch/pkg/search"
)

// Fields extracts the primary text and the fallback text an item is
// matched against. An empty fallback disables the path fallback.
type Fields[T any] func(item T) (primary, fallback string)

// Build turns an item and its match result into a suggestion.
type Build[T any] func(item T, res search.Result) Suggestion

// Collect runs items through the shared match and rank steps:
//
//   - with a search term, every item is fuzzy matched and items without a
//     match are dropped; the survivors are ranked
//   - without one, every item is kept in source order, unscored
//
// The returned slice is always newly allocated.
func Collect[T any](q search.Query, items []T, fields Fields[T], build Build[T]) []Suggestion {
	out := make([]Suggestion, 0, len(items))

	for _, item := range items {
		res := search.Result{MatchType: search.MatchNone}
		if q.HasSearchTerm {
			primary, fallback := fields(item)
			res = search.FuzzyMatch(q, primary, fallback)
			if res.MatchType == search.MatchNone {
				continue
			}
		}
		out = append(out, build(item, res))
	}

	if q.HasSearchTerm {
		Rank(out)
	}
	return out
}

// Limit truncates suggestions to at most n entries. n <= 0 means no limit.
func Limit(suggestions []Suggestion, n int) []Suggestion {
	if n > 0 && len(suggestions) > n {
		return suggestions[:n]
	}
	return suggestions
}
