package suggest

import (
	"sort"

	"github.com/bastiangx/quickswitch/pkg/search"
)

// Rank orders suggestions in place, best first. The sort is stable so that
// suggestions with equal keys keep the order of the source they came from.
//
// Keys, in order: higher score, content hits before parent path hits,
// shorter matched span, display text.
func Rank(suggestions []Suggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return less(suggestions[i], suggestions[j])
	})
}

func less(a, b Suggestion) bool {
	if sa, sb := a.Score(), b.Score(); sa != sb {
		return sa > sb
	}
	if ra, rb := matchRank(a.MatchType), matchRank(b.MatchType); ra != rb {
		return ra < rb
	}
	if la, lb := a.Match.Span(), b.Match.Span(); la != lb {
		return la < lb
	}
	return a.Text() < b.Text()
}

// matchRank puts content hits first and unmatched suggestions last.
func matchRank(t search.MatchType) int {
	switch t {
	case search.MatchContent:
		return 0
	case search.MatchParentPath:
		return 1
	default:
		return 2
	}
}
