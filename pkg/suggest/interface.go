// Package suggest holds the suggestion model shared by every switcher mode,
// the ranker that orders scored suggestions, and the retrieval-match-rank
// pipeline the mode handlers run their candidates through.
package suggest

import (
	"github.com/bastiangx/quickswitch/pkg/search"
	"github.com/bastiangx/quickswitch/pkg/vault"
)

// Type tags a suggestion with the mode that produced it.
type Type int

const (
	TypeFile Type = iota
	TypeStarred
	TypeEditor
	TypeCommand
)

func (t Type) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeStarred:
		return "starred"
	case TypeEditor:
		return "editor"
	case TypeCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Item is the mode specific payload of a suggestion.
type Item interface {
	// Text is the display text used for ranking ties and rendering.
	Text() string
}

// Suggestion is a scored candidate, built fresh on every search pass.
type Suggestion struct {
	Type Type
	// File is the live content the suggestion points at. Nil for modes
	// whose items are not files, such as commands.
	File      *vault.File
	Item      Item
	MatchType search.MatchType
	// Match is nil when MatchType is MatchNone.
	Match *search.Match
}

// Text returns the display text of the payload, "" without one.
func (s Suggestion) Text() string {
	if s.Item == nil {
		return ""
	}
	return s.Item.Text()
}

// Score returns the match score, 0 for unscored suggestions.
func (s Suggestion) Score() int {
	if s.Match == nil {
		return 0
	}
	return s.Match.Score
}
