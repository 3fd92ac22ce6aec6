// Package render turns suggestions into display rows.
//
// Handlers write into a Container; hosts either supply their own container
// (an editor UI element) or use Row, a plain data container that Terminal
// and the IPC server know how to present.
package render

import (
	"github.com/bastiangx/quickswitch/pkg/search"
)

// Container receives the visual parts of one suggestion.
type Container interface {
	AddClass(class string)
	// SetTitle sets the main text. Ranges index runes of text and mark the
	// parts to highlight.
	SetTitle(text string, ranges []search.Range)
	// SetNote sets the secondary text shown under or next to the title.
	SetNote(text string, ranges []search.Range)
	// SetFlair sets a short trailing marker, such as a hotkey or an icon name.
	SetFlair(text string)
}

// Segment is a run of text that is either highlighted or not.
type Segment struct {
	Text      string
	Highlight bool
}

// Row is a Container that records what it was given.
type Row struct {
	Classes     []string
	Title       string
	TitleRanges []search.Range
	Note        string
	NoteRanges  []search.Range
	Flair       string
}

func (r *Row) AddClass(class string) {
	for _, c := range r.Classes {
		if c == class {
			return
		}
	}
	r.Classes = append(r.Classes, class)
}

func (r *Row) SetTitle(text string, ranges []search.Range) {
	r.Title = text
	r.TitleRanges = ranges
}

func (r *Row) SetNote(text string, ranges []search.Range) {
	r.Note = text
	r.NoteRanges = ranges
}

func (r *Row) SetFlair(text string) {
	r.Flair = text
}

// HasClass reports whether class was added.
func (r *Row) HasClass(class string) bool {
	for _, c := range r.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// TitleSegments splits the title at its highlight ranges.
func (r *Row) TitleSegments() []Segment {
	return Segments(r.Title, r.TitleRanges)
}

// NoteSegments splits the note at its highlight ranges.
func (r *Row) NoteSegments() []Segment {
	return Segments(r.Note, r.NoteRanges)
}

// Segments splits text into alternating plain and highlighted runs.
// Ranges outside text are clipped; overlapping ranges are tolerated.
func Segments(text string, ranges []search.Range) []Segment {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	marked := make([]bool, len(runes))
	for _, rg := range ranges {
		start, end := max(rg.Start, 0), min(rg.End, len(runes))
		for i := start; i < end; i++ {
			marked[i] = true
		}
	}

	var segments []Segment
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || marked[i] != marked[start] {
			segments = append(segments, Segment{Text: string(runes[start:i]), Highlight: marked[start]})
			start = i
		}
	}
	return segments
}

// RenderContent renders a suggestion whose match is on text: the title is
// highlighted, the note is plain.
func RenderContent(c Container, text, note string, match *search.Match) {
	c.SetTitle(text, ranges(match))
	if note != "" {
		c.SetNote(note, nil)
	}
}

// RenderPath renders a suggestion whose match is on its path: the title is
// plain and the path, shown as the note, is highlighted.
func RenderPath(c Container, title, path string, match *search.Match) {
	c.SetTitle(title, nil)
	c.SetNote(path, ranges(match))
}

func ranges(m *search.Match) []search.Range {
	if m == nil {
		return nil
	}
	return m.Ranges
}
