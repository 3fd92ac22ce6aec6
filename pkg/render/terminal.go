package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal renders rows as styled text lines.
type Terminal struct {
	Index     lipgloss.Style
	Title     lipgloss.Style
	Highlight lipgloss.Style
	Note      lipgloss.Style
	Flair     lipgloss.Style
	// Classes maps a row class to a marker printed before the title.
	Classes map[string]string
}

// NewTerminal returns the default terminal styles.
func NewTerminal() *Terminal {
	return &Terminal{
		Index: lipgloss.NewStyle().Faint(true),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}),
		Highlight: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		Note: lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#797593", Dark: "#908caa"}),
		Flair: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#d7827e", Dark: "#ea9a97"}),
		Classes: map[string]string{},
	}
}

// Line renders row as a single line prefixed with its 1-based position.
func (t *Terminal) Line(pos int, row *Row) string {
	var b strings.Builder
	b.WriteString(t.Index.Render(fmt.Sprintf("%2d.", pos)))
	b.WriteByte(' ')

	for _, class := range row.Classes {
		if marker, ok := t.Classes[class]; ok {
			b.WriteString(t.Flair.Render(marker))
			b.WriteByte(' ')
		}
	}

	b.WriteString(t.segments(row.TitleSegments(), t.Title))
	if row.Note != "" {
		b.WriteString("  ")
		b.WriteString(t.segments(row.NoteSegments(), t.Note))
	}
	if row.Flair != "" {
		b.WriteString("  ")
		b.WriteString(t.Flair.Render(row.Flair))
	}
	return b.String()
}

// Lines renders rows one per line.
func (t *Terminal) Lines(rows []*Row) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = t.Line(i+1, row)
	}
	return strings.Join(lines, "\n")
}

func (t *Terminal) segments(segments []Segment, base lipgloss.Style) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Highlight {
			b.WriteString(t.Highlight.Render(s.Text))
		} else {
			b.WriteString(base.Render(s.Text))
		}
	}
	return b.String()
}
