package render

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/quickswitch/pkg/search"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		ranges []search.Range
		want   []Segment
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "no ranges",
			text: "Note1",
			want: []Segment{{Text: "Note1"}},
		},
		{
			name:   "prefix highlight",
			text:   "Note1",
			ranges: []search.Range{{Start: 0, End: 4}},
			want:   []Segment{{Text: "Note", Highlight: true}, {Text: "1"}},
		},
		{
			name:   "split ranges",
			text:   "a/b/c",
			ranges: []search.Range{{Start: 0, End: 1}, {Start: 4, End: 5}},
			want: []Segment{
				{Text: "a", Highlight: true},
				{Text: "/b/"},
				{Text: "c", Highlight: true},
			},
		},
		{
			name:   "multibyte runes",
			text:   "Café",
			ranges: []search.Range{{Start: 3, End: 4}},
			want:   []Segment{{Text: "Caf"}, {Text: "é", Highlight: true}},
		},
		{
			name:   "out of bounds clipped",
			text:   "ab",
			ranges: []search.Range{{Start: -1, End: 10}},
			want:   []Segment{{Text: "ab", Highlight: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segments(tt.text, tt.ranges))
		})
	}
}

func TestRenderContent(t *testing.T) {
	row := &Row{}
	m := &search.Match{Score: 5, Ranges: []search.Range{{Start: 0, End: 2}}}
	RenderContent(row, "Note1", "a", m)

	assert.Equal(t, "Note1", row.Title)
	assert.Equal(t, m.Ranges, row.TitleRanges)
	assert.Equal(t, "a", row.Note)
	assert.Nil(t, row.NoteRanges)
}

func TestRenderPath(t *testing.T) {
	row := &Row{}
	m := &search.Match{Score: 5, Ranges: []search.Range{{Start: 0, End: 8}}}
	RenderPath(row, "Note1", "projects/Note1.md", m)

	assert.Equal(t, "Note1", row.Title)
	assert.Nil(t, row.TitleRanges)
	assert.Equal(t, "projects/Note1.md", row.Note)
	assert.Equal(t, m.Ranges, row.NoteRanges)
}

func TestRowClasses(t *testing.T) {
	row := &Row{}
	row.AddClass("x")
	row.AddClass("x")
	row.SetFlair("⌘1")
	assert.Equal(t, []string{"x"}, row.Classes)
	assert.True(t, row.HasClass("x"))
	assert.False(t, row.HasClass("y"))
	assert.Equal(t, "⌘1", row.Flair)
}

func TestTerminalLine(t *testing.T) {
	term := &Terminal{
		Index:     lipgloss.NewStyle(),
		Title:     lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle(),
		Note:      lipgloss.NewStyle(),
		Flair:     lipgloss.NewStyle(),
		Classes:   map[string]string{"starred": "*"},
	}
	row := &Row{}
	row.AddClass("starred")
	RenderPath(row, "Note1", "a/Note1.md", nil)

	assert.Equal(t, " 1. * Note1  a/Note1.md", term.Line(1, row))

	lines := term.Lines([]*Row{row, {Title: "x"}})
	require.Contains(t, lines, "\n")
	assert.Contains(t, lines, " 2. x")
}
