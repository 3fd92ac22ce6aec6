package switcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/quickswitch/pkg/commands"
	"github.com/bastiangx/quickswitch/pkg/config"
	"github.com/bastiangx/quickswitch/pkg/render"
	"github.com/bastiangx/quickswitch/pkg/search"
	"github.com/bastiangx/quickswitch/pkg/starred"
	"github.com/bastiangx/quickswitch/pkg/suggest"
	"github.com/bastiangx/quickswitch/pkg/vault"
	"github.com/bastiangx/quickswitch/pkg/workspace"
)

type recordingNavigator struct {
	opened []string
	err    error
}

func (n *recordingNavigator) Open(file *vault.File, _ workspace.Trigger) error {
	if n.err != nil {
		return n.err
	}
	n.opened = append(n.opened, file.Path)
	return nil
}

type fixture struct {
	env      *Env
	nav      *recordingNavigator
	notices  []string
	source   *starred.Memory
	ws       *workspace.Workspace
	registry *commands.Registry
	sw       *Switcher
}

func newFixture(t *testing.T, paths ...string) *fixture {
	t.Helper()
	f := &fixture{
		nav:      &recordingNavigator{},
		source:   starred.NewMemory(),
		ws:       workspace.New(nil),
		registry: commands.NewRegistry(),
	}
	f.env = &Env{
		Vault:     vault.FromPaths(paths...),
		Navigator: f.nav,
		Notifier:  workspace.NotifierFunc(func(m string) { f.notices = append(f.notices, m) }),
		Settings:  config.DefaultSettings(),
	}
	f.sw = New(f.env,
		NewFileHandler(f.env),
		NewEditorHandler(f.env, f.ws),
		NewStarredHandler(f.env, f.source),
		NewCommandHandler(f.env, f.registry),
	)
	return f
}

func titles(suggestions []suggest.Suggestion) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Text()
	}
	return out
}

func paths(suggestions []suggest.Suggestion) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.File.Path
	}
	return out
}

func TestStarredTitleFollowsLiveFile(t *testing.T) {
	f := newFixture(t, "a/Note1.md")
	f.source.SetItems(starred.Item{Type: starred.TypeFile, Path: "a/Note1.md", Title: "OldName"})

	info, got := f.sw.Suggestions("* ")
	require.Equal(t, ModeStarredList, info.Mode)
	require.Len(t, got, 1)

	item, ok := got[0].Item.(StarredItem)
	require.True(t, ok)
	assert.Equal(t, "Note1", item.Title)
	assert.Equal(t, search.MatchNone, got[0].MatchType)
	assert.Nil(t, got[0].Match)
	assert.Equal(t, suggest.TypeStarred, got[0].Type)
}

func TestStarredContentMatch(t *testing.T) {
	f := newFixture(t, "a/Foo.md", "b/Bar.md")
	f.source.SetItems(starred.Files("a/Foo.md", "b/Bar.md")...)

	_, got := f.sw.Suggestions("* foo")
	require.Len(t, got, 1)
	assert.Equal(t, "Foo", got[0].Text())
	assert.Equal(t, search.MatchContent, got[0].MatchType)
	require.NotNil(t, got[0].Match)
}

func TestStarredDropsUnresolvedAndNonFileItems(t *testing.T) {
	f := newFixture(t, "a.md")
	f.source.SetItems(
		starred.Item{Type: starred.TypeFile, Path: "gone.md"},
		starred.Item{Type: starred.TypeFolder, Path: "a"},
		starred.Item{Type: starred.TypeSearch, Query: "x"},
		starred.Item{Type: starred.TypeFile, Path: "a.md"},
	)

	h := NewStarredHandler(f.env, f.source)
	items := h.GetItems()
	require.Len(t, items, 1)
	assert.Equal(t, "a.md", items[0].File.Path)

	_, got := f.sw.Suggestions("* ")
	assert.Equal(t, []string{"a.md"}, paths(got))
}

func TestStarredEmptyQueryKeepsSourceOrder(t *testing.T) {
	f := newFixture(t, "z.md", "a.md", "m.md")
	f.source.SetItems(starred.Files("z.md", "a.md", "m.md")...)

	_, got := f.sw.Suggestions("* ")
	assert.Equal(t, []string{"z.md", "a.md", "m.md"}, paths(got))
	for _, s := range got {
		assert.Equal(t, search.MatchNone, s.MatchType)
	}
}

func TestStarredParentPathMatch(t *testing.T) {
	f := newFixture(t, "projects/Notes.md")
	f.source.SetItems(starred.Files("projects/Notes.md")...)

	_, got := f.sw.Suggestions("* projects")
	require.Len(t, got, 1)
	assert.Equal(t, search.MatchParentPath, got[0].MatchType)

	row := f.sw.Row(got[0])
	assert.True(t, row.HasClass(StarredClass))
	assert.Equal(t, "Notes", row.Title)
	assert.Empty(t, row.TitleRanges)
	assert.Equal(t, "projects/Notes.md", row.Note)
	assert.Equal(t, []search.Range{{Start: 0, End: 8}}, row.NoteRanges)
}

func TestStarredContentRenderHighlightsTitle(t *testing.T) {
	f := newFixture(t, "a/Foo.md")
	f.source.SetItems(starred.Files("a/Foo.md")...)

	_, got := f.sw.Suggestions("* foo")
	require.Len(t, got, 1)

	row := &render.Row{}
	f.sw.Render(got[0], row)
	assert.Equal(t, "Foo", row.Title)
	assert.Equal(t, []search.Range{{Start: 0, End: 3}}, row.TitleRanges)
	assert.Empty(t, row.NoteRanges)
}

func TestStarredRankingIsStable(t *testing.T) {
	f := newFixture(t, "a/Note.md", "b/Note.md")

	f.source.SetItems(starred.Files("a/Note.md", "b/Note.md")...)
	_, got := f.sw.Suggestions("* note")
	assert.Equal(t, []string{"a/Note.md", "b/Note.md"}, paths(got))

	f.source.SetItems(starred.Files("b/Note.md", "a/Note.md")...)
	_, got = f.sw.Suggestions("* note")
	assert.Equal(t, []string{"b/Note.md", "a/Note.md"}, paths(got))
}

func TestStarredNonEmptyQueryOnlyMatches(t *testing.T) {
	f := newFixture(t, "a/Foo.md", "b/Bar.md", "foo/Baz.md")
	f.source.SetItems(starred.Files("a/Foo.md", "b/Bar.md", "foo/Baz.md")...)

	_, got := f.sw.Suggestions("* foo")
	require.Len(t, got, 2)
	for _, s := range got {
		assert.NotEqual(t, search.MatchNone, s.MatchType)
	}
	assert.Equal(t, search.MatchContent, got[0].MatchType, "title hit first")
	assert.Equal(t, search.MatchParentPath, got[1].MatchType)
}

func TestStarredChoose(t *testing.T) {
	f := newFixture(t, "a/Foo.md")
	f.source.SetItems(starred.Files("a/Foo.md")...)
	_, got := f.sw.Suggestions("* ")
	require.Len(t, got, 1)

	f.sw.Choose(got[0], workspace.Trigger{Source: "enter"})
	assert.Equal(t, []string{"a/Foo.md"}, f.nav.opened)
	assert.Empty(t, f.notices)
}

func TestStarredChooseSkipsRemovedFile(t *testing.T) {
	f := newFixture(t, "a/Foo.md")
	f.source.SetItems(starred.Files("a/Foo.md")...)
	_, got := f.sw.Suggestions("* ")
	require.Len(t, got, 1)

	f.env.Vault.Remove("a/Foo.md")
	f.sw.Choose(got[0], workspace.Trigger{})
	assert.Empty(t, f.nav.opened)
	assert.Empty(t, f.notices)
}

func TestStarredChooseIgnoresOtherShapes(t *testing.T) {
	f := newFixture(t, "a/Foo.md")
	h := NewStarredHandler(f.env, f.source)
	file := f.env.Vault.Resolve("a/Foo.md")

	tests := []struct {
		name string
		sug  suggest.Suggestion
	}{
		{"no payload", suggest.Suggestion{Type: suggest.TypeStarred, File: file}},
		{"other payload", suggest.Suggestion{Type: suggest.TypeStarred, File: file, Item: FileItem{Title: "Foo", Path: "a/Foo.md"}}},
		{"folder variant", suggest.Suggestion{Type: suggest.TypeStarred, File: file, Item: StarredItem{Title: "a", Path: "a", ItemType: starred.TypeFolder}}},
		{"no file", suggest.Suggestion{Type: suggest.TypeStarred, Item: StarredItem{Title: "Foo", Path: "a/Foo.md", ItemType: starred.TypeFile}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.OnChooseSuggestion(tt.sug, workspace.Trigger{})
			assert.Empty(t, f.nav.opened)
			assert.Empty(t, f.notices)
		})
	}
}

func TestStarredChooseFailureNotifies(t *testing.T) {
	f := newFixture(t, "a/Foo.md")
	f.nav.err = errors.New("denied")
	f.source.SetItems(starred.Files("a/Foo.md")...)

	_, got := f.sw.Suggestions("* ")
	require.Len(t, got, 1)
	f.sw.Choose(got[0], workspace.Trigger{})

	assert.Equal(t, []string{"Unable to open starred file a/Foo.md"}, f.notices)
}

func TestGetSuggestionsWithoutInput(t *testing.T) {
	f := newFixture(t, "a.md")
	for _, h := range f.sw.Handlers() {
		got := h.GetSuggestions(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestParse(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		input  string
		mode   Mode
		index  int
		filter string
	}{
		{"plain text", "note", ModeStandard, 0, "note"},
		{"empty", "", ModeStandard, 0, ""},
		{"starred", "* foo", ModeStarredList, 2, "foo"},
		{"starred without filter", "* ", ModeStarredList, 2, ""},
		{"incomplete command", "*", ModeStandard, 0, "*"},
		{"editor", "edt x y", ModeEditorList, 4, "x y"},
		{"command", ">run", ModeCommandList, 1, "run"},
		{"command not at start", "a>run", ModeStandard, 0, "a>run"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := f.sw.Parse(tt.input, nil, nil)
			assert.Equal(t, tt.mode, info.Mode)
			assert.Equal(t, tt.index, info.Command.Index)
			assert.Equal(t, tt.filter, info.Command.FilterText)

			for _, m := range []Mode{ModeStandard, ModeEditorList, ModeStarredList, ModeCommandList} {
				assert.Equal(t, m == tt.mode, info.Validated(m), "mode %s", ModeName(m))
			}
		})
	}
}

func TestParseDisabledSourceFallsThrough(t *testing.T) {
	f := newFixture(t, "a/Foo.md")
	f.source.SetItems(starred.Files("a/Foo.md")...)
	f.source.SetEnabled(false)

	info := f.sw.Parse("* foo", nil, nil)
	assert.Equal(t, ModeStandard, info.Mode)
	assert.Equal(t, "* foo", info.Command.FilterText)
	assert.False(t, info.Validated(ModeStarredList))
}

func TestParseLongestCommandWins(t *testing.T) {
	f := newFixture(t)
	settings := config.DefaultSettings()
	settings.Switcher.CommandListCommand = "ed"
	f.sw.Reload(settings)

	info := f.sw.Parse("edt x", nil, nil)
	assert.Equal(t, ModeEditorList, info.Mode)
	assert.Equal(t, "x", info.Command.FilterText)

	info = f.sw.Parse("ed x", nil, nil)
	assert.Equal(t, ModeCommandList, info.Mode)
	assert.Equal(t, " x", info.Command.FilterText)
}

func TestParseDeclinedLongestFallsToShorter(t *testing.T) {
	f := newFixture(t)
	settings := config.DefaultSettings()
	settings.Switcher.CommandListCommand = "ed"
	f.env.Settings = settings

	// without a leaf source the editor handler never activates
	sw := New(f.env,
		NewFileHandler(f.env),
		NewEditorHandler(f.env, nil),
		NewCommandHandler(f.env, f.registry),
	)
	info := sw.Parse("edt x", nil, nil)
	assert.Equal(t, ModeCommandList, info.Mode)
	assert.Equal(t, "t x", info.Command.FilterText)
}

func TestParseSharedCommandUsesRegistrationOrder(t *testing.T) {
	f := newFixture(t, "a.md")
	settings := config.DefaultSettings()
	settings.Switcher.StarredListCommand = "@"
	settings.Switcher.EditorListCommand = "@"
	f.sw.Reload(settings)

	// the editor handler was registered before the starred handler
	assert.Equal(t, ModeEditorList, f.sw.Parse("@x", nil, nil).Mode)
}

func TestEmptyCommandIsNeverRegistered(t *testing.T) {
	f := newFixture(t, "a.md")
	settings := config.DefaultSettings()
	settings.Switcher.StarredListCommand = ""
	f.sw.Reload(settings)

	info := f.sw.Parse("* foo", nil, nil)
	assert.Equal(t, ModeStandard, info.Mode)
	info = f.sw.Parse("", nil, nil)
	assert.Equal(t, ModeStandard, info.Mode)
}

func TestReloadPicksUpNewCommands(t *testing.T) {
	f := newFixture(t, "a.md")
	f.source.SetItems(starred.Files("a.md")...)

	settings := config.DefaultSettings()
	settings.Switcher.StarredListCommand = "fav:"
	f.sw.Reload(settings)

	assert.Equal(t, ModeStandard, f.sw.Parse("* a", nil, nil).Mode)
	info, got := f.sw.Suggestions("fav:a")
	assert.Equal(t, ModeStarredList, info.Mode)
	assert.Len(t, got, 1)
}

func TestParseKeepsContext(t *testing.T) {
	f := newFixture(t)
	active := &suggest.Suggestion{Type: suggest.TypeFile}
	leaf := &workspace.Leaf{ID: 7}
	info := f.sw.Parse("x", active, leaf)
	assert.Same(t, active, info.ActiveSuggestion)
	assert.Same(t, leaf, info.ActiveLeaf)
}

func TestFileSuggestions(t *testing.T) {
	f := newFixture(t, "a/Note1.md", "projects/Notes.md", "b/Other.md")

	info, got := f.sw.Suggestions("note")
	assert.Equal(t, ModeStandard, info.Mode)
	assert.ElementsMatch(t, []string{"a/Note1.md", "projects/Notes.md"}, paths(got))

	_, got = f.sw.Suggestions("")
	assert.Equal(t, []string{"a/Note1.md", "b/Other.md", "projects/Notes.md"}, paths(got))

	f.sw.Choose(got[1], workspace.Trigger{})
	assert.Equal(t, []string{"b/Other.md"}, f.nav.opened)
}

func TestFileChooseSkipsRemovedFile(t *testing.T) {
	f := newFixture(t, "a.md")
	_, got := f.sw.Suggestions("")
	require.Len(t, got, 1)

	f.env.Vault.Remove("a.md")
	f.sw.Choose(got[0], workspace.Trigger{})
	assert.Empty(t, f.nav.opened)
}

func TestSuggestionsLimit(t *testing.T) {
	f := newFixture(t, "a.md", "b.md", "c.md")
	settings := config.DefaultSettings()
	settings.Switcher.MaxSuggestions = 2
	f.sw.Reload(settings)

	_, got := f.sw.Suggestions("")
	assert.Len(t, got, 2)
}

func TestEditorSuggestions(t *testing.T) {
	f := newFixture(t, "a.md", "b.md")
	a, b := f.env.Vault.Resolve("a.md"), f.env.Vault.Resolve("b.md")
	require.NoError(t, f.ws.Open(a, workspace.Trigger{}))
	require.NoError(t, f.ws.Open(b, workspace.Trigger{NewLeaf: true}))
	require.NoError(t, f.ws.Open(a, workspace.Trigger{NewLeaf: true}))

	info, got := f.sw.Suggestions("edt ")
	require.Equal(t, ModeEditorList, info.Mode)
	assert.Equal(t, []string{"a.md", "b.md"}, paths(got), "one entry per file, most recent first")

	f.sw.Choose(got[1], workspace.Trigger{})
	assert.Equal(t, "b.md", f.ws.Active().File.Path)

	_, got = f.sw.Suggestions("edt b")
	require.Len(t, got, 1)
	assert.Equal(t, "b.md", got[0].File.Path)
	assert.True(t, f.sw.Row(got[0]).HasClass(EditorClass))
}

func TestEditorDropsRemovedFiles(t *testing.T) {
	f := newFixture(t, "a.md", "b.md")
	require.NoError(t, f.ws.Open(f.env.Vault.Resolve("a.md"), workspace.Trigger{}))
	require.NoError(t, f.ws.Open(f.env.Vault.Resolve("b.md"), workspace.Trigger{NewLeaf: true}))
	f.env.Vault.Remove("b.md")

	_, got := f.sw.Suggestions("edt ")
	assert.Equal(t, []string{"a.md"}, paths(got))
}

func TestCommandSuggestions(t *testing.T) {
	f := newFixture(t)
	ran := ""
	require.NoError(t, f.registry.Register(commands.Command{ID: "alpha", Name: "Alpha", Run: func() error { ran = "alpha"; return nil }}))
	require.NoError(t, f.registry.Register(commands.Command{ID: "beta", Name: "Beta", Run: func() error { ran = "beta"; return nil }}))
	require.NoError(t, f.registry.Register(commands.Command{ID: "crash", Name: "Crash", Run: func() error { return errors.New("boom") }}))

	info, got := f.sw.Suggestions(">")
	require.Equal(t, ModeCommandList, info.Mode)
	assert.Equal(t, []string{"Alpha", "Beta", "Crash"}, titles(got))
	for _, s := range got {
		assert.Nil(t, s.File)
	}

	f.sw.Choose(got[1], workspace.Trigger{})
	assert.Equal(t, "beta", ran)

	_, got = f.sw.Suggestions(">")
	assert.Equal(t, []string{"Beta", "Alpha", "Crash"}, titles(got), "recent first")

	_, got = f.sw.Suggestions(">alp")
	require.Len(t, got, 1)
	assert.Equal(t, "Alpha", got[0].Text())
	row := f.sw.Row(got[0])
	assert.True(t, row.HasClass(CommandClass))
	assert.NotEmpty(t, row.TitleRanges)

	_, got = f.sw.Suggestions(">crash")
	require.Len(t, got, 1)
	f.sw.Choose(got[0], workspace.Trigger{})
	assert.Equal(t, []string{"Unable to run command Crash"}, f.notices)
}

func TestChooseUnknownTypeIsIgnored(t *testing.T) {
	f := newFixture(t, "a.md")
	sw := New(f.env, NewFileHandler(f.env))
	sw.Choose(suggest.Suggestion{Type: suggest.TypeCommand, Item: CommandItem{ID: "x"}}, workspace.Trigger{})
	row := sw.Row(suggest.Suggestion{Type: suggest.TypeStarred})
	assert.Empty(t, row.Title)
}
