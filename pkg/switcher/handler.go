/*
Package switcher classifies quick switcher input into a mode and produces the
suggestions of that mode.

Every mode is served by a Handler. A Switcher holds the handlers in
registration order, looks up which handler command strings prefix the input,
and lets the first handler that accepts the input produce suggestions. Input
no handler accepts goes to the standard (file) handler.

	sw := switcher.New(env,
		switcher.NewFileHandler(env),
		switcher.NewStarredHandler(env, starred.NewStore(root)),
	)
	info, suggestions := sw.Suggestions("* proj")
*/
package switcher

import (
	"github.com/bastiangx/quickswitch/pkg/config"
	"github.com/bastiangx/quickswitch/pkg/render"
	"github.com/bastiangx/quickswitch/pkg/search"
	"github.com/bastiangx/quickswitch/pkg/suggest"
	"github.com/bastiangx/quickswitch/pkg/vault"
	"github.com/bastiangx/quickswitch/pkg/workspace"
)

// Mode is a switcher mode.
type Mode = config.Mode

const (
	ModeStandard    = config.ModeStandard
	ModeEditorList  = config.ModeEditorList
	ModeStarredList = config.ModeStarredList
	ModeCommandList = config.ModeCommandList
)

// ModeName returns a short name for mode.
func ModeName(m Mode) string {
	switch m {
	case ModeEditorList:
		return "editor"
	case ModeStarredList:
		return "starred"
	case ModeCommandList:
		return "command"
	default:
		return "standard"
	}
}

// ParsedCommand is the outcome of Handler.ValidateCommand.
type ParsedCommand struct {
	// Activated is true when the handler takes over the input.
	Activated bool
	Mode      Mode
	// Index is the byte offset in the input where the command ends.
	Index int
	// FilterText is the input after the command.
	FilterText string
}

// InputInfo is the parse of one input string. Exactly one mode is active.
type InputInfo struct {
	Input   string
	Mode    Mode
	Command ParsedCommand

	// ActiveSuggestion and ActiveLeaf are the context the input was typed
	// in. Either may be nil.
	ActiveSuggestion *suggest.Suggestion
	ActiveLeaf       *workspace.Leaf

	handler Handler
}

// Validated reports whether mode is the active mode of the parse.
func (i *InputInfo) Validated(mode Mode) bool {
	return i != nil && i.Command.Activated && i.Mode == mode
}

// SearchQuery prepares the filter text of the active mode.
func (i *InputInfo) SearchQuery() search.Query {
	if i == nil {
		return search.Prepare("")
	}
	return search.Prepare(i.Command.FilterText)
}

// Handler serves one switcher mode.
type Handler interface {
	Mode() Mode
	// Type is the suggestion type the handler produces.
	Type() suggest.Type
	// CommandString is the input prefix that activates the mode. Empty means
	// the mode is never activated by prefix.
	CommandString() string
	// ValidateCommand decides whether the handler takes over input, given
	// that its command ends at index and filterText follows it. It has no
	// side effects.
	ValidateCommand(input string, index int, filterText string, active *suggest.Suggestion, leaf *workspace.Leaf) ParsedCommand
	// GetSuggestions returns the matching suggestions for info, ranked when
	// the query has a search term and in source order otherwise.
	GetSuggestions(info *InputInfo) []suggest.Suggestion
	RenderSuggestion(s suggest.Suggestion, c render.Container)
	// OnChooseSuggestion runs the action of s. Suggestions of another shape
	// are ignored.
	OnChooseSuggestion(s suggest.Suggestion, trigger workspace.Trigger)
}

// ItemInfo pairs a live file with the payload shown for it. ItemInfos are
// rebuilt on every pass so renames and deletions show up immediately.
type ItemInfo[T any] struct {
	File *vault.File
	Item T
}

// Env holds the collaborators handlers share.
type Env struct {
	Vault     *vault.Vault
	Navigator workspace.Navigator
	Notifier  workspace.Notifier
	Settings  *config.Settings
}

func (e *Env) commandFor(mode Mode) string {
	if e == nil || e.Settings == nil {
		return config.DefaultSettings().CommandFor(mode)
	}
	return e.Settings.CommandFor(mode)
}

func (e *Env) notify(message string) {
	if e != nil && e.Notifier != nil {
		e.Notifier.Notify(message)
	}
}

func (e *Env) resolve(path string) *vault.File {
	if e == nil || e.Vault == nil {
		return nil
	}
	return e.Vault.Resolve(path)
}

func (e *Env) open(file *vault.File, trigger workspace.Trigger) error {
	if e == nil || e.Navigator == nil {
		return errNoNavigator
	}
	return e.Navigator.Open(file, trigger)
}

func activate(mode Mode, index int, filterText string) ParsedCommand {
	return ParsedCommand{
		Activated:  true,
		Mode:       mode,
		Index:      index,
		FilterText: filterText,
	}
}

func emptySuggestions() []suggest.Suggestion {
	return []suggest.Suggestion{}
}

// fileFields matches on a title and falls back to the file path.
func fileFields[T interface{ Text() string }](info ItemInfo[T]) (string, string) {
	return info.Item.Text(), info.File.Path
}

// renderFile renders a file backed suggestion, highlighting the path when
// only the path matched.
func renderFile(s suggest.Suggestion, c render.Container, class string) {
	c.AddClass(class)
	if s.MatchType == search.MatchParentPath {
		render.RenderPath(c, s.Text(), s.File.Path, s.Match)
		return
	}
	render.RenderContent(c, s.Text(), s.File.Path, s.Match)
}
