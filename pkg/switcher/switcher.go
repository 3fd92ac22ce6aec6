package switcher

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/quickswitch/pkg/config"
	"github.com/bastiangx/quickswitch/pkg/render"
	"github.com/bastiangx/quickswitch/pkg/suggest"
	"github.com/bastiangx/quickswitch/pkg/workspace"
)

// Switcher dispatches input to the handler of the active mode.
type Switcher struct {
	env      *Env
	handlers []Handler
	standard Handler
	byType   map[suggest.Type]Handler
	prefixes *prefixIndex
}

// New creates a switcher with handlers in registration order. The first
// handler of the standard mode receives input no other handler accepts.
func New(env *Env, handlers ...Handler) *Switcher {
	if env == nil {
		env = &Env{}
	}
	if env.Settings == nil {
		env.Settings = config.DefaultSettings()
	}
	s := &Switcher{
		env:    env,
		byType: make(map[suggest.Type]Handler),
	}
	for _, h := range handlers {
		s.register(h)
	}
	s.rebuild()
	return s
}

// Register appends a handler.
func (s *Switcher) Register(h Handler) {
	s.register(h)
	s.rebuild()
}

func (s *Switcher) register(h Handler) {
	if h == nil {
		return
	}
	s.handlers = append(s.handlers, h)
	if s.standard == nil && h.Mode() == ModeStandard {
		s.standard = h
	}
	if _, ok := s.byType[h.Type()]; !ok {
		s.byType[h.Type()] = h
	}
}

// Reload applies new settings and re-reads every command string.
func (s *Switcher) Reload(settings *config.Settings) {
	if settings != nil {
		s.env.Settings = settings
	}
	s.rebuild()
}

// Settings returns the settings in use.
func (s *Switcher) Settings() *config.Settings {
	return s.env.Settings
}

func (s *Switcher) rebuild() {
	idx := newPrefixIndex()
	for i, h := range s.handlers {
		idx.add(h.CommandString(), i)
	}
	s.prefixes = idx
	log.Debugf("Indexed %d command strings for %d handlers", idx.size, len(s.handlers))
}

// Parse classifies input. Handlers whose command prefixes the input are
// asked in order, longest command first; the first one that accepts wins.
// Otherwise the standard handler gets the whole input as filter text.
func (s *Switcher) Parse(input string, active *suggest.Suggestion, leaf *workspace.Leaf) *InputInfo {
	info := &InputInfo{
		Input:            input,
		Mode:             ModeStandard,
		ActiveSuggestion: active,
		ActiveLeaf:       leaf,
	}

	for _, c := range s.prefixes.lookup(input) {
		h := s.handlers[c.handler]
		// the trie is rebuilt on Reload, but a handler may read its command
		// from state that changed since
		if cmd := h.CommandString(); cmd != c.command || !strings.HasPrefix(input, cmd) {
			continue
		}
		pc := h.ValidateCommand(input, len(c.command), input[len(c.command):], active, leaf)
		if !pc.Activated {
			log.Debugf("Handler for %q declined input", c.command)
			continue
		}
		info.Mode = pc.Mode
		info.Command = pc
		info.handler = h
		return info
	}

	info.Command = ParsedCommand{Mode: ModeStandard, FilterText: input}
	if s.standard != nil {
		pc := s.standard.ValidateCommand(input, 0, input, active, leaf)
		if pc.Activated {
			info.Mode = pc.Mode
			info.Command = pc
			info.handler = s.standard
		}
	}
	return info
}

// Suggestions parses input and returns the suggestions of the active mode,
// cut to the configured maximum.
func (s *Switcher) Suggestions(input string) (*InputInfo, []suggest.Suggestion) {
	info := s.Parse(input, nil, nil)
	return info, s.SuggestionsFor(info)
}

// SuggestionsFor returns the suggestions of an already parsed input.
func (s *Switcher) SuggestionsFor(info *InputInfo) []suggest.Suggestion {
	if info == nil || info.handler == nil {
		return emptySuggestions()
	}
	return suggest.Limit(info.handler.GetSuggestions(info), s.env.Settings.Switcher.MaxSuggestions)
}

// Render renders sug through the handler of its type.
func (s *Switcher) Render(sug suggest.Suggestion, c render.Container) {
	if h, ok := s.byType[sug.Type]; ok {
		h.RenderSuggestion(sug, c)
	}
}

// Row renders sug into a new Row.
func (s *Switcher) Row(sug suggest.Suggestion) *render.Row {
	row := &render.Row{}
	s.Render(sug, row)
	return row
}

// Choose runs the action of sug through the handler of its type.
func (s *Switcher) Choose(sug suggest.Suggestion, trigger workspace.Trigger) {
	if h, ok := s.byType[sug.Type]; ok {
		h.OnChooseSuggestion(sug, trigger)
	}
}

// Handlers returns the registered handlers in registration order.
func (s *Switcher) Handlers() []Handler {
	return append([]Handler(nil), s.handlers...)
}
