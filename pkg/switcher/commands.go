package switcher

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/quickswitch/pkg/commands"
	"github.com/bastiangx/quickswitch/pkg/render"
	"github.com/bastiangx/quickswitch/pkg/search"
	"github.com/bastiangx/quickswitch/pkg/suggest"
	"github.com/bastiangx/quickswitch/pkg/workspace"
)

const CommandClass = "qs-suggestion-command"

// CommandItem is the payload of a command suggestion.
type CommandItem struct {
	ID   string
	Name string
}

func (i CommandItem) Text() string {
	return i.Name
}

// CommandHandler lists registered commands. Commands are not files, so
// there is no path fallback. Without a search term recently executed
// commands come first.
type CommandHandler struct {
	env      *Env
	registry *commands.Registry
}

func NewCommandHandler(env *Env, registry *commands.Registry) *CommandHandler {
	return &CommandHandler{env: env, registry: registry}
}

func (h *CommandHandler) Mode() Mode         { return ModeCommandList }
func (h *CommandHandler) Type() suggest.Type { return suggest.TypeCommand }

func (h *CommandHandler) CommandString() string {
	return h.env.commandFor(ModeCommandList)
}

func (h *CommandHandler) ValidateCommand(_ string, index int, filterText string, _ *suggest.Suggestion, _ *workspace.Leaf) ParsedCommand {
	if h.registry == nil {
		return ParsedCommand{}
	}
	return activate(ModeCommandList, index, filterText)
}

func (h *CommandHandler) GetItems() []ItemInfo[CommandItem] {
	if h.registry == nil {
		return nil
	}
	cmds := h.registry.Recent()
	items := make([]ItemInfo[CommandItem], len(cmds))
	for i, cmd := range cmds {
		items[i] = ItemInfo[CommandItem]{Item: CommandItem{ID: cmd.ID, Name: cmd.Name}}
	}
	return items
}

func (h *CommandHandler) GetSuggestions(info *InputInfo) []suggest.Suggestion {
	if info == nil {
		return emptySuggestions()
	}
	return suggest.Collect(info.SearchQuery(), h.GetItems(),
		func(it ItemInfo[CommandItem]) (string, string) { return it.Item.Name, "" },
		func(it ItemInfo[CommandItem], res search.Result) suggest.Suggestion {
			return suggest.Suggestion{
				Type:      suggest.TypeCommand,
				Item:      it.Item,
				MatchType: res.MatchType,
				Match:     res.Match,
			}
		})
}

func (h *CommandHandler) RenderSuggestion(s suggest.Suggestion, c render.Container) {
	item, ok := s.Item.(CommandItem)
	if !ok || c == nil {
		return
	}
	c.AddClass(CommandClass)
	render.RenderContent(c, item.Name, "", s.Match)
}

func (h *CommandHandler) OnChooseSuggestion(s suggest.Suggestion, _ workspace.Trigger) {
	item, ok := s.Item.(CommandItem)
	if !ok || h.registry == nil {
		return
	}
	if err := h.registry.Execute(item.ID); err != nil {
		msg := fmt.Sprintf("Unable to run command %s", item.Name)
		log.Errorf("%s: %v", msg, err)
		h.env.notify(msg)
	}
}
