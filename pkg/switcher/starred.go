package switcher

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/quickswitch/pkg/render"
	"github.com/bastiangx/quickswitch/pkg/search"
	"github.com/bastiangx/quickswitch/pkg/starred"
	"github.com/bastiangx/quickswitch/pkg/suggest"
	"github.com/bastiangx/quickswitch/pkg/workspace"
)

// StarredClass is the row class of starred suggestions.
const StarredClass = "qs-suggestion-starred"

// StarredItem is the payload of a starred suggestion.
type StarredItem struct {
	// Title is the current basename of the file, not the stored title.
	Title    string
	Path     string
	ItemType string
}

func (i StarredItem) Text() string {
	return i.Title
}

// StarredHandler lists the starred files of the vault.
type StarredHandler struct {
	env    *Env
	source starred.Source
}

func NewStarredHandler(env *Env, source starred.Source) *StarredHandler {
	return &StarredHandler{env: env, source: source}
}

func (h *StarredHandler) Mode() Mode         { return ModeStarredList }
func (h *StarredHandler) Type() suggest.Type { return suggest.TypeStarred }

func (h *StarredHandler) CommandString() string {
	return h.env.commandFor(ModeStarredList)
}

// ValidateCommand activates the mode whenever the starred source is enabled.
func (h *StarredHandler) ValidateCommand(_ string, index int, filterText string, _ *suggest.Suggestion, _ *workspace.Leaf) ParsedCommand {
	if h.source == nil || !h.source.Enabled() {
		return ParsedCommand{}
	}
	return activate(ModeStarredList, index, filterText)
}

// GetItems returns the starred files that still exist, titled after their
// current basename. Entries that are not files or no longer resolve are
// dropped.
func (h *StarredHandler) GetItems() []ItemInfo[StarredItem] {
	if h.source == nil {
		return nil
	}

	var items []ItemInfo[StarredItem]
	for _, entry := range h.source.Items() {
		if !entry.IsFile() {
			continue
		}
		file := h.env.resolve(entry.Path)
		if file == nil {
			continue
		}
		items = append(items, ItemInfo[StarredItem]{
			File: file,
			Item: StarredItem{
				Title:    file.Basename,
				Path:     file.Path,
				ItemType: starred.TypeFile,
			},
		})
	}
	return items
}

func (h *StarredHandler) GetSuggestions(info *InputInfo) []suggest.Suggestion {
	if info == nil {
		return emptySuggestions()
	}
	return suggest.Collect(info.SearchQuery(), h.GetItems(), fileFields[StarredItem],
		func(it ItemInfo[StarredItem], res search.Result) suggest.Suggestion {
			return suggest.Suggestion{
				Type:      suggest.TypeStarred,
				File:      it.File,
				Item:      it.Item,
				MatchType: res.MatchType,
				Match:     res.Match,
			}
		})
}

func (h *StarredHandler) RenderSuggestion(s suggest.Suggestion, c render.Container) {
	if _, ok := s.Item.(StarredItem); !ok || s.File == nil || c == nil {
		return
	}
	renderFile(s, c, StarredClass)
}

// OnChooseSuggestion opens the starred file. Failures are reported to the
// notifier, never returned.
func (h *StarredHandler) OnChooseSuggestion(s suggest.Suggestion, trigger workspace.Trigger) {
	item, ok := s.Item.(StarredItem)
	if !ok || item.ItemType != starred.TypeFile || s.File == nil {
		return
	}
	file := h.env.resolve(item.Path)
	if file == nil {
		log.Debugf("Starred file %s is gone, nothing to open", item.Path)
		return
	}
	if err := h.env.open(file, trigger); err != nil {
		msg := fmt.Sprintf("Unable to open starred file %s", item.Path)
		log.Errorf("%s: %v", msg, err)
		h.env.notify(msg)
	}
}
