package switcher

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/quickswitch/internal/utils"
	"github.com/bastiangx/quickswitch/pkg/render"
	"github.com/bastiangx/quickswitch/pkg/search"
	"github.com/bastiangx/quickswitch/pkg/suggest"
	"github.com/bastiangx/quickswitch/pkg/workspace"
)

const EditorClass = "qs-suggestion-editor"

// Leaves is the source of open editors.
type Leaves interface {
	// Leaves returns the open leaves, most recently active first.
	Leaves() []workspace.Leaf
	Activate(id int) error
}

// EditorItem is the payload of an open editor suggestion.
type EditorItem struct {
	LeafID int
	Title  string
	Path   string
}

func (i EditorItem) Text() string {
	return i.Title
}

// EditorHandler lists the open editors, one per file, most recent first.
type EditorHandler struct {
	env    *Env
	leaves Leaves
}

func NewEditorHandler(env *Env, leaves Leaves) *EditorHandler {
	return &EditorHandler{env: env, leaves: leaves}
}

func (h *EditorHandler) Mode() Mode         { return ModeEditorList }
func (h *EditorHandler) Type() suggest.Type { return suggest.TypeEditor }

func (h *EditorHandler) CommandString() string {
	return h.env.commandFor(ModeEditorList)
}

func (h *EditorHandler) ValidateCommand(_ string, index int, filterText string, _ *suggest.Suggestion, _ *workspace.Leaf) ParsedCommand {
	if h.leaves == nil {
		return ParsedCommand{}
	}
	return activate(ModeEditorList, index, filterText)
}

// GetItems returns the open editors whose file still exists. When several
// editors show the same file only the most recent one is kept.
func (h *EditorHandler) GetItems() []ItemInfo[EditorItem] {
	if h.leaves == nil {
		return nil
	}

	seen := utils.NewSuggestionFilter()
	var items []ItemInfo[EditorItem]
	for _, leaf := range h.leaves.Leaves() {
		if leaf.File == nil {
			continue
		}
		file := h.env.resolve(leaf.File.Path)
		if file == nil || !seen.ShouldInclude(file.Path) {
			continue
		}
		items = append(items, ItemInfo[EditorItem]{
			File: file,
			Item: EditorItem{LeafID: leaf.ID, Title: file.Basename, Path: file.Path},
		})
	}
	return items
}

func (h *EditorHandler) GetSuggestions(info *InputInfo) []suggest.Suggestion {
	if info == nil {
		return emptySuggestions()
	}
	return suggest.Collect(info.SearchQuery(), h.GetItems(), fileFields[EditorItem],
		func(it ItemInfo[EditorItem], res search.Result) suggest.Suggestion {
			return suggest.Suggestion{
				Type:      suggest.TypeEditor,
				File:      it.File,
				Item:      it.Item,
				MatchType: res.MatchType,
				Match:     res.Match,
			}
		})
}

func (h *EditorHandler) RenderSuggestion(s suggest.Suggestion, c render.Container) {
	if _, ok := s.Item.(EditorItem); !ok || s.File == nil || c == nil {
		return
	}
	renderFile(s, c, EditorClass)
}

// OnChooseSuggestion brings the editor to the front.
func (h *EditorHandler) OnChooseSuggestion(s suggest.Suggestion, _ workspace.Trigger) {
	item, ok := s.Item.(EditorItem)
	if !ok || h.leaves == nil {
		return
	}
	if err := h.leaves.Activate(item.LeafID); err != nil {
		msg := fmt.Sprintf("Unable to switch to editor %s", item.Path)
		log.Errorf("%s: %v", msg, err)
		h.env.notify(msg)
	}
}
