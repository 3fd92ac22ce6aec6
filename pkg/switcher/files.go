package switcher

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/quickswitch/pkg/render"
	"github.com/bastiangx/quickswitch/pkg/search"
	"github.com/bastiangx/quickswitch/pkg/suggest"
	"github.com/bastiangx/quickswitch/pkg/workspace"
)

const FileClass = "qs-suggestion-file"

var errNoNavigator = errors.New("no navigator")

// FileItem is the payload of a file suggestion.
type FileItem struct {
	Title string
	Path  string
}

func (i FileItem) Text() string {
	return i.Title
}

// FileHandler serves the standard mode: every file of the vault, matched on
// its basename with the path as fallback.
type FileHandler struct {
	env *Env
}

func NewFileHandler(env *Env) *FileHandler {
	return &FileHandler{env: env}
}

func (h *FileHandler) Mode() Mode            { return ModeStandard }
func (h *FileHandler) Type() suggest.Type    { return suggest.TypeFile }
func (h *FileHandler) CommandString() string { return "" }

// ValidateCommand always accepts.
func (h *FileHandler) ValidateCommand(_ string, index int, filterText string, _ *suggest.Suggestion, _ *workspace.Leaf) ParsedCommand {
	return activate(ModeStandard, index, filterText)
}

func (h *FileHandler) GetItems() []ItemInfo[FileItem] {
	if h.env == nil || h.env.Vault == nil {
		return nil
	}
	files := h.env.Vault.Files()
	items := make([]ItemInfo[FileItem], len(files))
	for i, f := range files {
		items[i] = ItemInfo[FileItem]{File: f, Item: FileItem{Title: f.Basename, Path: f.Path}}
	}
	return items
}

func (h *FileHandler) GetSuggestions(info *InputInfo) []suggest.Suggestion {
	if info == nil {
		return emptySuggestions()
	}
	return suggest.Collect(info.SearchQuery(), h.GetItems(), fileFields[FileItem],
		func(it ItemInfo[FileItem], res search.Result) suggest.Suggestion {
			return suggest.Suggestion{
				Type:      suggest.TypeFile,
				File:      it.File,
				Item:      it.Item,
				MatchType: res.MatchType,
				Match:     res.Match,
			}
		})
}

func (h *FileHandler) RenderSuggestion(s suggest.Suggestion, c render.Container) {
	if _, ok := s.Item.(FileItem); !ok || s.File == nil || c == nil {
		return
	}
	renderFile(s, c, FileClass)
}

func (h *FileHandler) OnChooseSuggestion(s suggest.Suggestion, trigger workspace.Trigger) {
	item, ok := s.Item.(FileItem)
	if !ok || s.File == nil {
		return
	}
	// the file may have been removed since the suggestion was built
	if h.env.resolve(item.Path) == nil {
		return
	}
	if err := h.env.open(s.File, trigger); err != nil {
		msg := fmt.Sprintf("Unable to open file %s", item.Path)
		log.Errorf("%s: %v", msg, err)
		h.env.notify(msg)
	}
}
