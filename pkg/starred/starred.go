// Package starred reads the list of starred (bookmarked) items of a vault.
package starred

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// PluginID is the core plugin id that gates the starred list.
	PluginID = "starred"

	metaDir         = ".obsidian"
	starredFile     = "starred.json"
	corePluginsFile = "core-plugins.json"
)

// Item types as stored in starred.json.
const (
	TypeFile    = "file"
	TypeFolder  = "folder"
	TypeSearch  = "search"
	TypeHeading = "heading"
	TypeGroup   = "group"
)

// Item is one starred entry. Only file entries carry a meaningful Path.
type Item struct {
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
	Path  string `json:"path,omitempty"`
	Query string `json:"query,omitempty"`
	Items []Item `json:"items,omitempty"`
}

// IsFile reports whether the entry refers to a vault file.
func (i Item) IsFile() bool {
	return i.Type == TypeFile
}

// Source provides the starred items of a vault.
type Source interface {
	// Enabled reports whether the starred feature is switched on.
	Enabled() bool
	// Items returns a snapshot of the starred list in stored order.
	Items() []Item
}

type document struct {
	Items []Item `json:"items"`
}

// Store is a Source backed by the vault metadata folder. Files are re-read
// when their modification time changes.
type Store struct {
	dir string

	mu         sync.Mutex
	items      []Item
	itemsMod   time.Time
	enabled    bool
	pluginsMod time.Time
	loaded     bool
}

// NewStore creates a store for the vault at root.
func NewStore(root string) *Store {
	return &Store{dir: filepath.Join(root, metaDir)}
}

// Enabled reports whether the starred core plugin is on. A vault without a
// plugin list counts as enabled.
func (s *Store) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	return s.enabled
}

// Items returns a copy of the starred list.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	return slices.Clone(s.items)
}

// Toggle stars the file at path, or unstars it when it is already starred.
// Returns true when the file is starred afterwards.
func (s *Store) Toggle(path, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()

	items := slices.Clone(s.items)
	starred := true
	if idx := slices.IndexFunc(items, func(i Item) bool { return i.IsFile() && i.Path == path }); idx >= 0 {
		items = slices.Delete(items, idx, idx+1)
		starred = false
	} else {
		items = append(items, Item{Type: TypeFile, Title: title, Path: path})
	}

	if err := s.write(items); err != nil {
		return false, err
	}
	s.items = items
	log.Debugf("Starred %s: %v", path, starred)
	return starred, nil
}

// Path returns the location of the starred list.
func (s *Store) Path() string {
	return filepath.Join(s.dir, starredFile)
}

func (s *Store) refresh() {
	itemsPath := filepath.Join(s.dir, starredFile)
	if mod, changed := s.changed(itemsPath, s.itemsMod); changed || !s.loaded {
		items, err := readItems(itemsPath)
		if err != nil {
			log.Warnf("Failed to read starred list: %v", err)
		} else {
			s.items = items
		}
		s.itemsMod = mod
	}

	pluginsPath := filepath.Join(s.dir, corePluginsFile)
	if mod, changed := s.changed(pluginsPath, s.pluginsMod); changed || !s.loaded {
		enabled, err := readEnabled(pluginsPath)
		if err != nil {
			log.Warnf("Failed to read core plugins: %v", err)
		}
		s.enabled = enabled
		s.pluginsMod = mod
	}

	s.loaded = true
}

func (s *Store) changed(path string, last time.Time) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, !last.IsZero()
	}
	return info.ModTime(), !info.ModTime().Equal(last)
}

func (s *Store) write(items []Item) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.dir, err)
	}
	if items == nil {
		items = []Item{}
	}
	data, err := json.MarshalIndent(document{Items: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode starred list: %w", err)
	}
	path := filepath.Join(s.dir, starredFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if info, err := os.Stat(path); err == nil {
		s.itemsMod = info.ModTime()
	}
	return nil
}

func readItems(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return doc.Items, nil
}

func readEnabled(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	var plugins []string
	if err := json.Unmarshal(data, &plugins); err != nil {
		return false, fmt.Errorf("invalid %s: %w", path, err)
	}
	return slices.Contains(plugins, PluginID), nil
}

// Memory is an in-memory Source.
type Memory struct {
	mu      sync.RWMutex
	enabled bool
	items   []Item
}

// NewMemory returns an enabled source holding items.
func NewMemory(items ...Item) *Memory {
	return &Memory{enabled: true, items: items}
}

func (m *Memory) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

func (m *Memory) SetEnabled(enabled bool) {
	m.mu.Lock()
	m.enabled = enabled
	m.mu.Unlock()
}

func (m *Memory) Items() []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.items)
}

func (m *Memory) SetItems(items ...Item) {
	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
}

// Files returns an untitled file entry per path.
func Files(paths ...string) []Item {
	items := make([]Item, len(paths))
	for i, p := range paths {
		items[i] = Item{Type: TypeFile, Path: p}
	}
	return items
}
