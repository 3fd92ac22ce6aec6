// Package workspace tracks the editors (leaves) open in a vault and opens
// files into them.
package workspace

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/quickswitch/pkg/vault"
)

// Trigger describes the event that selected a suggestion.
type Trigger struct {
	// NewLeaf requests a new editor instead of reusing the active one,
	// e.g. a modifier key was held.
	NewLeaf bool
	// Source names the origin of the event, such as "enter" or "click".
	Source string
}

// Navigator opens files.
type Navigator interface {
	Open(file *vault.File, trigger Trigger) error
}

// Notifier shows messages to the user.
type Notifier interface {
	Notify(message string)
}

// Opener performs the actual open of a file, for example by launching an
// external editor.
type Opener interface {
	OpenFile(file *vault.File) error
}

// Leaf is an open editor.
type Leaf struct {
	ID         int
	File       *vault.File
	LastActive int64
}

// Workspace is a Navigator that keeps track of the leaves it opened.
type Workspace struct {
	opener Opener

	mu     sync.Mutex
	leaves []*Leaf
	active int
	nextID int
	clock  int64
}

// New creates an empty workspace. A nil opener behaves like NopOpener.
func New(opener Opener) *Workspace {
	if opener == nil {
		opener = NopOpener{}
	}
	return &Workspace{opener: opener, nextID: 1}
}

// Open shows file in the active leaf, or in a new leaf when the trigger asks
// for one or nothing is open yet.
func (w *Workspace) Open(file *vault.File, trigger Trigger) error {
	if file == nil {
		return fmt.Errorf("no file to open")
	}
	if err := w.opener.OpenFile(file); err != nil {
		return fmt.Errorf("failed to open %s: %w", file.Path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	leaf := w.leafLocked(w.active)
	if leaf == nil || trigger.NewLeaf {
		leaf = &Leaf{ID: w.nextID}
		w.nextID++
		w.leaves = append(w.leaves, leaf)
	}
	leaf.File = file
	w.touchLocked(leaf)

	log.Debugf("Opened %s in leaf %d (%s)", file.Path, leaf.ID, trigger.Source)
	return nil
}

// Activate makes the leaf with id the active one.
func (w *Workspace) Activate(id int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	leaf := w.leafLocked(id)
	if leaf == nil {
		return fmt.Errorf("no leaf with id %d", id)
	}
	w.touchLocked(leaf)
	return nil
}

// Close removes the leaf with id.
func (w *Workspace) Close(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, l := range w.leaves {
		if l.ID == id {
			w.leaves = append(w.leaves[:i], w.leaves[i+1:]...)
			break
		}
	}
	if w.active == id {
		w.active = 0
		if recent := w.sortedLocked(); len(recent) > 0 {
			w.active = recent[0].ID
		}
	}
}

// Active returns a copy of the active leaf, or nil.
func (w *Workspace) Active() *Leaf {
	w.mu.Lock()
	defer w.mu.Unlock()

	if l := w.leafLocked(w.active); l != nil {
		cp := *l
		return &cp
	}
	return nil
}

// Leaves returns copies of the open leaves, most recently active first.
func (w *Workspace) Leaves() []Leaf {
	w.mu.Lock()
	defer w.mu.Unlock()

	sorted := w.sortedLocked()
	out := make([]Leaf, len(sorted))
	for i, l := range sorted {
		out[i] = *l
	}
	return out
}

func (w *Workspace) leafLocked(id int) *Leaf {
	for _, l := range w.leaves {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (w *Workspace) touchLocked(l *Leaf) {
	w.clock++
	l.LastActive = w.clock
	w.active = l.ID
}

func (w *Workspace) sortedLocked() []*Leaf {
	sorted := make([]*Leaf, len(w.leaves))
	copy(sorted, w.leaves)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastActive > sorted[j].LastActive
	})
	return sorted
}
