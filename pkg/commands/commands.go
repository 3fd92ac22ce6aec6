// Package commands is a registry of named actions the switcher can run.
package commands

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/quickswitch/pkg/suggest"
)

const defaultRecent = 20

// Command is a runnable action.
type Command struct {
	ID   string
	Name string
	Run  func() error
}

// Text returns the display name.
func (c Command) Text() string {
	return c.Name
}

// Registry holds commands by id and remembers which ones ran recently.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	recent   *suggest.RecentCache
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		recent:   suggest.NewRecentCache(defaultRecent),
	}
}

// Register adds or replaces a command.
func (r *Registry) Register(cmd Command) error {
	if cmd.ID == "" {
		return fmt.Errorf("command has no id")
	}
	if cmd.Name == "" {
		cmd.Name = cmd.ID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.ID] = cmd
	return nil
}

// Get returns the command with id.
func (r *Registry) Get(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[id]
	return cmd, ok
}

// All returns every command ordered by name, then id.
func (r *Registry) All() []Command {
	r.mu.RLock()
	out := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Recent returns All reordered so that recently executed commands come
// first, most recent first.
func (r *Registry) Recent() []Command {
	all := r.All()
	sort.SliceStable(all, func(i, j int) bool {
		return r.recent.Less(all[i].ID, all[j].ID)
	})
	return all
}

// Execute runs the command with id and records it as recently used.
func (r *Registry) Execute(id string) error {
	cmd, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("unknown command %q", id)
	}
	r.recent.Touch(id)

	if cmd.Run == nil {
		return nil
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s failed: %w", cmd.ID, err)
	}
	log.Debugf("Executed command %s", cmd.ID)
	return nil
}

func (r *Registry) Stats() map[string]int {
	r.mu.RLock()
	total := len(r.commands)
	r.mu.RUnlock()

	stats := r.recent.Stats()
	stats["totalCommands"] = total
	return stats
}
