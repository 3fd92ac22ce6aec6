package vault

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watch keeps the index in sync with the file system until ctx is done.
// The vault must have been loaded from a root directory.
func (v *Vault) Watch(ctx context.Context) error {
	if v.root == "" {
		return fmt.Errorf("vault has no root directory")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := v.watchTree(w, v.root); err != nil {
		w.Close()
		return err
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				v.handleEvent(w, ev)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warnf("Vault watcher error: %v", err)
			}
		}
	}()

	log.Debugf("Watching vault %s", v.root)
	return nil
}

// watchTree registers dir and every visible folder below it.
func (v *Vault) watchTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != v.root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

// handleEvent applies one file system event to the index. w may be nil, in
// which case new folders are indexed but not watched.
func (v *Vault) handleEvent(w *fsnotify.Watcher, ev fsnotify.Event) {
	rel, err := filepath.Rel(v.root, ev.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	key := Normalize(rel)
	for _, part := range strings.Split(key, "/") {
		if isHidden(part) {
			return
		}
	}

	switch {
	case ev.Has(fsnotify.Create):
		info, err := os.Stat(ev.Name)
		if err != nil {
			return
		}
		if !info.IsDir() {
			v.Add(key)
			return
		}
		if w != nil {
			if err := v.watchTree(w, ev.Name); err != nil {
				log.Warnf("Failed to watch new folder %s: %v", key, err)
			}
		}
		_ = filepath.WalkDir(ev.Name, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if p != ev.Name && isHidden(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if isHidden(d.Name()) {
				return nil
			}
			if r, err := filepath.Rel(v.root, p); err == nil {
				v.Add(r)
			}
			return nil
		})
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		v.Remove(key)
	}
}
