// Package vault is the content store the switcher resolves paths against.
//
// Files are indexed in a patricia trie keyed by their vault-relative, slash
// separated path, which makes folder operations (list, remove) subtree walks.
package vault

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// File is a live reference to a file in the vault.
type File struct {
	// Path is vault relative and slash separated, e.g. "a/Note1.md".
	Path string
	// Basename is the file name without its extension.
	Basename string
	// Extension is the extension without the leading dot.
	Extension string
}

func newFile(p string) *File {
	name := path.Base(p)
	ext := path.Ext(name)
	return &File{
		Path:      p,
		Basename:  strings.TrimSuffix(name, ext),
		Extension: strings.TrimPrefix(ext, "."),
	}
}

// Name returns the file name including its extension.
func (f *File) Name() string {
	return path.Base(f.Path)
}

// Parent returns the folder holding the file, "" for the vault root.
func (f *File) Parent() string {
	dir := path.Dir(f.Path)
	if dir == "." {
		return ""
	}
	return dir
}

// Vault indexes the files under a root directory.
type Vault struct {
	root       string
	trie       *patricia.Trie
	totalFiles int
	mu         sync.RWMutex
}

// New creates an empty vault rooted at dir. Call Load to index it.
func New(dir string) *Vault {
	return &Vault{
		root: dir,
		trie: patricia.NewTrie(),
	}
}

// FromPaths creates an in-memory vault holding the given files.
func FromPaths(paths ...string) *Vault {
	v := New("")
	for _, p := range paths {
		v.Add(p)
	}
	return v
}

// Root returns the directory the vault was created with.
func (v *Vault) Root() string {
	return v.root
}

// Normalize turns an OS or user supplied path into the vault key form.
func Normalize(p string) string {
	p = filepath.ToSlash(strings.TrimSpace(p))
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// Load walks the root directory and indexes every file, skipping hidden
// files and folders such as .obsidian and .git.
func (v *Vault) Load() error {
	if v.root == "" {
		return fmt.Errorf("vault has no root directory")
	}

	trie := patricia.NewTrie()
	count := 0
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == v.root {
			return nil
		}
		if isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		key := Normalize(rel)
		if trie.Insert(patricia.Prefix(key), newFile(key)) {
			count++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index vault %s: %w", v.root, err)
	}

	v.mu.Lock()
	v.trie = trie
	v.totalFiles = count
	v.mu.Unlock()

	log.Debugf("Indexed %d files in %s", count, v.root)
	return nil
}

// Add indexes a file and returns its reference. Adding an existing path
// returns the existing reference.
func (v *Vault) Add(p string) *File {
	key := Normalize(p)
	if key == "" {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if item := v.trie.Get(patricia.Prefix(key)); item != nil {
		return item.(*File)
	}
	f := newFile(key)
	v.trie.Insert(patricia.Prefix(key), f)
	v.totalFiles++
	return f
}

// Remove drops a file, or every file below a folder. Returns false when
// nothing was indexed under p.
func (v *Vault) Remove(p string) bool {
	key := Normalize(p)
	if key == "" {
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	// Delete also matches partial keys ("c" would drop "c.md"), so only call it
	// on an exact hit.
	if v.trie.Get(patricia.Prefix(key)) != nil {
		v.trie.Delete(patricia.Prefix(key))
		v.totalFiles--
		return true
	}

	folder := patricia.Prefix(key + "/")
	removed := 0
	_ = v.trie.VisitSubtree(folder, func(patricia.Prefix, patricia.Item) error {
		removed++
		return nil
	})
	if removed == 0 {
		return false
	}
	v.trie.DeleteSubtree(folder)
	v.totalFiles -= removed
	log.Debugf("Removed folder %s with %d files", key, removed)
	return true
}

// Rename moves a file or folder to a new path.
func (v *Vault) Rename(oldPath, newPath string) {
	oldKey, newKey := Normalize(oldPath), Normalize(newPath)
	if oldKey == "" || newKey == "" || oldKey == newKey {
		return
	}

	var moved []string
	if v.Resolve(oldKey) != nil {
		moved = append(moved, newKey)
	} else {
		for _, f := range v.FilesUnder(oldKey) {
			moved = append(moved, newKey+strings.TrimPrefix(f.Path, oldKey))
		}
	}
	if len(moved) == 0 {
		return
	}

	v.Remove(oldKey)
	for _, p := range moved {
		v.Add(p)
	}
}

// Resolve returns the file at p, or nil when p does not exist or is a folder.
func (v *Vault) Resolve(p string) *File {
	key := Normalize(p)
	if key == "" {
		return nil
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	if item := v.trie.Get(patricia.Prefix(key)); item != nil {
		return item.(*File)
	}
	return nil
}

// Files returns every indexed file in path order.
func (v *Vault) Files() []*File {
	v.mu.RLock()
	defer v.mu.RUnlock()

	files := make([]*File, 0, v.totalFiles)
	_ = v.trie.Visit(func(_ patricia.Prefix, item patricia.Item) error {
		files = append(files, item.(*File))
		return nil
	})
	sortByPath(files)
	return files
}

// FilesUnder returns the files below folder in path order.
func (v *Vault) FilesUnder(folder string) []*File {
	key := Normalize(folder)
	if key == "" {
		return v.Files()
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	var files []*File
	_ = v.trie.VisitSubtree(patricia.Prefix(key+"/"), func(_ patricia.Prefix, item patricia.Item) error {
		files = append(files, item.(*File))
		return nil
	})
	sortByPath(files)
	return files
}

// AbsPath returns the OS path of f.
func (v *Vault) AbsPath(f *File) string {
	return filepath.Join(v.root, filepath.FromSlash(f.Path))
}

// Stats returns counters about the index.
func (v *Vault) Stats() map[string]int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return map[string]int{
		"totalFiles": v.totalFiles,
	}
}

func sortByPath(files []*File) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
