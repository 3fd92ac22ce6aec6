package utils

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// WritableDir creates dir when missing and reports whether a file can be
// created in it.
func WritableDir(dir string) bool {
	if err := EnsureDir(dir); err != nil {
		log.Debugf("Cannot create %s: %v", dir, err)
		return false
	}
	f, err := os.CreateTemp(dir, ".write-check-*")
	if err != nil {
		log.Debugf("Cannot write to %s: %v", dir, err)
		return false
	}
	f.Close()
	os.Remove(f.Name())
	return true
}

// SaveTOMLFile encodes data as TOML and replaces filePath with it in one
// rename, so readers never see a half written file.
func SaveTOMLFile(data any, filePath string) error {
	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".tmp-*.toml")
	if err != nil {
		log.Errorf("Failed to create temp file for %s: %v", filePath, err)
		return err
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filePath)
}

// AbsPath returns p made absolute, or p unchanged when that fails.
// "unknown" stands in for an empty path.
func AbsPath(p string) string {
	if p == "" {
		return "unknown"
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
