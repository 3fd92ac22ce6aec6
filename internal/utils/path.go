package utils

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user config folder.
const AppName = "quickswitch"

// PlatformConfigDir returns the conventional config folder of the app for
// the current platform, without creating it.
func PlatformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	}
}

// ResolveDir turns dir into an absolute, cleaned directory path.
func ResolveDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", &os.PathError{Op: "resolve", Path: abs, Err: os.ErrInvalid}
	}
	return abs, nil
}
