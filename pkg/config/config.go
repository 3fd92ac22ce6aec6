/*
Package config manages the TOML settings of quickswitch.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/quickswitch/internal/utils"
)

// Mode identifies a switcher mode for the purpose of looking up its command.
type Mode int

const (
	ModeStandard Mode = iota
	ModeEditorList
	ModeStarredList
	ModeCommandList
)

// Settings holds the entire settings structure.
type Settings struct {
	Switcher SwitcherConfig `toml:"switcher"`
	Vault    VaultConfig    `toml:"vault"`
	Open     OpenConfig     `toml:"open"`
	Log      LogConfig      `toml:"log"`
}

// SwitcherConfig has the command strings that activate each mode, and
// limits on input and output.
type SwitcherConfig struct {
	StarredListCommand string `toml:"starred_list_command"`
	EditorListCommand  string `toml:"editor_list_command"`
	CommandListCommand string `toml:"command_list_command"`
	MaxSuggestions     int    `toml:"max_suggestions"`
	MaxInput           int    `toml:"max_input"`
}

// VaultConfig locates the vault.
type VaultConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

// OpenConfig is the external command used to open files. The absolute file
// path is appended as the last argument.
type OpenConfig struct {
	Command []string `toml:"command"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level"`
}

// CommandFor returns the command string configured for mode. The standard
// mode has none.
func (s *Settings) CommandFor(mode Mode) string {
	switch mode {
	case ModeStarredList:
		return s.Switcher.StarredListCommand
	case ModeEditorList:
		return s.Switcher.EditorListCommand
	case ModeCommandList:
		return s.Switcher.CommandListCommand
	default:
		return ""
	}
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() *Settings {
	cp := *s
	cp.Open.Command = append([]string(nil), s.Open.Command...)
	return &cp
}

// DefaultSettings returns Settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Switcher: SwitcherConfig{
			StarredListCommand: "* ",
			EditorListCommand:  "edt ",
			CommandListCommand: ">",
			MaxSuggestions:     50,
			MaxInput:           256,
		},
		Vault: VaultConfig{
			Path:  ".",
			Watch: true,
		},
		Open: OpenConfig{
			Command: defaultOpenCommand(),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

func defaultOpenCommand() []string {
	if cmd := os.Getenv("QUICKSWITCH_OPEN"); cmd != "" {
		return []string{cmd}
	}
	return []string{"xdg-open"}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. platform config dir (XDG_CONFIG_HOME, ~/.config, %APPDATA%)
// 2. ~/Library/Application Support/ (macOS)
// 3. current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.ExecutableDir()
	}
	primaryPath := utils.PlatformConfigDir(homeDir)
	if utils.WritableDir(primaryPath) {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", utils.AppName)
	if utils.WritableDir(macOSPath) {
		return macOSPath, nil
	}
	execDir, err := utils.ExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadWithPriority loads settings with priority:
// 1. custom path from --config
// 2. default path: [UserConfigDir]/quickswitch/config.toml
// 3. builtin defaults
//
// The returned path is where the settings came from, "" for defaults.
func LoadWithPriority(customPath string) (*Settings, string, error) {
	if customPath != "" {
		if _, statErr := os.Stat(customPath); statErr == nil {
			settings, err := Load(customPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customPath)
				return settings, customPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultSettings(), "", nil
	}
	settings, err := Init(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at %s: %v. Using built-in defaults...", defaultPath, err)
		return DefaultSettings(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return settings, defaultPath, nil
}

// Init loads settings from path, writing the defaults there first when the
// file does not exist.
func Init(path string) (*Settings, error) {
	dir := filepath.Dir(path)
	if err := utils.EnsureDir(dir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", dir, err)
		return DefaultSettings(), nil
	}

	if !utils.FileExists(path) {
		settings := DefaultSettings()
		if err := Save(settings, path); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", path, err)
			return DefaultSettings(), nil
		}
		log.Debugf("Created default config file at: %s", path)
		return settings, nil
	}
	return Load(path)
}

// Load reads settings from a TOML file. Keys missing from the file keep
// their defaults; a file with invalid values is recovered section by section.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()
	if err := utils.LoadTOMLFile(path, settings); err != nil {
		return tryPartialParse(path)
	}
	return settings, nil
}

// Save writes settings to path.
func Save(settings *Settings, path string) error {
	if path == "" {
		return fmt.Errorf("no config path")
	}
	if err := utils.SaveTOMLFile(settings, path); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}
	return nil
}

func tryPartialParse(path string) (*Settings, error) {
	settings := DefaultSettings()

	raw, err := utils.ParseTOMLWithRecovery(path)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", path, err)
		return settings, nil
	}

	if section, ok := utils.ExtractSection(raw, "switcher"); ok {
		extractSwitcherConfig(section, &settings.Switcher)
	}
	if section, ok := utils.ExtractSection(raw, "vault"); ok {
		extractVaultConfig(section, &settings.Vault)
	}
	if section, ok := utils.ExtractSection(raw, "open"); ok {
		extractOpenConfig(section, &settings.Open)
	}
	if section, ok := utils.ExtractSection(raw, "log"); ok {
		extractLogConfig(section, &settings.Log)
	}
	return settings, nil
}

func extractSwitcherConfig(data map[string]any, sw *SwitcherConfig) {
	if val, ok := utils.ExtractString(data, "starred_list_command"); ok {
		sw.StarredListCommand = val
	}
	if val, ok := utils.ExtractString(data, "editor_list_command"); ok {
		sw.EditorListCommand = val
	}
	if val, ok := utils.ExtractString(data, "command_list_command"); ok {
		sw.CommandListCommand = val
	}
	if val, ok := utils.ExtractInt64(data, "max_suggestions"); ok {
		sw.MaxSuggestions = val
	}
	if val, ok := utils.ExtractInt64(data, "max_input"); ok {
		sw.MaxInput = val
	}
}

func extractVaultConfig(data map[string]any, v *VaultConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		v.Path = val
	}
	if val, ok := utils.ExtractBool(data, "watch"); ok {
		v.Watch = val
	}
}

func extractOpenConfig(data map[string]any, o *OpenConfig) {
	if val, ok := utils.ExtractStringSlice(data, "command"); ok {
		o.Command = val
	}
}

func extractLogConfig(data map[string]any, l *LogConfig) {
	if val, ok := utils.ExtractString(data, "level"); ok {
		l.Level = val
	}
}

// Update changes switcher values and saves the settings to path when path
// is not empty. Nil arguments leave the current value alone.
func (s *Settings) Update(path string, starred, editor, command *string, maxSuggestions *int) error {
	sw := &s.Switcher
	if starred != nil {
		sw.StarredListCommand = *starred
	}
	if editor != nil {
		sw.EditorListCommand = *editor
	}
	if command != nil {
		sw.CommandListCommand = *command
	}
	if maxSuggestions != nil {
		sw.MaxSuggestions = *maxSuggestions
	}
	if path == "" {
		return nil
	}
	return Save(s, path)
}

// GetActiveConfigPath returns the absolute path of the loaded config file.
func GetActiveConfigPath(path string) string {
	if path == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.AbsPath(path)
}
