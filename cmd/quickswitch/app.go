package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/quickswitch/internal/logger"
	"github.com/bastiangx/quickswitch/internal/utils"
	"github.com/bastiangx/quickswitch/pkg/commands"
	"github.com/bastiangx/quickswitch/pkg/config"
	"github.com/bastiangx/quickswitch/pkg/starred"
	"github.com/bastiangx/quickswitch/pkg/switcher"
	"github.com/bastiangx/quickswitch/pkg/vault"
	"github.com/bastiangx/quickswitch/pkg/workspace"
)

// options are the persistent flags.
type options struct {
	configPath string
	vaultPath  string
	debug      bool
}

// app is the wired switcher and its collaborators.
type app struct {
	settings   *config.Settings
	configPath string
	vault      *vault.Vault
	starred    *starred.Store
	workspace  *workspace.Workspace
	registry   *commands.Registry
	env        *switcher.Env
	sw         *switcher.Switcher
}

func newApp(opts options) (*app, error) {
	settings, configPath, err := config.LoadWithPriority(opts.configPath)
	if err != nil {
		return nil, err
	}
	logger.Setup(settings.Log.Level, opts.debug)

	dir := settings.Vault.Path
	if opts.vaultPath != "" {
		dir = opts.vaultPath
	}
	root, err := utils.ResolveDir(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid vault directory %s: %w", dir, err)
	}

	v := vault.New(root)
	if err := v.Load(); err != nil {
		return nil, err
	}

	a := &app{
		settings:   settings,
		configPath: configPath,
		vault:      v,
		starred:    starred.NewStore(root),
		workspace:  workspace.New(workspace.ExecOpener{Vault: v, Command: settings.Open.Command}),
		registry:   commands.NewRegistry(),
	}
	a.env = &switcher.Env{
		Vault:     v,
		Navigator: a.workspace,
		Notifier:  workspace.LogNotifier{Logger: logger.New("notice")},
		Settings:  settings,
	}
	a.registerCommands()

	a.sw = switcher.New(a.env,
		switcher.NewFileHandler(a.env),
		switcher.NewEditorHandler(a.env, a.workspace),
		switcher.NewStarredHandler(a.env, a.starred),
		switcher.NewCommandHandler(a.env, a.registry),
	)
	log.Debugf("Vault %s ready: %v", root, v.Stats())
	return a, nil
}

func (a *app) registerCommands() {
	builtins := []commands.Command{
		{
			ID:   "vault:reload",
			Name: "Reload vault",
			Run:  a.vault.Load,
		},
		{
			ID:   "starred:toggle-active",
			Name: "Star or unstar the active file",
			Run: func() error {
				leaf := a.workspace.Active()
				if leaf == nil || leaf.File == nil {
					return fmt.Errorf("no active file")
				}
				_, err := a.starred.Toggle(leaf.File.Path, leaf.File.Basename)
				return err
			},
		},
		{
			ID:   "editor:close-active",
			Name: "Close the active editor",
			Run: func() error {
				leaf := a.workspace.Active()
				if leaf == nil {
					return fmt.Errorf("no active editor")
				}
				a.workspace.Close(leaf.ID)
				return nil
			},
		},
	}
	for _, cmd := range builtins {
		if err := a.registry.Register(cmd); err != nil {
			log.Warnf("Skipping command %s: %v", cmd.ID, err)
		}
	}
}

// toggleStar stars or unstars the vault file at p.
func (a *app) toggleStar(p string) (bool, error) {
	if filepath.IsAbs(p) {
		if rel, err := filepath.Rel(a.vault.Root(), p); err == nil {
			p = rel
		}
	}
	file := a.vault.Resolve(p)
	if file == nil {
		return false, fmt.Errorf("no file %s in vault", p)
	}
	return a.starred.Toggle(file.Path, file.Basename)
}
