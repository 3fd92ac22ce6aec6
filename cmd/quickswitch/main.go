// Copyright 2025 The quickswitch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the quick switcher over a vault of markdown notes.

quickswitch classifies free text into a mode, searches that mode's items and
prints or serves the ranked suggestions. Modes are picked by typing their
command at the start of the input:

	note         files in the vault (no command)
	* note       starred files
	edt note     open editors
	>reload      commands

Command strings are configurable, see Configuration.

# Usage

Serve msgpack IPC on stdin/stdout for an editor integration (the default):

	quickswitch --vault ~/notes

Print the suggestions for one input:

	quickswitch query '* proj'

Explore interactively, choosing rows with :N:

	quickswitch repl -d

Star or unstar a file:

	quickswitch star projects/Notes.md

# Configuration

Settings live in config.toml under the user config directory and are created
with defaults when missing:

	[switcher]
	starred_list_command = "* "
	editor_list_command = "edt "
	command_list_command = ">"
	max_suggestions = 50
	max_input = 256

	[vault]
	path = "."
	watch = true

	[open]
	command = ["xdg-open"]

	[log]
	level = "warn"

Flags override the file. The IPC protocol is described in pkg/server.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bastiangx/quickswitch/internal/cli"
	"github.com/bastiangx/quickswitch/pkg/render"
	"github.com/bastiangx/quickswitch/pkg/server"
	"github.com/bastiangx/quickswitch/pkg/switcher"
)

const (
	Version = "0.1.0"
	AppName = "quickswitch"
	gh      = "https://github.com/bastiangx/quickswitch"
)

// sigHandler exits cleanly on interrupt.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:           AppName,
		Short:         "Multi-mode quick switcher for markdown vaults",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.toml")
	root.PersistentFlags().StringVar(&opts.vaultPath, "vault", "", "Vault directory (overrides [vault] path)")
	root.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "Toggle debug mode")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve msgpack IPC on stdin/stdout",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(opts)
			},
		},
		&cobra.Command{
			Use:   "query <input>",
			Short: "Print the suggestions for one input",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(opts)
				if err != nil {
					return err
				}
				return printQuery(cmd, a.sw, args[0])
			},
		},
		&cobra.Command{
			Use:   "repl",
			Short: "Interactive loop for debugging modes and ranking",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := newApp(opts)
				if err != nil {
					return err
				}
				return cli.NewInputHandler(a.sw, terminal(), cmd.InOrStdin(), cmd.OutOrStdout()).Start()
			},
		},
		&cobra.Command{
			Use:   "star <path>",
			Short: "Star or unstar a vault file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(opts)
				if err != nil {
					return err
				}
				on, err := a.toggleStar(args[0])
				if err != nil {
					return err
				}
				state := "unstarred"
				if on {
					state = "starred"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show the current version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				printVersion()
			},
		},
	)
	return root
}

func runServe(opts options) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}

	srv := server.NewServer(a.sw, a.configPath)
	a.env.Notifier = srv

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if a.settings.Vault.Watch {
		if err := a.vault.Watch(ctx); err != nil {
			log.Warnf("Vault watching disabled: %v", err)
		}
	}

	log.Debugf("Serving vault %s with config %s", a.vault.Root(), a.configPath)
	return srv.Start()
}

func printQuery(cmd *cobra.Command, sw *switcher.Switcher, input string) error {
	info, suggestions := sw.Suggestions(input)
	out := cmd.OutOrStdout()
	if len(suggestions) == 0 {
		fmt.Fprintf(out, "No suggestions in %s mode\n", switcher.ModeName(info.Mode))
		return nil
	}
	rows := make([]*render.Row, len(suggestions))
	for i, s := range suggestions {
		rows[i] = sw.Row(s)
	}
	fmt.Fprintln(out, terminal().Lines(rows))
	return nil
}

func terminal() *render.Terminal {
	t := render.NewTerminal()
	t.Classes[switcher.StarredClass] = "★"
	t.Classes[switcher.EditorClass] = "▣"
	t.Classes[switcher.CommandClass] = "›"
	return t
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ quickswitch ] Jump to any note, starred file, editor or command")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
