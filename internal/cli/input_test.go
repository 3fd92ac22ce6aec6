package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/quickswitch/pkg/config"
	"github.com/bastiangx/quickswitch/pkg/render"
	"github.com/bastiangx/quickswitch/pkg/starred"
	"github.com/bastiangx/quickswitch/pkg/switcher"
	"github.com/bastiangx/quickswitch/pkg/vault"
	"github.com/bastiangx/quickswitch/pkg/workspace"
)

func plainTerminal() *render.Terminal {
	plain := lipgloss.NewStyle()
	return &render.Terminal{Index: plain, Title: plain, Highlight: plain, Note: plain, Flair: plain}
}

func TestREPL(t *testing.T) {
	ws := workspace.New(nil)
	env := &switcher.Env{
		Vault:     vault.FromPaths("a/Foo.md", "b/Bar.md"),
		Navigator: ws,
		Settings:  config.DefaultSettings(),
	}
	sw := switcher.New(env,
		switcher.NewFileHandler(env),
		switcher.NewStarredHandler(env, starred.NewMemory(starred.Files("b/Bar.md")...)),
	)

	in := strings.NewReader("foo\n* \n:1\n:9\nzzz\n:q\nnever\n")
	var out bytes.Buffer
	h := NewInputHandler(sw, plainTerminal(), in, &out)
	require.NoError(t, h.Start())

	got := out.String()
	assert.Contains(t, got, "1 suggestions in standard mode")
	assert.Contains(t, got, " 1. Foo  a/Foo.md")
	assert.Contains(t, got, "1 suggestions in starred mode")
	assert.Contains(t, got, "Chose Bar")
	assert.Contains(t, got, "No suggestions in standard mode")
	assert.NotContains(t, got, "never")

	require.NotNil(t, ws.Active())
	assert.Equal(t, "b/Bar.md", ws.Active().File.Path)
}

func TestREPLEndsOnEOF(t *testing.T) {
	env := &switcher.Env{Vault: vault.FromPaths(), Settings: config.DefaultSettings()}
	sw := switcher.New(env, switcher.NewFileHandler(env))

	var out bytes.Buffer
	h := NewInputHandler(sw, plainTerminal(), strings.NewReader("x"), &out)
	require.NoError(t, h.Start())
	assert.Contains(t, out.String(), "No suggestions")
}
