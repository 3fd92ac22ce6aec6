package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	prev := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(prev) })

	tests := []struct {
		name  string
		level string
		debug bool
		want  log.Level
	}{
		{"default", "", false, log.WarnLevel},
		{"configured", "info", false, log.InfoLevel},
		{"debug flag wins", "error", true, log.DebugLevel},
		{"unknown", "loud", false, log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Setup(tt.level, tt.debug))
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	prev := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(prev) })
	log.SetLevel(log.InfoLevel)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "repl")
	l.Info("hello")
	l.Debug("hidden")

	assert.Contains(t, buf.String(), "repl")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), "hidden")
}
