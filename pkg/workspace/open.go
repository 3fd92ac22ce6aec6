package workspace

import (
	"fmt"
	"os/exec"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/quickswitch/pkg/vault"
)

// ExecOpener opens files by running an external command with the file's
// absolute path appended to its arguments.
type ExecOpener struct {
	Vault   *vault.Vault
	Command []string
}

func (o ExecOpener) OpenFile(file *vault.File) error {
	if len(o.Command) == 0 {
		return fmt.Errorf("no open command configured")
	}
	target := file.Path
	if o.Vault != nil {
		target = o.Vault.AbsPath(file)
	}

	args := append(append([]string{}, o.Command[1:]...), target)
	cmd := exec.Command(o.Command[0], args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// reap the child without blocking the caller
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Warnf("Open command for %s exited: %v", target, err)
		}
	}()
	return nil
}

// NopOpener accepts every file without doing anything.
type NopOpener struct{}

func (NopOpener) OpenFile(*vault.File) error { return nil }

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(file *vault.File) error

func (f OpenerFunc) OpenFile(file *vault.File) error { return f(file) }

// LogNotifier writes notices through the logger.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Notify(message string) {
	if n.Logger != nil {
		n.Logger.Warn(message)
		return
	}
	log.Warn(message)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }
