// Package cli is an interactive loop over the switcher, for debugging modes
// and ranking in real time.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/quickswitch/internal/utils"
	"github.com/bastiangx/quickswitch/pkg/render"
	"github.com/bastiangx/quickswitch/pkg/suggest"
	"github.com/bastiangx/quickswitch/pkg/switcher"
	"github.com/bastiangx/quickswitch/pkg/workspace"
)

// InputHandler reads input lines, prints the suggestions for each, and
// chooses a suggestion of the last list on ":N".
type InputHandler struct {
	sw       *switcher.Switcher
	term     *render.Terminal
	in       *bufio.Reader
	out      io.Writer
	maxInput int
	last     []suggest.Suggestion
}

func NewInputHandler(sw *switcher.Switcher, term *render.Terminal, in io.Reader, out io.Writer) *InputHandler {
	if term == nil {
		term = render.NewTerminal()
	}
	return &InputHandler{
		sw:       sw,
		term:     term,
		in:       bufio.NewReader(in),
		out:      out,
		maxInput: sw.Settings().Switcher.MaxInput,
	}
}

// Start runs the loop until the input ends or ":q" is entered.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "quickswitch REPL")
	fmt.Fprintln(h.out, "type to search, :N to choose row N, :q to quit")

	for {
		fmt.Fprint(h.out, "> ")
		line, err := h.in.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return nil
			}
			return err
		}
		// keep the trailing space of commands like "* "
		line = strings.TrimRight(line, "\r\n")
		if line == ":q" {
			return nil
		}
		h.HandleLine(line)
	}
}

// HandleLine processes one line of input.
func (h *InputHandler) HandleLine(line string) {
	if strings.HasPrefix(line, ":") {
		if n, err := strconv.Atoi(strings.TrimSpace(line[1:])); err == nil {
			h.choose(n)
			return
		}
	}

	if err := utils.ValidateInput(line, h.maxInput); err != nil {
		log.Errorf("Rejected input: %v", err)
		return
	}

	start := time.Now()
	info, suggestions := h.sw.Suggestions(line)
	log.Debugf("Took [ %v ] for input '%s'", time.Since(start), line)
	h.last = suggestions

	if len(suggestions) == 0 {
		fmt.Fprintf(h.out, "No suggestions in %s mode\n", switcher.ModeName(info.Mode))
		return
	}

	rows := make([]*render.Row, len(suggestions))
	for i, s := range suggestions {
		rows[i] = h.sw.Row(s)
	}
	fmt.Fprintf(h.out, "%d suggestions in %s mode:\n", len(rows), switcher.ModeName(info.Mode))
	fmt.Fprintln(h.out, h.term.Lines(rows))
}

func (h *InputHandler) choose(n int) {
	if n < 1 || n > len(h.last) {
		log.Errorf("No row %d", n)
		return
	}
	s := h.last[n-1]
	h.sw.Choose(s, workspace.Trigger{Source: "repl"})
	fmt.Fprintf(h.out, "Chose %s\n", s.Text())
}
