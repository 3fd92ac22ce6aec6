package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/quickswitch/internal/utils"
	"github.com/bastiangx/quickswitch/pkg/config"
	"github.com/bastiangx/quickswitch/pkg/search"
	"github.com/bastiangx/quickswitch/pkg/suggest"
	"github.com/bastiangx/quickswitch/pkg/switcher"
	"github.com/bastiangx/quickswitch/pkg/workspace"
)

type lastResult struct {
	input       string
	suggestions []suggest.Suggestion
}

// Server handles IPC requests for one switcher.
type Server struct {
	sw         *switcher.Switcher
	configPath string
	dec        *msgpack.Decoder
	enc        *msgpack.Encoder
	last       *lastResult

	mu      sync.Mutex
	notices []string
}

// NewServer creates a server on stdin and stdout. configPath is where
// config changes are persisted; empty keeps them in memory.
func NewServer(sw *switcher.Switcher, configPath string) *Server {
	return NewServerWithIO(sw, configPath, os.Stdin, os.Stdout)
}

func NewServerWithIO(sw *switcher.Switcher, configPath string, r io.Reader, w io.Writer) *Server {
	return &Server{
		sw:         sw,
		configPath: configPath,
		dec:        msgpack.NewDecoder(r),
		enc:        msgpack.NewEncoder(w),
	}
}

// Notify queues a notice frame, sent after the current response. Server is
// meant to be installed as the switcher's workspace.Notifier.
func (s *Server) Notify(message string) {
	s.mu.Lock()
	s.notices = append(s.notices, message)
	s.mu.Unlock()
}

var _ workspace.Notifier = (*Server)(nil)

// Start serves requests until the input ends.
func (s *Server) Start() error {
	log.Debug("Starting Server.")
	s.send(map[string]string{"status": "ready"})

	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return fmt.Errorf("failed to read request: %w", err)
		}
		s.handleRaw(raw)
		s.flushNotices()
	}
}

func (s *Server) handleRaw(raw msgpack.RawMessage) {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		log.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "Invalid request", 400)
		return
	}
	s.handleRequest(req)
}

func (s *Server) handleRequest(req Request) {
	switch req.Action {
	case ActionSuggest, "":
		s.handleSuggest(req)
	case ActionChoose:
		s.handleChoose(req)
	case ActionConfig:
		s.handleConfig(req)
	case ActionHealth:
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleSuggest(req Request) {
	if err := utils.ValidateInput(req.Input, s.sw.Settings().Switcher.MaxInput); err != nil {
		log.Debugf("Rejected input %q: %v", req.Input, err)
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	start := time.Now()
	info, suggestions := s.sw.Suggestions(req.Input)
	s.last = &lastResult{input: req.Input, suggestions: suggestions}

	shown := suggest.Limit(suggestions, req.Limit)
	ranks := utils.Ranks(len(shown))
	out := make([]Suggestion, len(shown))
	for i, sug := range shown {
		out[i] = s.wire(sug, ranks[i])
	}
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for input '%s'", elapsed, req.Input)

	s.send(SuggestResponse{
		ID:          req.ID,
		Mode:        switcher.ModeName(info.Mode),
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) wire(sug suggest.Suggestion, rank uint16) Suggestion {
	row := s.sw.Row(sug)
	out := Suggestion{
		Type:        sug.Type.String(),
		Title:       row.Title,
		Note:        row.Note,
		MatchType:   sug.MatchType.String(),
		Score:       sug.Score(),
		Rank:        rank,
		TitleRanges: wireRanges(row.TitleRanges),
		NoteRanges:  wireRanges(row.NoteRanges),
		Classes:     row.Classes,
	}
	if sug.File != nil {
		out.Path = sug.File.Path
	}
	return out
}

func wireRanges(ranges []search.Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	out := make([]Range, len(ranges))
	for i, r := range ranges {
		out[i] = Range{Start: r.Start, End: r.End}
	}
	return out
}

func (s *Server) handleChoose(req Request) {
	if err := utils.ValidateInput(req.Input, s.sw.Settings().Switcher.MaxInput); err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	if s.last == nil || s.last.input != req.Input {
		_, suggestions := s.sw.Suggestions(req.Input)
		s.last = &lastResult{input: req.Input, suggestions: suggestions}
	}
	if req.Index < 0 || req.Index >= len(s.last.suggestions) {
		s.sendError(req.ID, fmt.Sprintf("No suggestion at index %d", req.Index), 400)
		return
	}

	s.sw.Choose(s.last.suggestions[req.Index], workspace.Trigger{NewLeaf: req.NewLeaf, Source: "ipc"})
	s.send(StatusResponse{ID: req.ID, Status: "ok"})
}

func (s *Server) handleConfig(req Request) {
	switch req.Op {
	case "get", "":
		s.send(ConfigResponse{ID: req.ID, Status: "ok", Config: values(s.sw.Settings())})
	case "set":
		if req.MaxSuggestions != nil && *req.MaxSuggestions < 1 {
			s.sendError(req.ID, "max_suggestions must be at least 1", 400)
			return
		}
		settings := s.sw.Settings().Clone()
		if err := settings.Update(s.configPath, req.StarredListCommand, req.EditorListCommand,
			req.CommandListCommand, req.MaxSuggestions); err != nil {
			log.Errorf("Saving config: %v", err)
			s.sendError(req.ID, "Failed to save config", 500)
			return
		}
		s.sw.Reload(settings)
		s.last = nil
		log.Debugf("Config updated from IPC request %s", req.ID)
		s.send(ConfigResponse{ID: req.ID, Status: "ok", Config: values(settings)})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown config op: %s", req.Op), 400)
	}
}

func values(settings *config.Settings) ConfigValues {
	sw := settings.Switcher
	return ConfigValues{
		StarredListCommand: sw.StarredListCommand,
		EditorListCommand:  sw.EditorListCommand,
		CommandListCommand: sw.CommandListCommand,
		MaxSuggestions:     sw.MaxSuggestions,
		MaxInput:           sw.MaxInput,
	}
}

func (s *Server) flushNotices() {
	s.mu.Lock()
	pending := s.notices
	s.notices = nil
	s.mu.Unlock()

	for _, msg := range pending {
		s.send(Notice{Action: ActionNotice, Message: msg})
	}
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
