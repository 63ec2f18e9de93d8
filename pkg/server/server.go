package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/bastiangx/uniserve/internal/logger"
	"github.com/bastiangx/uniserve/internal/utils"
	"github.com/bastiangx/uniserve/pkg/config"
	"github.com/bastiangx/uniserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for symbol lookups
type Server struct {
	resolver   suggest.IResolver
	config     *config.Config
	watchFiles []string
	reader     io.Reader
	writer     *bufio.Writer
	encoder    *msgpack.Encoder
	writeMu    sync.Mutex
	requests   int
	logger     *log.Logger
}

// NewServer creates a server on stdin/stdout. watchFiles are the override
// files reloaded on change when server.watch is set.
func NewServer(resolver suggest.IResolver, cfg *config.Config, watchFiles []string) *Server {
	return NewServerIO(resolver, cfg, watchFiles, os.Stdin, os.Stdout)
}

// NewServerIO is NewServer on explicit streams.
func NewServerIO(resolver suggest.IResolver, cfg *config.Config, watchFiles []string, in io.Reader, out io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	w := bufio.NewWriter(out)
	return &Server{
		resolver:   resolver,
		config:     cfg,
		watchFiles: watchFiles,
		reader:     bufio.NewReader(in),
		writer:     w,
		encoder:    msgpack.NewEncoder(w),
		logger:     logger.New("server"),
	}
}

// Start serves until stdin is closed.
func (s *Server) Start() error {
	return s.Serve(context.Background())
}

// Serve decodes requests until the input ends or ctx is cancelled. The
// override watcher, if enabled, runs for as long as Serve does.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	if s.config.Server.Watch && len(s.watchFiles) > 0 {
		watcher, err := NewWatcher(s.watchFiles, s.resolver.Reload)
		if err != nil {
			s.logger.Warnf("Override watching disabled: %v", err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := watcher.Run(ctx); err != nil {
					s.logger.Warnf("Watcher stopped: %v", err)
				}
			}()
		}
	}

	s.logger.Debug("Starting server")
	decoder := msgpack.NewDecoder(s.reader)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		var req request
		if err := decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, stopping")
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			return fmt.Errorf("decode request: %w", err)
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req request) {
	s.requests++
	if req.Action != "" {
		s.handleManage(ManageRequest{ID: req.ID, Action: req.Action})
		return
	}
	if req.Query == nil {
		s.sendError(req.ID, "missing 'q' parameter", 400)
		return
	}
	s.handleResolve(ResolveRequest{ID: req.ID, Query: *req.Query, Limit: req.Limit})
}

func (s *Server) handleResolve(req ResolveRequest) {
	if !utils.IsValidQuery(req.Query) {
		s.logger.Debug("Rejected query", "id", req.ID, "q", req.Query)
		s.sendError(req.ID, "missing 'q' parameter", 400)
		return
	}
	if n := utils.RuneLen(req.Query); n > s.config.Server.MaxQuery {
		s.sendError(req.ID, fmt.Sprintf("query exceeds maximum length of %d characters", s.config.Server.MaxQuery), 400)
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > s.config.Match.Limit {
		limit = s.config.Match.Limit
	}

	start := time.Now()
	cands := s.resolver.Resolve(req.Query)
	elapsed := time.Since(start)
	if len(cands) > limit {
		cands = cands[:limit]
	}

	ranks := utils.CreateRankList(len(cands))
	out := make([]Candidate, len(cands))
	for i, c := range cands {
		out[i] = Candidate{Char: c.Char, Label: c.Label, Rank: ranks[i]}
	}
	s.logger.Debugf("Resolved %q into %d candidates in %v", req.Query, len(out), elapsed)

	s.send(ResolveResponse{
		ID:         req.ID,
		Candidates: out,
		Count:      len(out),
		TimeTaken:  elapsed.Microseconds(),
	})
}

func (s *Server) handleManage(req ManageRequest) {
	resp := ManageResponse{ID: req.ID, Status: statusOK}
	switch req.Action {
	case actionReload:
		if err := s.resolver.Reload(); err != nil {
			s.logger.Warnf("Reload failed: %v", err)
			resp.Status = statusError
			resp.Error = err.Error()
		}
		resp.Stats = s.stats()
	case actionStats:
		resp.Stats = s.stats()
	case actionHealth:
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
		return
	}
	s.send(resp)
}

func (s *Server) stats() map[string]int {
	stats := s.resolver.Stats()
	stats["requests"] = s.requests
	return stats
}

func (s *Server) send(v any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.encoder.Encode(v); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.logger.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ResolveError{ID: id, Error: message, Code: code})
}
