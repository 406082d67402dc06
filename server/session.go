package server

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/paddle-build/paddle-plugin-go/api"
	"github.com/paddle-build/paddle-plugin-go/debug"
)

// Session serves the requests of one plugin connection. Requests are read
// and dispatched in order on the reading goroutine; responses are queued
// and written by a second goroutine.
type Session struct {
	ID string

	conn io.ReadWriteCloser
	host Host
	log  *slog.Logger

	// ctx ends with the session and bounds host calls.
	ctx  context.Context
	stop context.CancelFunc

	out      chan *api.Response
	stopOnce sync.Once
}

// SessionConfig configures NewSession.
type SessionConfig struct {
	Host Host
	Log  *slog.Logger
	// OutgoingBuffer is the number of responses queued before the reader
	// waits on the writer. Defaults to 100.
	OutgoingBuffer int
}

func NewSession(id string, conn io.ReadWriteCloser, cfg *SessionConfig) *Session {
	queue := 100
	if cfg.OutgoingBuffer > 0 {
		queue = cfg.OutgoingBuffer
	}
	log := cmp.Or(cfg.Log, slog.Default())
	ctx, stop := context.WithCancel(context.Background())
	return &Session{
		ID:   id,
		conn: conn,
		host: cfg.Host,
		log:  log.With("session", id),
		ctx:  ctx,
		stop: stop,
		out:  make(chan *api.Response, queue),
	}
}

// Run serves the connection until the peer hangs up, Close is called, or
// the stream becomes unreadable. Queued responses are flushed before the
// connection is closed.
func (s *Session) Run() error {
	flushed := make(chan struct{})
	go func() {
		defer close(flushed)
		s.writeLoop()
	}()

	err := s.readLoop()
	close(s.out)
	<-flushed
	s.shutdown()
	return err
}

// Close ends the session, abandoning queued responses.
func (s *Session) Close() error {
	s.shutdown()
	return nil
}

func (s *Session) shutdown() {
	s.stopOnce.Do(func() {
		s.stop()
		s.conn.Close()
	})
}

// readLoop decodes and dispatches requests. A stream that is not valid
// JSON cannot be resynchronised and ends the session.
func (s *Session) readLoop() error {
	dec := json.NewDecoder(s.conn)
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) || s.ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read error: %w", err)
		}
		if debug.Session() {
			debug.Logf("session %s: request %s\n", s.ID, string(raw))
		}

		var req api.Request
		if err := json.Unmarshal(raw, &req); err != nil {
			s.sendError(requestID(raw), api.ErrCodeInvalidMessage, fmt.Sprintf("failed to parse request: %v", err))
			continue
		}
		s.dispatch(&req)
	}
}

// requestID recovers the id of a request that failed to decode as a whole.
func requestID(raw json.RawMessage) int64 {
	var partial struct {
		ID int64 `json:"id"`
	}
	_ = json.Unmarshal(raw, &partial)
	return partial.ID
}

func (s *Session) writeLoop() {
	for resp := range s.out {
		if err := api.WriteMessage(s.conn, resp); err != nil {
			if s.ctx.Err() == nil {
				s.log.Error("failed to write response", "id", resp.ID, "error", err)
			}
			// unblock the reader; the remaining responses are dropped
			s.shutdown()
			for range s.out {
			}
			return
		}
	}
}

// dispatch routes a request to the host.
func (s *Session) dispatch(req *api.Request) {
	op := req.Operation()
	s.log.Debug("request", "id", req.ID, "op", op)
	switch {
	case op == "":
		s.sendError(req.ID, api.ErrCodeInvalidMessage, "exactly one operation must be specified")
	case req.Print != nil:
		s.handlePrint(req.ID, req.Print)
	case req.GetConfigSpec != nil:
		s.handleGetConfigSpec(req.ID, req.GetConfigSpec)
	case req.UpdateConfigSpec != nil:
		s.handleUpdateConfigSpec(req.ID, req.UpdateConfigSpec)
	}
}

func (s *Session) handlePrint(id int64, req *api.PrintRequest) {
	if err := s.host.PrintMessage(s.ctx, req.ProjectID, req.Message, req.Type); err != nil {
		s.sendHostError(id, err)
		return
	}
	s.send(&api.Response{ID: id, Result: &api.Result{}})
}

func (s *Session) handleGetConfigSpec(id int64, req *api.GetConfigSpecRequest) {
	if req.ProjectID == "" {
		s.sendError(id, api.ErrCodeInvalidMessage, "missing projectId")
		return
	}
	cs, err := s.host.GetConfigSpec(s.ctx, req.ProjectID)
	if err != nil {
		s.sendHostError(id, err)
		return
	}
	s.send(&api.Response{ID: id, Result: &api.Result{ConfigSpec: cs}})
}

func (s *Session) handleUpdateConfigSpec(id int64, req *api.UpdateConfigSpecRequest) {
	if req.ProjectID == "" {
		s.sendError(id, api.ErrCodeInvalidMessage, "missing projectId")
		return
	}
	if req.ConfigSpec == nil {
		s.sendError(id, api.ErrCodeInvalidMessage, "missing configSpec")
		return
	}
	if err := s.host.UpdateConfigSpec(s.ctx, req.ProjectID, req.ConfigSpec); err != nil {
		s.sendHostError(id, err)
		return
	}
	s.send(&api.Response{ID: id, Result: &api.Result{}})
}

func (s *Session) sendHostError(id int64, err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		s.send(&api.Response{ID: id, Error: apiErr})
		return
	}
	s.log.Error("host error", "id", id, "error", err)
	s.sendError(id, api.ErrCodeInternal, err.Error())
}

func (s *Session) sendError(id int64, code, message string) {
	s.send(&api.Response{ID: id, Error: api.NewError(code, message)})
}

func (s *Session) send(resp *api.Response) {
	select {
	case s.out <- resp:
	case <-s.ctx.Done():
	}
}
