package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Spec holds what a Server is built from. Config carries the settings that
// can be read from a file.
type Spec struct {
	Config *Config
	Host   Host
	Log    *slog.Logger
}

// Server accepts plugin connections and runs one Session per connection.
type Server struct {
	Spec Spec

	mu       sync.Mutex
	listener net.Listener
	sessions map[*Session]struct{}

	wg  sync.WaitGroup
	seq atomic.Int64
}

// New returns a server for spec, filling in defaults: a JSON logger on
// stdout (debug level when DEBUG is set), DefaultConfig, and an empty
// MemoryHost printing to stdout.
func New(spec *Spec) *Server {
	if spec.Log == nil {
		level := slog.LevelInfo
		if os.Getenv("DEBUG") != "" {
			level = slog.LevelDebug
		}
		spec.Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	if spec.Config == nil {
		spec.Config = DefaultConfig()
	}
	if spec.Host == nil {
		host := NewMemoryHost(os.Stdout, spec.Log)
		host.Strict = spec.Config.Strict
		spec.Host = host
	}
	return &Server{
		Spec:     *spec,
		sessions: map[*Session]struct{}{},
	}
}

// StartTCP listens on addr and serves connections in the background.
func (s *Server) StartTCP(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return fmt.Errorf("already listening on %s", s.listener.Addr())
	}
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = l
	s.wg.Go(func() {
		s.acceptLoop(l)
	})
	s.Spec.Log.Info("listening", "addr", l.Addr().String())
	return nil
}

// StopTCP closes the listener and every open session, and waits for them
// to finish.
func (s *Server) StopTCP() error {
	s.mu.Lock()
	l := s.listener
	s.listener = nil
	open := make([]*Session, 0, len(s.sessions))
	for sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.Unlock()
	if l == nil {
		return nil
	}

	err := l.Close()
	for _, sess := range open {
		sess.Close()
	}
	s.wg.Wait()
	s.Spec.Log.Info("stopped", "addr", l.Addr().String())
	return err
}

// TCPAddr returns the listening address, or "" when not listening.
func (s *Server) TCPAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) acceptLoop(l net.Listener) {
	var delay time.Duration
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			// transient failures such as running out of descriptors
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay = min(2*delay, time.Second)
			}
			s.Spec.Log.Warn("accept failed, retrying", "error", err, "delay", delay)
			time.Sleep(delay)
			continue
		}
		delay = 0
		s.wg.Go(func() {
			s.serveConn(conn)
		})
	}
}

func (s *Server) serveConn(conn net.Conn) {
	id := fmt.Sprintf("tcp-%d", s.seq.Add(1))
	sess := NewSession(id, conn, &SessionConfig{
		Host:           s.Spec.Host,
		Log:            s.Spec.Log,
		OutgoingBuffer: s.Spec.Config.OutgoingBuffer,
	})

	s.mu.Lock()
	if s.listener == nil {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.sessions[sess] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess)
		s.mu.Unlock()
	}()

	s.Spec.Log.Debug("session started", "session", id, "remote", conn.RemoteAddr().String())
	if err := sess.Run(); err != nil {
		s.Spec.Log.Warn("session failed", "session", id, "error", err)
		return
	}
	s.Spec.Log.Debug("session ended", "session", id)
}
