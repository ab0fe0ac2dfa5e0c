package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/devserve-go/devserve/core/logger"
)

// DefaultHost keeps the evaluation listener off the network; it exists for
// local tooling only.
const DefaultHost = "127.0.0.1"

// DefaultMarkerFile is the well-known file external tooling reads to
// discover the bound port.
const DefaultMarkerFile = ".devserve-repl-port"

// ErrAlreadyRunning is returned when Start is called twice.
var ErrAlreadyRunning = errors.New("repl server is already running")

// Server is a line-oriented evaluation listener for external tooling. It
// shares no code path with request handling; the commands only expose
// process state.
type Server struct {
	host   string
	port   int
	marker string
	log    *slog.Logger

	mu      sync.Mutex
	ln      net.Listener
	started time.Time
}

// Option configures the evaluation server.
type Option func(*Server)

// WithHost sets the bind interface (default 127.0.0.1).
func WithHost(host string) Option {
	return func(s *Server) {
		s.host = host
	}
}

// WithPort sets the port to bind; 0 picks an ephemeral port.
func WithPort(port int) Option {
	return func(s *Server) {
		s.port = port
	}
}

// WithMarkerPath overrides where the port marker file is written.
func WithMarkerPath(path string) Option {
	return func(s *Server) {
		s.marker = path
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// New creates an evaluation server.
func New(opts ...Option) *Server {
	s := &Server{
		host:   DefaultHost,
		marker: DefaultMarkerFile,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start binds the listener, writes the bound port to the marker file as
// plain text, and accepts connections in the background. The marker file
// is removed again by Stop.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln != nil {
		return ErrAlreadyRunning
	}

	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.host, s.port))
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}

	port := ln.Addr().(*net.TCPAddr).Port
	if err := os.WriteFile(s.marker, []byte(strconv.Itoa(port)), 0o644); err != nil {
		_ = ln.Close()
		return fmt.Errorf("repl: writing marker file: %w", err)
	}

	s.ln = ln
	s.port = port
	s.started = time.Now()
	s.log.Info("repl listener started", logger.Component("repl"), logger.Port(port))

	go s.accept(ln)
	return nil
}

// Port returns the bound port, valid after Start.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// Stop closes the listener and removes the marker file.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln == nil {
		return nil
	}

	err := s.ln.Close()
	s.ln = nil

	if rmErr := os.Remove(s.marker); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
		err = rmErr
	}
	return err
}

func (s *Server) accept(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go s.serve(conn)
	}
}

// serve runs the line protocol on one connection. Unknown input is
// answered with an error line rather than dropping the connection.
func (s *Server) serve(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var reply string
		switch strings.TrimSpace(scanner.Text()) {
		case "port":
			reply = strconv.Itoa(s.Port())
		case "status":
			s.mu.Lock()
			reply = fmt.Sprintf("serving uptime=%s", time.Since(s.started).Round(time.Second))
			s.mu.Unlock()
		case "quit", "exit":
			return
		default:
			reply = "error: unknown command"
		}

		if _, err := fmt.Fprintln(conn, reply); err != nil {
			return
		}
	}
}
