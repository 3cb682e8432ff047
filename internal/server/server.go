package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/tripguide/tripd/internal/chat"
	"github.com/tripguide/tripd/internal/transcript"
	"golang.org/x/crypto/bcrypt"
)

const (

	// Address used when the configuration leaves it empty.
	DefaultAddr = "0.0.0.0:8080"

	// Upper bound on a request body.
	maxBodyBytes = 1 << 20

	// Limits guarding against slow clients.
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	idleTimeout       = 2 * time.Minute

	// Write deadline when no request timeout is configured.
	defaultWriteTimeout = 3 * time.Minute

	// Room left after the upstream timeout to write the fallback reply.
	writeMargin = 30 * time.Second
)

// Read access to recorded exchanges.
type TranscriptSource interface {
	Recent(ctx context.Context, limit int) ([]transcript.Entry, error)
}

// Holds server configuration.
type Config struct {
	Addr           string           // Listen address. Empty uses [DefaultAddr].
	Service        *chat.Service    // Required.
	Transcripts    TranscriptSource // Optional. Nil disables GET /transcripts.
	AuthTokenHash  string           // Optional bcrypt hash guarding /chat and /transcripts.
	RequestTimeout time.Duration    // Upstream completion timeout. Zero uses a fixed write deadline.
}

// Serves the chat service over HTTP.
type Server struct {
	addr        string
	service     *chat.Service
	transcripts TranscriptSource
	tokenHash   []byte
	http        *http.Server
	listener    net.Listener
	startedAt   time.Time
	chats       int           // Chat turns answered by the provider.
	failures    int           // Chat turns that fell back after a provider error.
	done        chan struct{} // Closed when serving stops.
	doneOnce    sync.Once
	mu          sync.Mutex // Protects the counters.
}

// Creates a new server instance.
//
// Nothing listens until [Server.Start] is called.
func New(cfg Config) (*Server, error) {
	if cfg.Service == nil {
		return nil, fmt.Errorf("%w: no chat service configured", ErrServer)
	}

	addr := cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	var hash []byte
	if cfg.AuthTokenHash != "" {
		hash = []byte(cfg.AuthTokenHash)
		if _, err := bcrypt.Cost(hash); err != nil {
			return nil, fmt.Errorf("%w: invalid auth token hash: %w", ErrServer, err)
		}
	}

	s := &Server{
		addr:        addr,
		service:     cfg.Service,
		transcripts: cfg.Transcripts,
		tokenHash:   hash,
		done:        make(chan struct{}),
	}

	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout(cfg.RequestTimeout),
		IdleTimeout:       idleTimeout,
		ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
	}

	return s, nil
}

// Returns the write deadline for a given upstream timeout. A chat response
// is only written once the provider has answered or timed out.
func writeTimeout(request time.Duration) time.Duration {
	if request <= 0 {
		return defaultWriteTimeout
	}
	return request + writeMargin
}

// Returns the routed handler, wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.Handle("POST /chat", s.requireToken(http.HandlerFunc(s.handleChat)))
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.Handle("GET /transcripts", s.requireToken(http.HandlerFunc(s.handleTranscripts)))
	return logRequests(mux)
}

// Opens the listener and begins serving in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%w: failed to listen on %s: %w", ErrServer, s.addr, err)
	}

	s.listener = listener
	s.startedAt = time.Now()

	slog.Info("server listening", "addr", listener.Addr().String(), "provider", s.service.Provider())

	go s.serve()
	return nil
}

func (s *Server) serve() {
	defer s.doneOnce.Do(func() { close(s.done) })

	if err := s.http.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("serve error", "error", err)
	}
}

// Stops accepting connections and waits for in-flight requests until ctx
// expires.
func (s *Server) Stop(ctx context.Context) error {
	if s.listener == nil {
		s.doneOnce.Do(func() { close(s.done) })
		return nil
	}

	if err := s.http.Shutdown(ctx); err != nil {
		s.http.Close()
		return fmt.Errorf("%w: shutdown: %w", ErrServer, err)
	}
	return nil
}

// Blocks until the server stops.
func (s *Server) Wait() {
	<-s.done
}

// Returns the bound address, or the configured one before [Server.Start].
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *Server) countChat(failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if failed {
		s.failures++
	} else {
		s.chats++
	}
}
