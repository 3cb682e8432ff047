package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/tripguide/tripd/internal/paths"
)

// Timestamp layout of the file sink.
const FileTimeFormat = "2006-01-02 15:04:05,000"

// State shared by a root handler and everything derived from it.
type sinks struct {
	level   slog.LevelVar
	mu      sync.RWMutex
	console *log.Logger
	file    *log.Logger
	closer  io.Closer // Open log file, if any.
}

// Serializes writes to a sink shared by loggers derived per record.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// Returns the color profile of w itself, since the locked wrapper hides
// whether w is a terminal.
func colorProfile(w io.Writer) termenv.Profile {
	return termenv.NewOutput(w).EnvColorProfile()
}

// Fans slog records out to a console sink and an optional file sink.
type Handler struct {
	sinks *sinks
	ops   []func(slog.Handler) slog.Handler // WithAttrs/WithGroup calls, in order.
}

var _ slog.Handler = (*Handler)(nil)

// Creates a handler logging to stderr at info level.
func NewHandler() *Handler {
	s := &sinks{
		console: log.NewWithOptions(&lockedWriter{w: os.Stderr}, log.Options{
			Level: log.DebugLevel,
		}),
	}
	s.console.SetColorProfile(colorProfile(os.Stderr))
	s.level.Set(slog.LevelInfo)
	return &Handler{sinks: s}
}

// Sets the minimum level for every sink.
func (h *Handler) SetLevel(level slog.Level) {
	h.sinks.level.Set(level)
}

// Returns the current minimum level.
func (h *Handler) Level() slog.Level {
	return h.sinks.level.Level()
}

// Toggles caller and timestamp reporting on the console sink.
func (h *Handler) SetVerbose(verbose bool) {
	h.sinks.mu.Lock()
	defer h.sinks.mu.Unlock()
	h.sinks.console.SetReportCaller(verbose)
	h.sinks.console.SetReportTimestamp(verbose)
}

// Redirects the console sink.
func (h *Handler) SetStream(w io.Writer) {
	h.sinks.mu.Lock()
	defer h.sinks.mu.Unlock()
	h.sinks.console.SetOutput(&lockedWriter{w: w})
	h.sinks.console.SetColorProfile(colorProfile(w))
}

// Opens path for appending and attaches it as the file sink, creating the
// parent directory if needed. A previously opened file is closed.
func (h *Handler) OpenFile(path string) error {
	if err := paths.EnsureParent(path); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, paths.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	h.attachFile(f, f)
	return nil
}

// Attaches w as the file sink. c, when non-nil, is closed by [Handler.Close].
func (h *Handler) attachFile(w io.Writer, c io.Closer) {
	logger := log.NewWithOptions(&lockedWriter{w: w}, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      FileTimeFormat,
		Formatter:       log.TextFormatter,
	})

	h.sinks.mu.Lock()
	old := h.sinks.closer
	h.sinks.file = logger
	h.sinks.closer = c
	h.sinks.mu.Unlock()

	if old != nil {
		old.Close()
	}
}

// Detaches and closes the file sink. The console sink stays usable.
func (h *Handler) Close() error {
	h.sinks.mu.Lock()
	c := h.sinks.closer
	h.sinks.file = nil
	h.sinks.closer = nil
	h.sinks.mu.Unlock()

	if c == nil {
		return nil
	}
	return c.Close()
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.sinks.level.Level()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	h.sinks.mu.RLock()
	targets := []*log.Logger{h.sinks.console}
	if h.sinks.file != nil {
		targets = append(targets, h.sinks.file)
	}
	h.sinks.mu.RUnlock()

	var errs []error
	for _, target := range targets {
		var sh slog.Handler = target
		for _, op := range h.ops {
			sh = op(sh)
		}
		if err := sh.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.with(func(sh slog.Handler) slog.Handler {
		return sh.WithAttrs(attrs)
	})
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(func(sh slog.Handler) slog.Handler {
		return sh.WithGroup(name)
	})
}

func (h *Handler) with(op func(slog.Handler) slog.Handler) *Handler {
	ops := make([]func(slog.Handler) slog.Handler, len(h.ops), len(h.ops)+1)
	copy(ops, h.ops)
	return &Handler{sinks: h.sinks, ops: append(ops, op)}
}
