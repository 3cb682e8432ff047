package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := NewHandler()
	h.SetStream(&buf)
	return h, &buf
}

func TestHandlerDefaultsToInfo(t *testing.T) {
	h, buf := newTestHandler(t)
	logger := slog.New(h)

	logger.Debug("hidden")
	logger.Info("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")
}

func TestHandlerLevelSharedWithDerived(t *testing.T) {
	h, buf := newTestHandler(t)
	logger := slog.New(h.WithGroup("tripd")).With("component", "test")

	logger.Debug("before")
	h.SetLevel(slog.LevelDebug)
	logger.Debug("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
	assert.Contains(t, buf.String(), "component=test")
	assert.Equal(t, slog.LevelDebug, h.Level())
}

func TestHandlerQuietLevel(t *testing.T) {
	h, buf := newTestHandler(t)
	h.SetLevel(slog.LevelWarn)
	logger := slog.New(h)

	logger.Info("info line")
	logger.Warn("warn line")

	assert.NotContains(t, buf.String(), "info line")
	assert.Contains(t, buf.String(), "warn line")
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
}

func TestHandlerFileSink(t *testing.T) {
	h, console := newTestHandler(t)
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	require.NoError(t, h.OpenFile(path))
	slog.New(h).Info("written twice")
	require.NoError(t, h.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written twice")
	assert.Contains(t, console.String(), "written twice")
}

func TestHandlerCloseDetachesFile(t *testing.T) {
	h, _ := newTestHandler(t)
	path := filepath.Join(t.TempDir(), "app.log")

	require.NoError(t, h.OpenFile(path))
	require.NoError(t, h.Close())
	slog.New(h).Info("after close")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "after close")
	assert.NoError(t, h.Close())
}

func TestHandlerReopenReplacesFile(t *testing.T) {
	h, _ := newTestHandler(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	require.NoError(t, h.OpenFile(first))
	require.NoError(t, h.OpenFile(second))
	slog.New(h).Info("to second")
	require.NoError(t, h.Close())

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to second")

	data, err = os.ReadFile(first)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "to second")
}

func TestHandlerConcurrentDerivedLoggers(t *testing.T) {
	h, buf := newTestHandler(t)
	require.NoError(t, h.OpenFile(filepath.Join(t.TempDir(), "app.log")))
	defer h.Close()

	logger := slog.New(h.WithGroup("tripd"))

	const workers = 50
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("concurrent", "worker", i)
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, strings.Count(buf.String(), "concurrent"))
}
