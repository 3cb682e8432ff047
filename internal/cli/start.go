package cli

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tripguide/tripd/internal/server"
	"github.com/tripguide/tripd/internal/settings"
)

// Time allowed for in-flight requests when shutting down.
const shutdownTimeout = 30 * time.Second

// Represents the 'tripd start' command.
type StartCmd struct {
	Addr     string `short:"a" help:"Listen address. Overrides LISTEN_ADDR." placeholder:"HOST:PORT"`
	Provider string `short:"p" help:"Chat provider, yi or gemini. Overrides CHAT_PROVIDER."`
}

// Executes the start command.
//
// Serves HTTP until the context is cancelled (e.g. via SIGINT or SIGTERM)
// or the server stops on its own.
func (c *StartCmd) Run(ctx context.Context) error {
	a, err := bootstrap(map[string]string{
		settings.KeyListenAddr: c.Addr,
		settings.KeyProvider:   c.Provider,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := server.Config{
		Addr:           a.settings.ListenAddr,
		Service:        a.service,
		AuthTokenHash:  a.settings.AuthTokenHash,
		RequestTimeout: a.settings.RequestTimeout,
	}
	if a.store != nil {
		cfg.Transcripts = a.store
	}

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	if err := srv.Start(); err != nil {
		return err
	}

	slog.Info("tripd is running", "addr", srv.Addr(), "auth", a.settings.AuthEnabled())

	stopped := make(chan struct{})
	go func() {
		srv.Wait()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
	case <-stopped:
		return errors.New("server stopped unexpectedly")
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
