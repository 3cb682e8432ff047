package cli

import (
	"errors"
	"log/slog"

	"github.com/tripguide/tripd/internal/chat"
	"github.com/tripguide/tripd/internal/settings"
	"github.com/tripguide/tripd/internal/transcript"
)

// Dependencies shared by the start and chat commands.
type app struct {
	settings *settings.Settings
	service  *chat.Service
	store    *transcript.Store // Nil when transcripts are disabled.
}

// Loads settings, attaches the log file and builds the chat service.
//
// overrides maps settings keys to command-line values; empty values are
// ignored. The log file is attached before validation so that missing keys
// are reported there too.
func bootstrap(overrides map[string]string) (*app, error) {
	loader := settings.NewLoader()
	loader.Override(settings.KeyLogFile, RootCmd.LogFile)
	for key, value := range overrides {
		loader.Override(key, value)
	}

	s, err := loader.Read(RootCmd.EnvFile)
	if err != nil {
		return nil, err
	}

	if h, ok := defaultHandler(); ok {
		if err := h.OpenFile(s.LogFile); err != nil {
			return nil, err
		}
		slog.Debug("logging to file", "path", s.LogFile)
	}

	a := &app{settings: s}

	if err := s.Validate(); err != nil {
		a.Close()
		return nil, err
	}

	provider, err := chat.NewProvider(s)
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := chat.Options{DefaultRole: s.DefaultRole}
	if s.TranscriptsEnabled() {
		store, err := transcript.Open(s.TranscriptDB)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.store = store
		opts.Recorder = store
		slog.Info("recording transcripts", "path", s.TranscriptDB)
	}

	a.service = chat.NewService(provider, opts)
	return a, nil
}

// Releases the transcript store and the log file.
func (a *app) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if h, ok := defaultHandler(); ok {
		errs = append(errs, h.Close())
	}
	return errors.Join(errs...)
}
