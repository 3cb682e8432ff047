package chat

import (
	"context"
	"log/slog"
	"time"
)

// A chat turn as received from a client.
type Request struct {
	Message string
	Role    *string  // Nil selects the service default role.
	History []string // Prior turns, "User: ..." and "Assistant: ..." lines.
}

// The outcome of a chat turn.
type Reply struct {
	Text    string
	History []string
}

// A processed chat turn, as handed to a [Recorder].
type Exchange struct {
	Time     time.Time
	Provider string
	Message  string
	Reply    string
	Error    string // Empty when the provider answered.
}

// Persists processed exchanges.
type Recorder interface {
	Record(ctx context.Context, ex Exchange) error
}

// Configures a [Service].
type Options struct {
	DefaultRole string
	Recorder    Recorder // Optional.
}

// Processes chat turns against a single provider. Safe for concurrent use.
type Service struct {
	provider Provider
	role     string
	recorder Recorder
	now      func() time.Time
}

func NewService(p Provider, opts Options) *Service {
	return &Service{
		provider: p,
		role:     opts.DefaultRole,
		recorder: opts.Recorder,
		now:      time.Now,
	}
}

// Returns the name of the backing provider.
func (s *Service) Provider() string {
	return s.provider.Name()
}

// Returns the role used when a request does not bring one.
func (s *Service) DefaultRole() string {
	return s.role
}

// Runs one chat turn.
//
// On success the reply is appended to the history as an "Assistant:" line.
// When the provider fails, the returned reply carries [FallbackUnavailable]
// and the history up to the user turn, alongside the error.
func (s *Service) Chat(ctx context.Context, req Request) (Reply, error) {
	role := s.role
	if req.Role != nil {
		role = *req.Role
	}

	prompt, history := GeneratePrompt(req.Message, role, req.History)

	ex := Exchange{
		Time:     s.now().UTC(),
		Provider: s.provider.Name(),
		Message:  req.Message,
	}

	text, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		slog.Error("processing chat failed", "provider", ex.Provider, "error", err)
		ex.Reply = FallbackUnavailable
		ex.Error = err.Error()
		s.record(ctx, ex)
		return Reply{Text: FallbackUnavailable, History: history}, err
	}

	history = append(history, assistantPrefix+text)
	slog.Info("assistant reply", "provider", ex.Provider, "reply", text)

	ex.Reply = text
	s.record(ctx, ex)

	return Reply{Text: text, History: history}, nil
}

// Hands ex to the recorder. Failures are logged only.
func (s *Service) record(ctx context.Context, ex Exchange) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(context.WithoutCancel(ctx), ex); err != nil {
		slog.Warn("recording exchange failed", "error", err)
	}
}
