package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/tripguide/tripd/internal"
	"github.com/tripguide/tripd/internal/settings"
	"resty.dev/v3"
)

// Default timeout of a single completion request.
const defaultTimeout = 60 * time.Second

// Produces a completion for a prompt.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Creates the provider selected by s.Provider.
func NewProvider(s *settings.Settings) (Provider, error) {
	switch s.Provider {
	case settings.ProviderYi:
		return NewYi(YiConfig{
			APIKey:      s.YiKey,
			Model:       s.YiModel,
			Temperature: s.YiTemperature,
			BaseURL:     s.YiBaseURL,
			Timeout:     s.RequestTimeout,
		}), nil
	case settings.ProviderGemini:
		return NewGemini(GeminiConfig{
			APIKey:  s.GeminiKey,
			Model:   s.GeminiModel,
			BaseURL: s.GeminiBaseURL,
			Timeout: s.RequestTimeout,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, s.Provider)
	}
}

// Creates the JSON HTTP client shared by a provider's requests.
func newClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", internal.UserAgent())
}

// Sends req as a POST to url and returns the response body.
//
// Transport failures and non-2xx statuses are returned wrapping
// [ErrProvider]. The URL is left out of errors since it may carry a key.
func post(ctx context.Context, name string, req *resty.Request, url string) ([]byte, error) {
	resp, err := req.SetContext(ctx).Post(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProvider, name, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s returned %s", ErrProvider, name, resp.Status())
	}
	return []byte(resp.String()), nil
}
