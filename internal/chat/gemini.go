package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resty.dev/v3"
)

// Google Generative Language API defaults.
const (
	DefaultGeminiModel   = "gemini-1.0-pro-latest"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
)

// Configures a [Gemini] provider. Empty fields take their defaults.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Calls the Gemini generateContent endpoint.
type Gemini struct {
	cfg    GeminiConfig
	client *resty.Client
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

func NewGemini(cfg GeminiConfig) *Gemini {
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Gemini{cfg: cfg, client: newClient(cfg.Timeout)}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.cfg.BaseURL, g.cfg.Model)

	req := g.client.R().
		SetQueryParam("key", g.cfg.APIKey).
		SetBody(geminiRequest{
			Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		})

	body, err := post(ctx, g.Name(), req, url)
	if err != nil {
		slog.Error("request to Gemini API failed", "error", err)
		return "", err
	}

	slog.Info("Gemini API call successful", "model", g.cfg.Model)
	return ExtractText(body), nil
}
