package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"resty.dev/v3"
)

// 01.AI (Lingyiwanwu) API defaults.
const (
	DefaultYiModel   = "yi-large"
	DefaultYiBaseURL = "https://api.lingyiwanwu.com"
)

// Configures a [Yi] provider. Empty fields take their defaults, except
// Temperature where zero is a valid setting.
type YiConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	BaseURL     string
	Timeout     time.Duration
}

// Calls the Yi chat completions endpoint with the whole prompt as a single
// user message.
type Yi struct {
	cfg    YiConfig
	client *resty.Client
}

type yiRequest struct {
	Model       string      `json:"model"`
	Messages    []yiMessage `json:"messages"`
	Temperature float64     `json:"temperature"`
}

type yiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func NewYi(cfg YiConfig) *Yi {
	if cfg.Model == "" {
		cfg.Model = DefaultYiModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultYiBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Yi{cfg: cfg, client: newClient(cfg.Timeout)}
}

func (y *Yi) Name() string { return "yi" }

func (y *Yi) Complete(ctx context.Context, prompt string) (string, error) {
	req := y.client.R().
		SetAuthToken(y.cfg.APIKey).
		SetBody(yiRequest{
			Model:       y.cfg.Model,
			Messages:    []yiMessage{{Role: "user", Content: prompt}},
			Temperature: y.cfg.Temperature,
		})

	body, err := post(ctx, y.Name(), req, y.cfg.BaseURL+"/v1/chat/completions")
	if err != nil {
		slog.Error("request to Lingyiwanwu API failed", "error", err)
		return "", err
	}

	slog.Info("Lingyiwanwu API call successful", "model", y.cfg.Model)
	return ExtractText(body), nil
}
