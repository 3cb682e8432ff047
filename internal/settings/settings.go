package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tripguide/tripd/internal/paths"
)

// Supported chat providers.
const (
	ProviderYi     = "yi"
	ProviderGemini = "gemini"
)

// Persona prepended to every prompt unless the request brings its own role.
const DefaultRole = `
Role: You are a knowledgeable travel guide and planner.
Your task is to help clients plan their trips to any location worldwide.
When engaging with clients, ask them for more details if the information they provide is insufficient for planning the itinerary.
Gather essential details such as their travel dates, preferred destinations, interests (e.g., culture, adventure, relaxation),
budget, and any special requests. Your responses should be friendly, informative, and proactive in guiding them through the planning process.
`

// Configuration keys. Each key is bound to the environment variable of the
// same name in upper case.
const (
	KeyListenAddr     = "listen_addr"
	KeyLogFile        = "log_file"
	KeyProvider       = "chat_provider"
	KeyGeminiKey      = "gemini_key"
	KeyYiKey          = "yi_key"
	KeyGeminiModel    = "gemini_model"
	KeyYiModel        = "yi_model"
	KeyYiTemperature  = "yi_temperature"
	KeyGeminiBaseURL  = "gemini_base_url"
	KeyYiBaseURL      = "yi_base_url"
	KeyRequestTimeout = "request_timeout"
	KeyDefaultRole    = "default_role"
	KeyTranscriptDB   = "transcript_db"
	KeyAuthTokenHash  = "auth_token_hash"
)

// Every configuration key, in table order.
var keys = []string{
	KeyListenAddr,
	KeyLogFile,
	KeyProvider,
	KeyGeminiKey,
	KeyYiKey,
	KeyGeminiModel,
	KeyYiModel,
	KeyYiTemperature,
	KeyGeminiBaseURL,
	KeyYiBaseURL,
	KeyRequestTimeout,
	KeyDefaultRole,
	KeyTranscriptDB,
	KeyAuthTokenHash,
}

// Returns the environment variable backing each configuration key.
func EnvNames() []string {
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = strings.ToUpper(key)
	}
	return names
}

// Runtime configuration of the service.
type Settings struct {
	ListenAddr     string        `mapstructure:"listen_addr"`
	LogFile        string        `mapstructure:"log_file"`
	Provider       string        `mapstructure:"chat_provider"`
	GeminiKey      string        `mapstructure:"gemini_key"`
	YiKey          string        `mapstructure:"yi_key"`
	GeminiModel    string        `mapstructure:"gemini_model"`
	YiModel        string        `mapstructure:"yi_model"`
	YiTemperature  float64       `mapstructure:"yi_temperature"`
	GeminiBaseURL  string        `mapstructure:"gemini_base_url"`
	YiBaseURL      string        `mapstructure:"yi_base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	DefaultRole    string        `mapstructure:"default_role"`
	TranscriptDB   string        `mapstructure:"transcript_db"`
	AuthTokenHash  string        `mapstructure:"auth_token_hash"`
}

// Loads [Settings] from a dotenv file and the environment.
type Loader struct {
	v *viper.Viper
}

// Creates a loader with defaults and environment bindings in place.
func NewLoader() *Loader {
	v := viper.New()

	v.SetDefault(KeyListenAddr, "0.0.0.0:8080")
	v.SetDefault(KeyLogFile, paths.LogFile())
	v.SetDefault(KeyProvider, ProviderYi)
	v.SetDefault(KeyGeminiModel, "gemini-1.0-pro-latest")
	v.SetDefault(KeyYiModel, "yi-large")
	v.SetDefault(KeyYiTemperature, 0.3)
	v.SetDefault(KeyGeminiBaseURL, "https://generativelanguage.googleapis.com")
	v.SetDefault(KeyYiBaseURL, "https://api.lingyiwanwu.com")
	v.SetDefault(KeyRequestTimeout, "60s")
	v.SetDefault(KeyDefaultRole, DefaultRole)
	v.SetDefault(KeyGeminiKey, "")
	v.SetDefault(KeyYiKey, "")
	v.SetDefault(KeyTranscriptDB, "")
	v.SetDefault(KeyAuthTokenHash, "")

	for _, key := range keys {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			panic(fmt.Sprintf("settings: binding %s: %v", key, err))
		}
	}

	return &Loader{v: v}
}

// Sets key to value with the highest precedence. Empty values are ignored
// so unset command-line flags do not mask the environment.
func (l *Loader) Override(key, value string) {
	if value != "" {
		l.v.Set(key, value)
	}
}

// Reads envFile (when it exists) into the process environment and returns
// the validated settings.
func (l *Loader) Load(envFile string) (*Settings, error) {
	s, err := l.Read(envFile)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Like [Loader.Load] but without validation.
//
// Variables already present in the environment are not replaced by the
// file. A missing envFile is not an error.
func (l *Loader) Read(envFile string) (*Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrConfig, envFile, err)
		}
	}

	var s Settings
	if err := l.v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return &s, nil
}

// Checks the settings for consistency.
//
// Every missing API key is logged. Only the key of the selected provider is
// required.
func (s *Settings) Validate() error {
	s.Provider = strings.ToLower(strings.TrimSpace(s.Provider))

	if s.GeminiKey == "" {
		slog.Error("GEMINI_KEY not found in environment variables")
	}
	if s.YiKey == "" {
		slog.Error("YI_KEY not found in environment variables")
	}

	switch s.Provider {
	case ProviderYi:
		if s.YiKey == "" {
			return fmt.Errorf("%w: YI_KEY is required by provider %q", ErrMissingKey, s.Provider)
		}
	case ProviderGemini:
		if s.GeminiKey == "" {
			return fmt.Errorf("%w: GEMINI_KEY is required by provider %q", ErrMissingKey, s.Provider)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, s.Provider)
	}

	if s.YiTemperature < 0 || s.YiTemperature > 2 {
		return fmt.Errorf("%w: YI_TEMPERATURE %v outside [0, 2]", ErrConfig, s.YiTemperature)
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("%w: REQUEST_TIMEOUT must be positive", ErrConfig)
	}
	if strings.TrimSpace(s.ListenAddr) == "" {
		return fmt.Errorf("%w: LISTEN_ADDR is empty", ErrConfig)
	}

	return nil
}

// Reports whether exchanges should be persisted.
func (s *Settings) TranscriptsEnabled() bool {
	return s.TranscriptDB != ""
}

// Reports whether requests must present a bearer token.
func (s *Settings) AuthEnabled() bool {
	return s.AuthTokenHash != ""
}
