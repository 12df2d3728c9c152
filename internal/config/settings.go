package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/rgehrsitz/hcpredict/internal/logging"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the settings file
const (
	EnvDataDir     = "HCPREDICT_DATA_DIR"
	EnvReportsDir  = "HCPREDICT_REPORTS_DIR"
	EnvAddr        = "HCPREDICT_ADDR"
	EnvLogLevel    = "HCPREDICT_LOG_LEVEL"
	EnvLogFormat   = "HCPREDICT_LOG_FORMAT"
	EnvRateLimit   = "HCPREDICT_RATE_LIMIT"
	EnvGeminiKey   = "GEMINI_API_KEY"
	EnvGeminiModel = "HCPREDICT_GEMINI_MODEL"
)

// Settings is the application configuration
type Settings struct {
	// DataDir holds the reference CSV/YAML files; empty uses the embedded defaults
	DataDir    string                 `yaml:"data_dir"`
	ReportsDir string                 `yaml:"reports_dir"`
	Model      domain.ModelParameters `yaml:"model"`
	Logging    logging.Config         `yaml:"logging"`
	Server     ServerSettings         `yaml:"server"`
	Gemini     GeminiSettings         `yaml:"gemini"`
}

// ServerSettings configures the HTTP API
type ServerSettings struct {
	Addr      string  `yaml:"addr"`
	RateLimit float64 `yaml:"rate_limit"` // requests per second, 0 disables limiting
	Burst     int     `yaml:"burst"`
}

// GeminiSettings configures generated recommendations
type GeminiSettings struct {
	APIKey string `yaml:"-"`
	Model  string `yaml:"model"`
}

// Enabled reports whether an API key is configured
func (g GeminiSettings) Enabled() bool {
	return g.APIKey != ""
}

// DefaultSettings returns the built-in configuration
func DefaultSettings() Settings {
	return Settings{
		ReportsDir: "reports",
		Model:      domain.DefaultModelParameters(),
		Logging:    logging.DefaultConfig(),
		Server: ServerSettings{
			Addr:      ":8080",
			RateLimit: 10,
			Burst:     20,
		},
		Gemini: GeminiSettings{Model: "gemini-1.5-flash"},
	}
}

// LoadSettings reads defaults, then the optional YAML file at path, then a .env
// file if present, then environment overrides
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := settings.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &settings, nil
}

// ApplyEnv overrides settings from lookup (os.LookupEnv in production)
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDataDir); ok {
		s.DataDir = v
	}
	if v, ok := lookup(EnvReportsDir); ok && v != "" {
		s.ReportsDir = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		s.Server.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		s.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		s.Logging.Format = v
	}
	if v, ok := lookup(EnvRateLimit); ok && v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number, got %q", EnvRateLimit, v)
		}
		s.Server.RateLimit = limit
	}
	if v, ok := lookup(EnvGeminiKey); ok {
		s.Gemini.APIKey = v
	}
	if v, ok := lookup(EnvGeminiModel); ok && v != "" {
		s.Gemini.Model = v
	}
	return nil
}

// Validate checks the settings are usable
func (s *Settings) Validate() error {
	if err := s.Model.Validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if err := s.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if s.ReportsDir == "" {
		return fmt.Errorf("reports directory is required")
	}
	if s.Server.Addr == "" {
		return fmt.Errorf("server address is required")
	}
	if s.Server.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative")
	}
	if s.Server.RateLimit > 0 && s.Server.Burst < 1 {
		return fmt.Errorf("burst must be at least 1 when rate limiting is enabled")
	}
	return nil
}
