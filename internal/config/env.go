// Package config defines environment configuration structs and loaders.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

type AppConfig struct {
	AuthEnvConfig
	LLMEnvConfig
	GeneratorEnvConfig
	ServerEnvConfig
	ExportEnvConfig
	LogEnvConfig
}

// LoadConfig reads the process environment into an AppConfig.
func LoadConfig(ctx context.Context) (*AppConfig, error) {
	return LoadConfigFrom(ctx, envconfig.OsLookuper())
}

// LoadConfigFrom reads configuration through the given lookuper. Tests use
// envconfig.MapLookuper to avoid touching the process environment.
func LoadConfigFrom(ctx context.Context, lookuper envconfig.Lookuper) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *AppConfig) Validate() error {
	switch strings.ToLower(c.Provider) {
	case ProviderGemini, ProviderOpenRouter:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.Provider)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("LLM_RATE_LIMIT_RPS must be >= 0, got %g", c.RateLimitRPS)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.Port)
	}
	// A zero age would sweep files of requests still being answered.
	if c.MaxAge <= 0 {
		return fmt.Errorf("EXPORT_MAX_AGE must be > 0, got %s", c.MaxAge)
	}
	if c.SweepInterval < 0 {
		return fmt.Errorf("EXPORT_SWEEP_INTERVAL must be >= 0, got %s", c.SweepInterval)
	}
	return nil
}

// AuthEnvConfig holds the shared secret expected in the x-api-key header.
type AuthEnvConfig struct {
	APIKey string `env:"API_KEY"`
}

// LLMEnvConfig selects and configures the language model provider.
type LLMEnvConfig struct {
	Provider string `env:"LLM_PROVIDER, default=gemini"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL, default=gemini-1.5-pro"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL"`

	OpenrouterAPIKey  string `env:"OPENROUTER_API_KEY"`
	OpenrouterModel   string `env:"OPENROUTER_MODEL, default=google/gemini-flash-1.5"`
	OpenrouterBaseURL string `env:"OPENROUTER_BASE_URL, default=https://openrouter.ai/api/v1"`

	// Timeout bounds a single model call. Zero leaves the call unbounded.
	Timeout      time.Duration `env:"LLM_TIMEOUT, default=0s"`
	RateLimitRPS float64       `env:"LLM_RATE_LIMIT_RPS, default=0"`
}

// GeneratorEnvConfig tunes post-processing of model output.
type GeneratorEnvConfig struct {
	FillEmpty bool `env:"GENERATOR_FILL_EMPTY, default=false"`
}

// ServerEnvConfig configures the HTTP server.
type ServerEnvConfig struct {
	Host             string `env:"SERVER_HOST, default=0.0.0.0"`
	Port             int    `env:"SERVER_PORT, default=8000"`
	BodySizeLimit    int    `env:"SERVER_BODY_LIMIT, default=4194304"`
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS, default=http://localhost:3000"`
	MetricsEnabled   bool   `env:"METRICS_ENABLED, default=true"`
}

// ExportEnvConfig configures temporary CSV files and the orphan sweeper.
type ExportEnvConfig struct {
	TempDir       string        `env:"EXPORT_TEMP_DIR"`
	SweepInterval time.Duration `env:"EXPORT_SWEEP_INTERVAL, default=10m"`
	MaxAge        time.Duration `env:"EXPORT_MAX_AGE, default=1h"`
}

// LogEnvConfig configures the global logger.
type LogEnvConfig struct {
	Level       string `env:"LOG_LEVEL, default=info"`
	File        string `env:"LOG_FILE, default=app.log"`
	Environment string `env:"ENVIRONMENT, default=prod"`
}
