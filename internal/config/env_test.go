package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_Defaults(t *testing.T) {
	cfg, err := LoadConfigFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-1.5-pro", cfg.GeminiModel)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenrouterBaseURL)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "http://localhost:3000", cfg.CORSAllowOrigins)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.FillEmpty)
	assert.Equal(t, 10*time.Minute, cfg.SweepInterval)
	assert.Equal(t, time.Hour, cfg.MaxAge)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "app.log", cfg.File)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadConfigFrom_Overrides(t *testing.T) {
	cfg, err := LoadConfigFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"API_KEY":              "secret",
		"LLM_PROVIDER":         "openrouter",
		"OPENROUTER_API_KEY":   "or-key",
		"LLM_TIMEOUT":          "45s",
		"LLM_RATE_LIMIT_RPS":   "2.5",
		"GENERATOR_FILL_EMPTY": "true",
		"SERVER_PORT":          "9090",
		"LOG_LEVEL":            "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, ProviderOpenRouter, cfg.Provider)
	assert.Equal(t, "or-key", cfg.OpenrouterAPIKey)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 1e-9)
	assert.True(t, cfg.FillEmpty)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.Level)
}

func TestLoadConfigFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown provider", env: map[string]string{"LLM_PROVIDER": "mystery"}},
		{name: "negative rps", env: map[string]string{"LLM_RATE_LIMIT_RPS": "-1"}},
		{name: "port out of range", env: map[string]string{"SERVER_PORT": "70000"}},
		{name: "bad duration", env: map[string]string{"LLM_TIMEOUT": "soon"}},
		{name: "zero max age", env: map[string]string{"EXPORT_MAX_AGE": "0s"}},
		{name: "negative max age", env: map[string]string{"EXPORT_MAX_AGE": "-5m"}},
		{name: "negative sweep interval", env: map[string]string{"EXPORT_SWEEP_INTERVAL": "-1m"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFrom(context.Background(), envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}
