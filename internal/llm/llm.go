package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tensorplex-labs/datasynth/internal/config"
)

// ErrNotConfigured is returned by the client used when the selected provider
// has no credentials. Every call fails, so requests are served by the fallback.
var ErrNotConfigured = errors.New("language model provider is not configured")

type unavailableClient struct {
	name   string
	reason error
}

func (u unavailableClient) Name() string { return u.name }

func (u unavailableClient) Complete(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: %v", ErrNotConfigured, u.reason)
}

// New builds the client selected by cfg.Provider. A provider without an API key
// yields a client that always fails, which keeps the service answering from
// the fallback path instead of refusing to start.
func New(ctx context.Context, cfg *config.LLMEnvConfig) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var (
		c   Client
		err error
	)
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderGemini:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			return unavailableClient{name: config.ProviderGemini, reason: errors.New("GEMINI_API_KEY is empty")}, nil
		}
		c, err = NewGeminiClient(ctx, cfg)
	case config.ProviderOpenRouter:
		if strings.TrimSpace(cfg.OpenrouterAPIKey) == "" {
			return unavailableClient{name: config.ProviderOpenRouter, reason: errors.New("OPENROUTER_API_KEY is empty")}, nil
		}
		c, err = NewOpenRouterClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return WithLimits(c, cfg.RateLimitRPS, cfg.Timeout), nil
}
