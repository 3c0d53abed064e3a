package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/datasynth/internal/config"
)

// OpenRouterClient talks to an OpenAI-compatible chat completions endpoint.
type OpenRouterClient struct {
	client *resty.Client
	model  string
}

func NewOpenRouterClient(cfg *config.LLMEnvConfig) (*OpenRouterClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if strings.TrimSpace(cfg.OpenrouterAPIKey) == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is required")
	}
	if strings.TrimSpace(cfg.OpenrouterModel) == "" {
		return nil, fmt.Errorf("OPENROUTER_MODEL is required")
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.OpenrouterBaseURL, "/")).
		SetAuthToken(strings.TrimSpace(cfg.OpenrouterAPIKey)).
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	return &OpenRouterClient{
		client: client,
		model:  strings.TrimSpace(cfg.OpenrouterModel),
	}, nil
}

func (o *OpenRouterClient) Name() string {
	return config.ProviderOpenRouter + "/" + o.model
}

func (o *OpenRouterClient) Complete(ctx context.Context, prompt string) (string, error) {
	var out chatCompletionResponse
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(chatCompletionRequest{
			Model:    o.model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		log.Error().Err(err).Msg("chat-completions request failed")
		return "", fmt.Errorf("chat completions: %w", err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Msg("chat-completions non-2xx")
		return "", fmt.Errorf("chat-completions status %d: %s", resp.StatusCode(), resp.String())
	}
	if out.Error != nil {
		return "", fmt.Errorf("chat-completions api error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("chat-completions returned no choices")
	}

	text := out.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
