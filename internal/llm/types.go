// Package llm provides language model clients used for dataset synthesis.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the model answers with no text.
var ErrEmptyCompletion = errors.New("model returned an empty completion")

// Client sends a single prompt and returns the raw text reply.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	// Name identifies the provider/model pair in logs.
	Name() string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatCompletionError struct {
	Code    any    `json:"code"`
	Message string `json:"message"`
}

type chatCompletionResponse struct {
	ID      string                 `json:"id"`
	Model   string                 `json:"model"`
	Choices []chatCompletionChoice `json:"choices"`
	Error   *chatCompletionError   `json:"error,omitempty"`
}
