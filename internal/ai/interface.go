package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model produced no usable text.
var ErrEmptyResponse = errors.New("model returned no text")

// Provider defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.) in the future.
type Provider interface {
	// Generate runs a single-shot prompt and returns the raw model text.
	Generate(ctx context.Context, prompt string, cfg GenerateConfig) (string, error)

	// Chat runs a multi-turn conversation under a system instruction and
	// returns the raw model text of the reply to the last message.
	Chat(ctx context.Context, system string, msgs []Message, cfg GenerateConfig) (string, error)
}
