package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIAdapter talks to any OpenAI-compatible chat endpoint, including a
// local Ollama server exposing /v1.
type OpenAIAdapter struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewOpenAIAdapter creates an adapter against baseURL. Ollama ignores the
// API key but the client requires one.
func NewOpenAIAdapter(baseURL, apiKey, model string, log zerolog.Logger) *OpenAIAdapter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log.With().Str("component", "openai_adapter").Str("model", model).Logger(),
	}
}

// Complete sends the prompt as a single user message and returns the first
// choice. An empty choice list maps to empty output, not an error.
func (a *OpenAIAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		a.log.Warn().Dur("elapsed", time.Since(start)).Msg("completion returned no choices")
		return "", nil
	}

	output := strings.TrimSpace(resp.Choices[0].Message.Content)
	a.log.Debug().
		Int("prompt_len", len(prompt)).
		Int("output_len", len(output)).
		Dur("elapsed", time.Since(start)).
		Msg("completion finished")
	return output, nil
}
