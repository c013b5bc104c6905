package gen

import (
	"context"
	"fmt"
)

type Config struct {
	Provider string // gemini|openai|mock
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
}

// NewProvider creates a Provider from configuration.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
