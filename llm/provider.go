package llm

import (
	"context"
	"fmt"
	"os"
)

// Provider is the interface to the hosted completion service.
type Provider interface {
	// Complete sends a prompt and returns the generated text verbatim.
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)

	// Name returns the name of this provider.
	Name() string
}

// NewProviderFromEnv creates a completion provider from environment
// variables. LLM_PROVIDER selects the backend ("openai" or "gemini").
func NewProviderFromEnv(ctx context.Context) (Provider, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "openai":
		return NewOpenAIProviderFromEnv()
	case "gemini":
		return NewGeminiProviderFromEnv(ctx)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", provider)
	}
}
