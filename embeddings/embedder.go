package embeddings

import (
	"context"
	"fmt"
	"os"
)

// Embedder turns text into a fixed-dimensionality vector via a hosted
// embedding model. Implementations are safe for concurrent use.
type Embedder interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// EmbedBatch generates embedding vectors for multiple texts, used by
	// the ingestion pipeline.
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)

	// Dimension returns the dimensionality of the produced vectors.
	Dimension() int
}

// NewEmbedderFromEnv creates an embedder from environment variables.
// EMBEDDING_PROVIDER selects the backend ("openai" or "gemini").
func NewEmbedderFromEnv() (Embedder, error) {
	provider := os.Getenv("EMBEDDING_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	switch provider {
	case "openai":
		return NewOpenAIEmbedderFromEnv()
	case "gemini":
		return NewGeminiEmbedderFromEnv()
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", provider)
	}
}
