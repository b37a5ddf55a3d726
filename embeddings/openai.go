package embeddings

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const openaiMaxBatchSize = 100

// OpenAIEmbedder generates embeddings through the OpenAI embeddings API,
// or an Azure OpenAI deployment when an endpoint is configured.
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
}

// OpenAIEmbedderConfig holds configuration for the OpenAI embedder
type OpenAIEmbedderConfig struct {
	APIKey        string
	AzureEndpoint string // if set, use Azure OpenAI
	Model         string
}

// NewOpenAIEmbedder creates a new OpenAI embedder
func NewOpenAIEmbedder(cfg OpenAIEmbedderConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}

	var client *openai.Client
	if cfg.AzureEndpoint != "" {
		azureCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.AzureEndpoint)
		client = openai.NewClientWithConfig(azureCfg)
	} else {
		client = openai.NewClient(cfg.APIKey)
	}

	return &OpenAIEmbedder{
		client:    client,
		model:     model,
		dimension: embeddingDimension(model),
	}, nil
}

// NewOpenAIEmbedderFromEnv creates an OpenAI embedder from environment variables
func NewOpenAIEmbedderFromEnv() (*OpenAIEmbedder, error) {
	apiKey := os.Getenv("AZURE_OPENAI_KEY")
	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
		endpoint = ""
	}
	return NewOpenAIEmbedder(OpenAIEmbedderConfig{
		APIKey:        apiKey,
		AzureEndpoint: endpoint,
		Model:         os.Getenv("OPENAI_EMBEDDING_MODEL"),
	})
}

func embeddingDimension(model string) int {
	switch openai.EmbeddingModel(model) {
	case openai.LargeEmbedding3:
		return 3072
	case openai.AdaEmbeddingV2:
		return 1536
	default:
		return 1536
	}
}

// Dimension returns the dimensionality of the produced vectors
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

// Embed generates an embedding vector for a single text
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embedding vectors for multiple texts
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	allVectors := make([][]float64, 0, len(texts))

	for i := 0; i < len(texts); i += openaiMaxBatchSize {
		end := i + openaiMaxBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[i:end]

		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: batch,
			Model: openai.EmbeddingModel(e.model),
		})
		if err != nil {
			return nil, fmt.Errorf("openai embedding request failed: %w", err)
		}

		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("openai returned %d embeddings, expected %d", len(resp.Data), len(batch))
		}

		for _, emb := range resp.Data {
			vector := make([]float64, len(emb.Embedding))
			for j, v := range emb.Embedding {
				vector[j] = float64(v)
			}
			allVectors = append(allVectors, vector)
		}
	}

	return allVectors, nil
}
