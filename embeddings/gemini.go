package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"time"
)

const (
	geminiBaseURL        = "https://generativelanguage.googleapis.com/v1beta"
	geminiEmbeddingModel = "models/gemini-embedding-001"
	geminiDimension      = 768
	geminiMaxBatchSize   = 100
)

// GeminiEmbedder generates embeddings through the Gemini embedContent API.
// Output vectors are L2-normalized, required for dimensions below 3072.
type GeminiEmbedder struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// GeminiEmbedderConfig holds configuration for the Gemini embedder
type GeminiEmbedderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type geminiEmbeddingRequest struct {
	Model                string             `json:"model"`
	Content              geminiContentInput `json:"content"`
	TaskType             string             `json:"task_type,omitempty"`
	OutputDimensionality int                `json:"output_dimensionality,omitempty"`
}

type geminiContentInput struct {
	Parts []geminiPartInput `json:"parts"`
}

type geminiPartInput struct {
	Text string `json:"text"`
}

type geminiEmbeddingResponse struct {
	Embedding struct {
		Values []float64 `json:"values"`
	} `json:"embedding"`
}

type geminiBatchEmbeddingRequest struct {
	Requests []geminiEmbeddingRequest `json:"requests"`
}

// The batch API returns values directly, with no nested "embedding" key
type geminiBatchEmbeddingResponse struct {
	Embeddings []struct {
		Values []float64 `json:"values"`
	} `json:"embeddings"`
}

// NewGeminiEmbedder creates a new Gemini embedder
func NewGeminiEmbedder(cfg GeminiEmbedderConfig) (*GeminiEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("Gemini API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = geminiEmbeddingModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &GeminiEmbedder{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// NewGeminiEmbedderFromEnv creates a Gemini embedder from environment variables
func NewGeminiEmbedderFromEnv() (*GeminiEmbedder, error) {
	return NewGeminiEmbedder(GeminiEmbedderConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
	})
}

// Dimension returns the dimensionality of the produced vectors
func (e *GeminiEmbedder) Dimension() int {
	return geminiDimension
}

// Embed generates an embedding vector for a single text
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	reqBody := geminiEmbeddingRequest{
		Model: e.model,
		Content: geminiContentInput{
			Parts: []geminiPartInput{{Text: text}},
		},
		TaskType:             "RETRIEVAL_QUERY",
		OutputDimensionality: geminiDimension,
	}

	url := fmt.Sprintf("%s/%s:embedContent", e.baseURL, e.model)

	var apiResp geminiEmbeddingResponse
	if err := e.postJSON(ctx, url, reqBody, &apiResp); err != nil {
		return nil, err
	}

	if len(apiResp.Embedding.Values) == 0 {
		return nil, errors.New("API returned empty embedding")
	}

	vector := apiResp.Embedding.Values
	normalizeEmbedding(vector)
	return vector, nil
}

// EmbedBatch generates embedding vectors for multiple texts using the
// batch endpoint
func (e *GeminiEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	allVectors := make([][]float64, 0, len(texts))

	for i := 0; i < len(texts); i += geminiMaxBatchSize {
		end := i + geminiMaxBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[i:end]

		requests := make([]geminiEmbeddingRequest, len(batch))
		for j, text := range batch {
			requests[j] = geminiEmbeddingRequest{
				Model: e.model,
				Content: geminiContentInput{
					Parts: []geminiPartInput{{Text: text}},
				},
				TaskType:             "RETRIEVAL_DOCUMENT",
				OutputDimensionality: geminiDimension,
			}
		}

		url := fmt.Sprintf("%s/%s:batchEmbedContents", e.baseURL, e.model)

		var apiResp geminiBatchEmbeddingResponse
		if err := e.postJSON(ctx, url, geminiBatchEmbeddingRequest{Requests: requests}, &apiResp); err != nil {
			return nil, err
		}

		if len(apiResp.Embeddings) != len(batch) {
			return nil, fmt.Errorf("mismatch: got %d embeddings for %d texts in batch", len(apiResp.Embeddings), len(batch))
		}

		for k, emb := range apiResp.Embeddings {
			if len(emb.Values) == 0 {
				return nil, fmt.Errorf("text %d has empty embedding", i+k)
			}
			vector := emb.Values
			normalizeEmbedding(vector)
			allVectors = append(allVectors, vector)
		}
	}

	return allVectors, nil
}

func (e *GeminiEmbedder) postJSON(ctx context.Context, url string, body interface{}, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %d - %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// normalizeEmbedding scales the vector to unit L2 norm in place
func normalizeEmbedding(embedding []float64) {
	var sumSq float64
	for _, v := range embedding {
		sumSq += v * v
	}
	norm := math.Sqrt(sumSq)
	if norm == 0 {
		return
	}
	for i := range embedding {
		embedding[i] /= norm
	}
}
