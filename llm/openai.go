package llm

import (
	"context"
	"errors"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using the OpenAI Chat Completions API,
// or an Azure OpenAI deployment when an endpoint is configured.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// OpenAIConfig holds configuration for the OpenAI provider
type OpenAIConfig struct {
	APIKey        string
	AzureEndpoint string // if set, use Azure OpenAI
	BaseURL       string // overrides the default API endpoint
	Model         string
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}

	var client *openai.Client
	switch {
	case cfg.AzureEndpoint != "":
		azureCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.AzureEndpoint)
		client = openai.NewClientWithConfig(azureCfg)
	case cfg.BaseURL != "":
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		clientCfg.BaseURL = cfg.BaseURL
		client = openai.NewClientWithConfig(clientCfg)
	default:
		client = openai.NewClient(cfg.APIKey)
	}

	return &OpenAIProvider{
		client: client,
		model:  model,
	}, nil
}

// NewOpenAIProviderFromEnv creates an OpenAI provider from environment variables
func NewOpenAIProviderFromEnv() (*OpenAIProvider, error) {
	apiKey := os.Getenv("AZURE_OPENAI_KEY")
	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
		endpoint = ""
	}
	return NewOpenAIProvider(OpenAIConfig{
		APIKey:        apiKey,
		AzureEndpoint: endpoint,
		Model:         os.Getenv("OPENAI_CHAT_MODEL"),
	})
}

// Name returns the name of this provider
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Complete sends a prompt and returns the generated text
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("completion API returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
