package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}
	return provider
}

func TestOpenAIComplete(t *testing.T) {
	provider := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}

		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != openai.GPT4o {
			t.Errorf("model = %q, want %q", req.Model, openai.GPT4o)
		}
		if req.Temperature != 0.2 {
			t.Errorf("temperature = %v, want 0.2", req.Temperature)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != openai.ChatMessageRoleUser {
			t.Errorf("messages = %+v, want one user message", req.Messages)
		}
		if req.Messages[0].Content != "What makes a contract valid?" {
			t.Errorf("prompt = %q", req.Messages[0].Content)
		}

		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: "a detailed legal answer",
				}},
			},
		})
	})

	answer, err := provider.Complete(context.Background(), "What makes a contract valid?", 0.2)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if answer != "a detailed legal answer" {
		t.Errorf("answer = %q", answer)
	}
}

func TestOpenAICompleteNoChoices(t *testing.T) {
	provider := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
	})

	if _, err := provider.Complete(context.Background(), "anything", 0.2); err == nil {
		t.Fatal("expected error when the API returns no choices")
	}
}

func TestOpenAICompleteAPIError(t *testing.T) {
	provider := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})

	if _, err := provider.Complete(context.Background(), "anything", 0.2); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestOpenAIProviderRequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestOpenAIProviderName(t *testing.T) {
	provider, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatal(err)
	}
	if provider.Name() != "openai" {
		t.Errorf("name = %q", provider.Name())
	}
}
