package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lawgpt-backend/models"
	"lawgpt-backend/service"
	"lawgpt-backend/vectorstore"

	"github.com/gin-gonic/gin"
)

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return []float64{0.1, 0.2}, nil
}

func (fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	return nil, errors.New("not used")
}

func (fakeEmbedder) Dimension() int { return 2 }

type fakeStore struct {
	docs map[string][]models.Document
}

func (fakeStore) CreateCollection(ctx context.Context, collection string, dimension int) error {
	return nil
}

func (fakeStore) Upsert(ctx context.Context, collection string, points []vectorstore.Point) error {
	return nil
}

func (f fakeStore) Search(ctx context.Context, collection string, vector []float64, topK int) ([]models.Document, error) {
	return f.docs[collection], nil
}

type fakeProvider struct {
	answer string
	err    error
}

func (p fakeProvider) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	return p.answer, p.err
}

func (fakeProvider) Name() string { return "fake" }

func newTestRouter(provider fakeProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)

	chatService := service.NewChatService(
		service.WithStore(fakeStore{docs: map[string][]models.Document{
			"ksa_legal_docs": {
				{Title: "labor_law.pdf", Text: "working hours", LawType: "labor_law", Filename: "labor_law.pdf", Score: 0.9},
			},
		}}),
		service.WithEmbedder(fakeEmbedder{}),
		service.WithProvider(provider),
	)
	handler := NewChatHandler(chatService)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/chat", handler.Chat)
	api.GET("/filters", handler.ListFilters)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatEndpoint(t *testing.T) {
	r := newTestRouter(fakeProvider{answer: "a detailed legal answer"})

	w := doRequest(t, r, http.MethodPost, "/api/chat", `{"question":"What are working hour limits?","filter":"labour"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Answer         string `json:"answer"`
			Filter         string `json:"filter"`
			FallbackServed bool   `json:"fallback_served"`
			SourceCount    int    `json:"source_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.Success {
		t.Error("expected success envelope")
	}
	if resp.Data.Answer != "a detailed legal answer" {
		t.Errorf("answer = %q", resp.Data.Answer)
	}
	if resp.Data.Filter != "labour" {
		t.Errorf("filter = %q, want labour", resp.Data.Filter)
	}
	if resp.Data.FallbackServed {
		t.Error("fallback_served should be false")
	}
	if resp.Data.SourceCount != 1 {
		t.Errorf("source_count = %d, want 1", resp.Data.SourceCount)
	}
}

func TestChatEndpointDefaultFilter(t *testing.T) {
	r := newTestRouter(fakeProvider{answer: "answer"})

	w := doRequest(t, r, http.MethodPost, "/api/chat", `{"question":"anything"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"filter":"hybrid"`) {
		t.Errorf("omitted filter should default to hybrid, body = %s", w.Body.String())
	}
}

func TestChatEndpointInvalidFilter(t *testing.T) {
	r := newTestRouter(fakeProvider{answer: "answer"})

	w := doRequest(t, r, http.MethodPost, "/api/chat", `{"question":"hi","filter":"maritime"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INVALID_FILTER") {
		t.Errorf("expected INVALID_FILTER code, body = %s", w.Body.String())
	}
}

func TestChatEndpointMissingQuestion(t *testing.T) {
	r := newTestRouter(fakeProvider{answer: "answer"})

	w := doRequest(t, r, http.MethodPost, "/api/chat", `{"filter":"labour"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INVALID_REQUEST") {
		t.Errorf("expected INVALID_REQUEST code, body = %s", w.Body.String())
	}
}

func TestChatEndpointBlankQuestion(t *testing.T) {
	r := newTestRouter(fakeProvider{answer: "answer"})

	// Passes binding (non-empty string) but the service rejects it
	w := doRequest(t, r, http.MethodPost, "/api/chat", `{"question":"   ","filter":"labour"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INVALID_REQUEST") {
		t.Errorf("expected INVALID_REQUEST code, body = %s", w.Body.String())
	}
}

func TestChatEndpointCompletionFailureStill200(t *testing.T) {
	r := newTestRouter(fakeProvider{err: errors.New("model unavailable")})

	w := doRequest(t, r, http.MethodPost, "/api/chat", `{"question":"contract rules?","filter":"hybrid"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("degraded answers still return 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"fallback_served":true`) {
		t.Errorf("expected fallback_served true, body = %s", w.Body.String())
	}
}

func TestFiltersEndpoint(t *testing.T) {
	r := newTestRouter(fakeProvider{answer: "answer"})

	w := doRequest(t, r, http.MethodGet, "/api/filters", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Filters []struct {
				Name        string `json:"name"`
				Description string `json:"description"`
			} `json:"filters"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Data.Filters) != 4 {
		t.Fatalf("expected 4 filters, got %d", len(resp.Data.Filters))
	}
	for _, f := range resp.Data.Filters {
		if f.Name == "" || f.Description == "" {
			t.Errorf("filter entry incomplete: %+v", f)
		}
	}
}
