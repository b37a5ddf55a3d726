package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"lawgpt-backend/embeddings"
	"lawgpt-backend/llm"
	"lawgpt-backend/models"
	"lawgpt-backend/vectorstore"
)

// ChatService answers legal questions by retrieving relevant documents from
// the vector store and conditioning the completion model on them
type ChatService struct {
	store              vectorstore.Store
	embedder           embeddings.Embedder
	provider           llm.Provider
	articlesCollection string
	casesCollection    string
	topK               int
	maxResults         int
	searchTimeout      time.Duration
}

// ChatServiceOption is a functional option for ChatService
type ChatServiceOption func(*ChatService)

// WithStore sets the vector store
func WithStore(store vectorstore.Store) ChatServiceOption {
	return func(s *ChatService) {
		s.store = store
	}
}

// WithEmbedder sets the embedding client
func WithEmbedder(embedder embeddings.Embedder) ChatServiceOption {
	return func(s *ChatService) {
		s.embedder = embedder
	}
}

// WithProvider sets the completion provider
func WithProvider(provider llm.Provider) ChatServiceOption {
	return func(s *ChatService) {
		s.provider = provider
	}
}

// WithCollections sets the law-articles and court-cases collection names
func WithCollections(articles, cases string) ChatServiceOption {
	return func(s *ChatService) {
		s.articlesCollection = articles
		s.casesCollection = cases
	}
}

// WithTopK sets the per-collection result cap
func WithTopK(topK int) ChatServiceOption {
	return func(s *ChatService) {
		s.topK = topK
	}
}

// WithMaxResults sets the overall result cap after merging
func WithMaxResults(maxResults int) ChatServiceOption {
	return func(s *ChatService) {
		s.maxResults = maxResults
	}
}

// WithSearchTimeout sets the shared deadline for the collection searches
func WithSearchTimeout(timeout time.Duration) ChatServiceOption {
	return func(s *ChatService) {
		s.searchTimeout = timeout
	}
}

// NewChatService creates a new chat service
func NewChatService(opts ...ChatServiceOption) *ChatService {
	s := &ChatService{
		articlesCollection: "ksa_legal_docs",
		casesCollection:    "ksa_cases",
		topK:               5,
		maxResults:         5,
		searchTimeout:      15 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrEmptyQuestion    = errors.New("question must not be empty")
	ErrEncodingFailed   = errors.New("failed to encode question")
	ErrRetrievalFailed  = errors.New("failed to retrieve documents")
	ErrCompletionFailed = errors.New("failed to generate answer")
)

const completionTemperature = 0.2

// AskRequest represents a request to answer a legal question
type AskRequest struct {
	Question string
	Filter   models.LawFilter
}

// AskResult represents the outcome of answering a question. The user
// always receives some answer: FallbackServed marks answers substituted
// with static text after a stage failure.
type AskResult struct {
	Answer         string
	Filter         models.LawFilter
	FallbackServed bool
	SourceCount    int
}

// RetrievedDocuments holds the merged retrieval results for one question,
// partitioned by source and ordered by similarity score descending within
// each partition.
type RetrievedDocuments struct {
	Cases    []models.Document
	Articles []models.Document
}

// Total returns the number of documents across both partitions
func (r *RetrievedDocuments) Total() int {
	return len(r.Cases) + len(r.Articles)
}

// Ask answers a legal question. Stage failures never escape: an encoding
// failure short-circuits to fallback text without attempting retrieval, a
// partial retrieval failure degrades to the surviving collection, and a
// completion failure substitutes a static fallback answer.
func (s *ChatService) Ask(ctx context.Context, req AskRequest) (*AskResult, error) {
	if s.embedder == nil {
		return nil, errors.New("embedder not set")
	}
	if s.store == nil {
		return nil, errors.New("vector store not set")
	}
	if s.provider == nil {
		return nil, errors.New("completion provider not set")
	}
	if strings.TrimSpace(req.Question) == "" {
		return nil, ErrEmptyQuestion
	}

	vector, err := s.embedder.Embed(ctx, req.Question)
	if err != nil {
		log.Printf("Warning: %v: %v", ErrEncodingFailed, err)
		return &AskResult{
			Answer:         FallbackAnswer(req.Question),
			Filter:         req.Filter,
			FallbackServed: true,
		}, nil
	}

	docs := s.retrieveDocuments(ctx, vector, req.Filter)

	prompt := buildPrompt(req.Filter, req.Question, docs)

	answer, err := s.provider.Complete(ctx, prompt, completionTemperature)
	if err != nil {
		log.Printf("Warning: %v: %v", ErrCompletionFailed, err)
		return &AskResult{
			Answer:         FallbackAnswer(req.Question),
			Filter:         req.Filter,
			FallbackServed: true,
			SourceCount:    docs.Total(),
		}, nil
	}

	return &AskResult{
		Answer:      answer,
		Filter:      req.Filter,
		SourceCount: docs.Total(),
	}, nil
}

// retrieveDocuments queries both collections for nearest neighbors, applies
// the law filter, merges, sorts and partitions the results. The two
// searches run concurrently under a shared deadline; the merge order stays
// deterministic (articles results before cases results, each in store
// order). A failed collection is logged and skipped; if both fail the
// result is empty partitions, not an error.
func (s *ChatService) retrieveDocuments(ctx context.Context, vector []float64, filter models.LawFilter) *RetrievedDocuments {
	searchCtx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	var (
		wg             sync.WaitGroup
		articleResults []models.Document
		caseResults    []models.Document
		articleErr     error
		caseErr        error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		articleResults, articleErr = s.store.Search(searchCtx, s.articlesCollection, vector, s.topK)
	}()
	go func() {
		defer wg.Done()
		caseResults, caseErr = s.store.Search(searchCtx, s.casesCollection, vector, s.topK)
	}()
	wg.Wait()

	if articleErr != nil {
		log.Printf("Warning: %v from %s: %v", ErrRetrievalFailed, s.articlesCollection, articleErr)
	}
	if caseErr != nil {
		log.Printf("Warning: %v from %s: %v", ErrRetrievalFailed, s.casesCollection, caseErr)
	}

	// The law filter is applied here rather than through the store's native
	// filtering; the payload index required for pre-filtering is not
	// guaranteed to exist on deployed collections.
	merged := make([]models.Document, 0, len(articleResults)+len(caseResults))
	for _, doc := range articleResults {
		if doc.Source == "" {
			doc.Source = models.SourcePDF
		}
		if doc.LawType == "" {
			doc.LawType = "general"
		}
		if filter.Allows(doc.LawType) {
			merged = append(merged, doc)
		}
	}
	for _, doc := range caseResults {
		doc.Source = models.SourceCase
		if doc.LawType == "" {
			doc.LawType = "case_law"
		}
		if filter.Allows(doc.LawType) {
			merged = append(merged, doc)
		}
	}

	// Stable sort keeps equal-score documents in retrieval order
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	if len(merged) > s.maxResults {
		merged = merged[:s.maxResults]
	}

	result := &RetrievedDocuments{}
	for _, doc := range merged {
		if doc.Source == models.SourceCase {
			result.Cases = append(result.Cases, doc)
		} else {
			result.Articles = append(result.Articles, doc)
		}
	}
	return result
}
