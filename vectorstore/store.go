package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"lawgpt-backend/models"
)

// Store is the interface to the vector database. Implementations must be
// safe for concurrent use after construction; nothing is mutated once the
// client handle exists.
type Store interface {
	// CreateCollection drops and recreates a collection sized for vectors
	// of the given dimension.
	CreateCollection(ctx context.Context, collection string, dimension int) error

	// Upsert writes document points into a collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns the topK nearest documents to the query vector,
	// ordered by similarity score descending.
	Search(ctx context.Context, collection string, vector []float64, topK int) ([]models.Document, error)
}

// Point is one embedded document ready for upsert.
type Point struct {
	ID       string
	Vector   []float64
	Document models.Document
}

// StoreType represents the vector store backend type
type StoreType string

const (
	StoreTypeQdrant   StoreType = "qdrant"
	StoreTypePgvector StoreType = "pgvector"
)

// StoreConfig holds configuration for the vector store
type StoreConfig struct {
	Type StoreType

	// Qdrant gRPC address, host:port
	QdrantAddr string

	// pgvector
	DatabaseURL string
}

// NewStore creates a vector store instance based on configuration
func NewStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch cfg.Type {
	case StoreTypeQdrant:
		return NewQdrantStore(cfg)
	case StoreTypePgvector:
		return NewPgvectorStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown vector store type: %s", cfg.Type)
	}
}

// NewStoreFromEnv creates a vector store instance from environment variables
func NewStoreFromEnv(ctx context.Context) (Store, error) {
	storeType := os.Getenv("VECTOR_STORE_TYPE")
	if storeType == "" {
		storeType = "qdrant"
	}

	cfg := StoreConfig{
		Type: StoreType(storeType),
	}

	switch cfg.Type {
	case StoreTypeQdrant:
		cfg.QdrantAddr = os.Getenv("QDRANT_ADDR")
		if cfg.QdrantAddr == "" {
			cfg.QdrantAddr = "localhost:6334"
		}
		return NewQdrantStore(cfg)

	case StoreTypePgvector:
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL environment variable is required for pgvector storage")
		}
		return NewPgvectorStore(ctx, cfg)

	default:
		return nil, fmt.Errorf("unknown vector store type: %s", storeType)
	}
}
