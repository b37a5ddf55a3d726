package vectorstore

import (
	"context"
	"fmt"
	"log"
	"strings"

	"lawgpt-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgvectorStore implements Store on Postgres with the pgvector extension.
// Logical collections share one table and are distinguished by a collection
// column, since pgvector has no native collection concept.
type PgvectorStore struct {
	db *pgxpool.Pool
}

// NewPgvectorStore creates a new pgvector store instance
func NewPgvectorStore(ctx context.Context, cfg StoreConfig) (*PgvectorStore, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	_, err = pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		log.Printf("Warning: Failed to create pgvector extension: %v", err)
		log.Println("This may be normal if extension is already installed or requires superuser privileges")
	}

	return &PgvectorStore{db: pool}, nil
}

// Close releases the underlying connection pool
func (s *PgvectorStore) Close() {
	s.db.Close()
}

// CreateCollection creates the backing table if needed and clears any
// previously uploaded rows for this collection
func (s *PgvectorStore) CreateCollection(ctx context.Context, collection string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid embedding dimension: %d", dimension)
	}

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS legal_documents (
			id UUID PRIMARY KEY,
			collection TEXT NOT NULL,
			title TEXT,
			body TEXT NOT NULL,
			source TEXT NOT NULL,
			law_type TEXT NOT NULL,
			filename TEXT,
			chunk_index INT NOT NULL DEFAULT 0,
			embedding vector(%d) NOT NULL
		)`, dimension)

	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create legal_documents table: %w", err)
	}

	if _, err := s.db.Exec(ctx, "DELETE FROM legal_documents WHERE collection = $1", collection); err != nil {
		return fmt.Errorf("failed to clear collection %s: %w", collection, err)
	}

	return nil
}

// Upsert writes document points into a collection
func (s *PgvectorStore) Upsert(ctx context.Context, collection string, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO legal_documents (
			id, collection, title, body, source, law_type, filename, chunk_index, embedding
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::vector)
		ON CONFLICT (id) DO UPDATE SET
			collection = EXCLUDED.collection,
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			source = EXCLUDED.source,
			law_type = EXCLUDED.law_type,
			filename = EXCLUDED.filename,
			chunk_index = EXCLUDED.chunk_index,
			embedding = EXCLUDED.embedding`

	for _, p := range points {
		_, err = tx.Exec(ctx, query,
			p.ID, collection, p.Document.Title, p.Document.Text, p.Document.Source,
			p.Document.LawType, p.Document.Filename, p.Document.ChunkIndex,
			formatVector(p.Vector),
		)
		if err != nil {
			return fmt.Errorf("failed to insert document %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Search returns the topK nearest documents to the query vector. Cosine
// distance from pgvector is converted to a similarity score so ordering
// semantics match the Qdrant backend (higher = more relevant).
func (s *PgvectorStore) Search(ctx context.Context, collection string, vector []float64, topK int) ([]models.Document, error) {
	if topK <= 0 {
		topK = 5
	}

	vectorStr := formatVector(vector)

	query := `
		SELECT
			title, body, source, law_type, filename, chunk_index,
			1 - (embedding <=> $2::vector) AS score
		FROM legal_documents
		WHERE collection = $1
		ORDER BY embedding <=> $2::vector
		LIMIT $3`

	rows, err := s.db.Query(ctx, query, collection, vectorStr, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query legal documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.Title,
			&doc.Text,
			&doc.Source,
			&doc.LawType,
			&doc.Filename,
			&doc.ChunkIndex,
			&doc.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan legal document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating legal documents: %w", err)
	}

	return docs, nil
}

// formatVector formats an embedding vector as a string for pgx
func formatVector(embedding []float64) string {
	if len(embedding) == 0 {
		return "[]"
	}
	var parts []string
	for _, v := range embedding {
		parts = append(parts, fmt.Sprintf("%.6f", v))
	}
	return "[" + strings.Join(parts, ",") + "]"
}
