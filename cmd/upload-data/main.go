package main

import (
	"context"
	"log"
	"path"
	"strings"
	"time"

	"lawgpt-backend/embeddings"
	"lawgpt-backend/ingest"
	"lawgpt-backend/models"
	"lawgpt-backend/storage"
	"lawgpt-backend/vectorstore"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const (
	articlesCollection = "ksa_legal_docs"
	casesCollection    = "ksa_cases"
	uploadBatchSize    = 100
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()

	corpus, err := storage.NewStorageFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize corpus storage: %v", err)
	}

	embedder, err := embeddings.NewEmbedderFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize embedder: %v", err)
	}

	store, err := vectorstore.NewStoreFromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize vector store: %v", err)
	}

	keys, err := corpus.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list corpus files: %v", err)
	}
	if len(keys) == 0 {
		log.Fatal("Corpus is empty, nothing to upload")
	}

	log.Printf("📚 Found %d corpus files", len(keys))

	var totalChunks, totalCases int

	for _, key := range keys {
		log.Printf("\n📄 Processing: %s", key)

		docs, collection, err := loadCorpusFile(ctx, corpus, key)
		if err != nil {
			log.Printf("   ❌ Error loading %s: %v", key, err)
			continue
		}
		if len(docs) == 0 {
			log.Printf("   ⏭️  Skipping (no usable content)")
			continue
		}

		log.Printf("   ✓ Prepared %d documents", len(docs))

		if err := uploadDocuments(ctx, embedder, store, collection, docs); err != nil {
			log.Printf("   ❌ Error uploading %s: %v", key, err)
			continue
		}

		if collection == casesCollection {
			totalCases += len(docs)
		} else {
			totalChunks += len(docs)
		}

		log.Printf("   ✅ Uploaded %d documents to %s", len(docs), collection)

		// Rate limiting between files
		time.Sleep(500 * time.Millisecond)
	}

	log.Printf("\n✅ Upload complete: %d article chunks, %d cases", totalChunks, totalCases)
}

// loadCorpusFile parses one corpus file into documents and picks the target
// collection. JSON files hold court case records; everything else is
// treated as extracted law article text.
func loadCorpusFile(ctx context.Context, corpus storage.Storage, key string) ([]models.Document, string, error) {
	f, err := corpus.Open(ctx, key)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	if strings.EqualFold(path.Ext(key), ".json") {
		docs, err := ingest.LoadCases(f)
		return docs, casesCollection, err
	}

	docs, err := ingest.LoadArticles(f, key)
	return docs, articlesCollection, err
}

// uploadDocuments embeds documents in batches and upserts them with fresh
// point IDs
func uploadDocuments(ctx context.Context, embedder embeddings.Embedder, store vectorstore.Store, collection string, docs []models.Document) error {
	for i := 0; i < len(docs); i += uploadBatchSize {
		end := i + uploadBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[i:end]

		texts := make([]string, len(batch))
		for j, doc := range batch {
			texts[j] = doc.Text
		}

		log.Printf("   🔄 Embedding batch %d-%d...", i, end-1)
		vectors, err := embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return err
		}

		points := make([]vectorstore.Point, len(batch))
		for j, doc := range batch {
			points[j] = vectorstore.Point{
				ID:       uuid.New().String(),
				Vector:   vectors[j],
				Document: doc,
			}
		}

		log.Printf("   💾 Upserting %d points...", len(points))
		if err := store.Upsert(ctx, collection, points); err != nil {
			return err
		}

		// Brief sleep to avoid rate limits
		if end < len(docs) {
			time.Sleep(100 * time.Millisecond)
		}
	}

	return nil
}
