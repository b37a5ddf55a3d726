package main

import (
	"context"
	"log"

	"lawgpt-backend/embeddings"
	"lawgpt-backend/vectorstore"

	"github.com/joho/godotenv"
)

// Recreates the two vector store collections sized to the configured
// embedder. Existing collections are dropped, so run upload-data afterwards.
func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()

	embedder, err := embeddings.NewEmbedderFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize embedder: %v", err)
	}

	store, err := vectorstore.NewStoreFromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize vector store: %v", err)
	}

	dimension := embedder.Dimension()

	for _, collection := range []string{"ksa_legal_docs", "ksa_cases"} {
		log.Printf("🔄 Creating collection %s (dimension %d)...", collection, dimension)
		if err := store.CreateCollection(ctx, collection, dimension); err != nil {
			log.Fatalf("Failed to create collection %s: %v", collection, err)
		}
		log.Printf("✅ Collection %s ready", collection)
	}

	log.Println("\n✅ Collections created successfully!")
}
