package main

import (
	"context"
	"log"
	"os"

	"lawgpt-backend/embeddings"
	"lawgpt-backend/handlers"
	"lawgpt-backend/llm"
	"lawgpt-backend/service"
	"lawgpt-backend/vectorstore"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	ctx := context.Background()

	// Initialize vector store
	store, err := vectorstore.NewStoreFromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize vector store: %v", err)
	}
	log.Println("Vector store initialized")

	// Initialize embedding client
	embedder, err := embeddings.NewEmbedderFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize embedder: %v", err)
	}

	// Initialize completion provider
	provider, err := llm.NewProviderFromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize completion provider: %v", err)
	}
	log.Printf("Completion provider: %s", provider.Name())

	// Initialize services
	chatService := service.NewChatService(
		service.WithStore(store),
		service.WithEmbedder(embedder),
		service.WithProvider(provider),
	)

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(chatService)

	// Setup Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.POST("/chat", chatHandler.Chat)
		api.GET("/filters", chatHandler.ListFilters)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
