package main

import (
	"context"
	"log"
	"os"

	"lawgpt-backend/vectorstore"

	"github.com/gin-gonic/gin"
)

// Minimal bootstrap used for connectivity checks during deployment. The
// full server lives in cmd/server.
func main() {
	ctx := context.Background()

	// Verify vector store connectivity
	_, err := vectorstore.NewStoreFromEnv(ctx)
	if err != nil {
		log.Fatal("Failed to initialize vector store:", err)
	}
	log.Println("Vector store connection established")

	// Setup Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

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
