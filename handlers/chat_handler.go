package handlers

import (
	"errors"
	"net/http"

	"lawgpt-backend/models"
	"lawgpt-backend/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles HTTP requests for the legal chat endpoints
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ChatRequest represents the request body for asking a question
type ChatRequest struct {
	Question string `json:"question" binding:"required"`
	Filter   string `json:"filter"`
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	filter, err := models.ParseLawFilter(req.Filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILTER",
				"message": err.Error(),
			},
		})
		return
	}

	result, err := h.chatService.Ask(c.Request.Context(), service.AskRequest{
		Question: req.Question,
		Filter:   filter,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuestion) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_REQUEST",
					"message": err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CHAT_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"answer":          result.Answer,
			"filter":          result.Filter.String(),
			"fallback_served": result.FallbackServed,
			"source_count":    result.SourceCount,
		},
	})
}

// ListFilters handles GET /api/filters
func (h *ChatHandler) ListFilters(c *gin.Context) {
	filters := models.AvailableFilters()

	items := make([]gin.H, 0, len(filters))
	for _, f := range filters {
		items = append(items, gin.H{
			"name":        f.String(),
			"description": f.Description(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"filters": items,
		},
	})
}
