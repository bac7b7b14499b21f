package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

// KnowledgeSource is the browsable part of the knowledge base
type KnowledgeSource interface {
	Categories() []knowledge.Category
	Category(name string) (knowledge.Category, bool)
	Patterns() []knowledge.Pattern
	Metrics() []knowledge.MetricRange
}

// KnowledgeHandler exposes read-only knowledge tables
type KnowledgeHandler struct {
	kb KnowledgeSource
}

// NewKnowledgeHandler creates a new knowledge handler
func NewKnowledgeHandler(kb KnowledgeSource) *KnowledgeHandler {
	return &KnowledgeHandler{kb: kb}
}

// Categories handles GET /api/knowledge/categories
func (h *KnowledgeHandler) Categories(c *gin.Context) {
	categories := h.kb.Categories()
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// Category handles GET /api/knowledge/categories/:name
func (h *KnowledgeHandler) Category(c *gin.Context) {
	category, ok := h.kb.Category(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// Patterns handles GET /api/knowledge/patterns
func (h *KnowledgeHandler) Patterns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"patterns": h.kb.Patterns()})
}

// Metrics handles GET /api/knowledge/metrics
func (h *KnowledgeHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"metrics": h.kb.Metrics()})
}
