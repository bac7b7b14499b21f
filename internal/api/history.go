package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/themobileprof/healthdesk-be/internal/api/middleware"
	"github.com/themobileprof/healthdesk-be/internal/db"
)

// AssessmentStore is the history persistence the handler needs
type AssessmentStore interface {
	ListAssessments(ctx context.Context, userID, kind string, limit int) ([]db.Assessment, error)
	GetAssessment(ctx context.Context, id uuid.UUID, userID string) (*db.Assessment, error)
	DeleteAssessment(ctx context.Context, id uuid.UUID, userID string) error
}

// HistoryHandler serves a user's stored assessments
type HistoryHandler struct {
	store AssessmentStore
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(store AssessmentStore) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// List returns the newest assessments of the authenticated user
// GET /api/history?limit=20&kind=symptoms
func (h *HistoryHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(db.DefaultListLimit)))
	if err != nil || limit <= 0 {
		limit = db.DefaultListLimit
	}
	if limit > db.MaxListLimit {
		limit = db.MaxListLimit
	}

	assessments, err := h.store.ListAssessments(c.Request.Context(), middleware.GetUserID(c), c.Query("kind"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessments": assessments,
		"count":       len(assessments),
	})
}

// Get returns one assessment
// GET /api/history/:id
func (h *HistoryHandler) Get(c *gin.Context) {
	id, ok := assessmentID(c)
	if !ok {
		return
	}

	a, err := h.store.GetAssessment(c.Request.Context(), id, middleware.GetUserID(c))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assessment"})
		return
	}

	c.JSON(http.StatusOK, a)
}

// Delete removes one assessment
// DELETE /api/history/:id
func (h *HistoryHandler) Delete(c *gin.Context) {
	id, ok := assessmentID(c)
	if !ok {
		return
	}

	err := h.store.DeleteAssessment(c.Request.Context(), id, middleware.GetUserID(c))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete assessment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assessment deleted"})
}

func assessmentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment ID"})
		return uuid.Nil, false
	}
	return id, true
}
