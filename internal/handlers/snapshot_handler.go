package handlers

import (
	"context"
	"net/http"
	"time"

	"survey-engine/internal/models"
	"survey-engine/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SnapshotHandler struct {
	Service *service.SnapshotService
}

func NewSnapshotHandler(s *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{Service: s}
}

type saveRequest struct {
	SessionToken  string           `json:"session_token" binding:"required"`
	Questionnaire string           `json:"questionnaire" binding:"required"`
	Answers       models.AnswerSet `json:"answers" binding:"required"`
	Timestamp     time.Time        `json:"timestamp"`
}

// Save upserts the snapshot for (session_token, questionnaire).
func (h *SnapshotHandler) Save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format", "details": err.Error()})
		return
	}
	if _, err := uuid.Parse(req.SessionToken); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "session_token must be a UUID"})
		return
	}
	for id, idx := range req.Answers {
		if idx < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "negative answer index for " + id})
			return
		}
	}

	if err := h.Service.Save(context.Background(), req.SessionToken, req.Questionnaire, req.Answers, req.Timestamp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save answers"})
		return
	}
	c.Set("questionnaire", req.Questionnaire)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Load returns the stored snapshot or 404 when there is none.
func (h *SnapshotHandler) Load(c *gin.Context) {
	token, folder, ok := snapshotKey(c)
	if !ok {
		return
	}

	snap, err := h.Service.Load(context.Background(), token, folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load answers"})
		return
	}
	if snap == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "no data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"answers":   snap.Answers,
		"timestamp": snap.Timestamp,
	}})
}

// Clear deletes the snapshot. 404 means there was nothing to delete, which
// clients treat as already cleared.
func (h *SnapshotHandler) Clear(c *gin.Context) {
	token, folder, ok := snapshotKey(c)
	if !ok {
		return
	}

	existed, err := h.Service.Clear(context.Background(), token, folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to clear answers"})
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "no data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func snapshotKey(c *gin.Context) (token, folder string, ok bool) {
	token = c.Query("session_token")
	folder = c.Query("questionnaire")
	if folder == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "questionnaire is required"})
		return "", "", false
	}
	if _, err := uuid.Parse(token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "session_token must be a UUID"})
		return "", "", false
	}
	return token, folder, true
}
