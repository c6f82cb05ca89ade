package handlers

import (
	"context"
	"net/http"

	"survey-engine/internal/service"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	Service *service.ResultService
}

func NewResultHandler(s *service.ResultService) *ResultHandler {
	return &ResultHandler{Service: s}
}

// Results computes the category scores for a stored snapshot.
func (h *ResultHandler) Results(c *gin.Context) {
	token, folder, ok := snapshotKey(c)
	if !ok {
		return
	}

	results, err := h.Service.ResultsFor(context.Background(), token, folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to compute results"})
		return
	}
	if results == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "no data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": results})
}
