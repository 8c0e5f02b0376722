package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multicomhq/chitfund-backend/internal/services"
)

// ActivityHandler handles audit trail endpoints.
type ActivityHandler struct {
	activityService *services.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// List handles GET /api/activity
func (h *ActivityHandler) List(c *gin.Context) {
	entries, err := h.activityService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
