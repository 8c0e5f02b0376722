package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/services"
)

// SchemeHandler handles scheme configuration endpoints.
type SchemeHandler struct {
	schemeService *services.SchemeService
}

// NewSchemeHandler creates a new SchemeHandler
func NewSchemeHandler(schemeService *services.SchemeService) *SchemeHandler {
	return &SchemeHandler{schemeService: schemeService}
}

// Upsert handles POST /api/scheme
func (h *SchemeHandler) Upsert(c *gin.Context) {
	var req models.UpsertSchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scheme, err := h.schemeService.Upsert(c.Request.Context(), req.Title, req.Prize, req.TotalWeeks, req.CostPerWeek)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Scheme saved", "scheme": scheme})
}

// GetActive handles GET /api/scheme
func (h *SchemeHandler) GetActive(c *gin.Context) {
	scheme, err := h.schemeService.Active(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scheme)
}
