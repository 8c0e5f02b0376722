package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/multicomhq/chitfund-backend/internal/services"
)

// ReminderHandler handles defaulter reminder endpoints.
type ReminderHandler struct {
	reminderService *services.ReminderService
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(reminderService *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// Send handles GET /api/reminders/send?week=N
func (h *ReminderHandler) Send(c *gin.Context) {
	week, err := strconv.Atoi(c.Query("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week number"})
		return
	}

	result, err := h.reminderService.SendWeekReminders(c.Request.Context(), week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Reminders processed",
		"week":       result.Week,
		"sent":       result.Sent,
		"failed":     result.Failed,
		"defaulters": result.Defaulters,
	})
}
