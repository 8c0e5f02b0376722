package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multicomhq/chitfund-backend/internal/services"
)

// ReportHandler handles admin reporting endpoints.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// PaymentsReceived handles GET /api/reports/payments-received
func (h *ReportHandler) PaymentsReceived(c *gin.Context) {
	report, err := h.reportService.PaymentsReceived(
		c.Request.Context(),
		c.Query("filter"),
		c.Query("startDate"),
		c.Query("endDate"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// PendingPayments handles GET /api/reports/pending-payments
func (h *ReportHandler) PendingPayments(c *gin.Context) {
	report, err := h.reportService.PendingSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
