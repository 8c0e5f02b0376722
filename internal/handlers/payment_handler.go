package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/multicomhq/chitfund-backend/internal/middleware"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentHandler handles ledger endpoints.
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// AddBulk handles POST /api/payments (admin manual multi-week entry).
func (h *PaymentHandler) AddBulk(c *gin.Context) {
	var req models.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId, amount, mode and week are required"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	payments, err := h.paymentService.AddBulk(c.Request.Context(), userID, req.Mode, req.Week, req.Amount, req.ScreenshotURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Payment successfully added",
		"payments": payments,
	})
}

// Delete handles DELETE /api/payments/:id
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	payment, err := h.paymentService.DeleteByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully", "payment": payment})
}

// ListByWeek handles GET /api/payments/week/:week
func (h *PaymentHandler) ListByWeek(c *gin.Context) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week number"})
		return
	}

	payments, err := h.paymentService.ListByWeek(c.Request.Context(), week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// ListDefaulters handles GET /api/payments/week/:week/defaulters
func (h *PaymentHandler) ListDefaulters(c *gin.Context) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week number"})
		return
	}

	defaulters, err := h.paymentService.ListDefaultersForWeek(c.Request.Context(), week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, defaulters)
}

// ListByUser handles GET /api/payments/user/:userId. Users may only view
// their own history; admins may view anyone's.
func (h *PaymentHandler) ListByUser(c *gin.Context) {
	requestedID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if !middleware.IsAdmin(c) {
		callerID, ok := middleware.UserIDFromContext(c)
		if !ok || callerID != requestedID {
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to view other users' payments"})
			return
		}
	}

	payments, err := h.paymentService.ListByUser(c.Request.Context(), requestedID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// ListRecent handles GET /api/payments/recent/:limit
func (h *PaymentHandler) ListRecent(c *gin.Context) {
	limit, err := strconv.Atoi(c.Param("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive number"})
		return
	}

	payments, err := h.paymentService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}
