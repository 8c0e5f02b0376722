package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/multicomhq/chitfund-backend/internal/middleware"
	"github.com/multicomhq/chitfund-backend/internal/services"
	"github.com/multicomhq/chitfund-backend/pkg/objectstore"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxScreenshotBytes caps proof uploads at 5 MB.
const maxScreenshotBytes = 5 << 20

var allowedScreenshotTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var allowedScreenshotExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

// PendingPaymentHandler handles the proof upload and review endpoints.
type PendingPaymentHandler struct {
	pendingService *services.PendingPaymentService
	store          objectstore.Store
}

// NewPendingPaymentHandler creates a new PendingPaymentHandler
func NewPendingPaymentHandler(pendingService *services.PendingPaymentService, store objectstore.Store) *PendingPaymentHandler {
	return &PendingPaymentHandler{
		pendingService: pendingService,
		store:          store,
	}
}

// Upload handles POST /api/pending/upload. The proof image travels as the
// multipart field "screenshot" alongside amount, mode and week form fields.
func (h *PendingPaymentHandler) Upload(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated as a user"})
		return
	}

	amount, err := strconv.Atoi(c.PostForm("amount"))
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive number"})
		return
	}
	mode := c.PostForm("mode")

	// Week is optional; when present it must parse.
	week := 0
	if v := c.PostForm("week"); v != "" {
		week, err = strconv.Atoi(v)
		if err != nil || week < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "week must be a non-negative number"})
			return
		}
	}

	fileHeader, err := c.FormFile("screenshot")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment screenshot is required"})
		return
	}
	if fileHeader.Size > maxScreenshotBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "screenshot exceeds the 5 MB limit"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedScreenshotTypes[contentType] || !allowedScreenshotExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only JPEG, JPG, PNG and WEBP images are allowed"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	screenshotURL, err := h.store.Put(c.Request.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		respondError(c, err)
		return
	}

	pending, err := h.pendingService.Submit(c.Request.Context(), userID, amount, mode, week, screenshotURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Payment uploaded successfully for admin review",
		"pendingPayment": pending,
	})
}

// List handles GET /api/pending
func (h *PendingPaymentHandler) List(c *gin.Context) {
	pendings, err := h.pendingService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pendings)
}

// Approve handles POST /api/pending/approve/:id
func (h *PendingPaymentHandler) Approve(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pending payment id"})
		return
	}

	payments, err := h.pendingService.Approve(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Payment approved",
		"payments": payments,
	})
}

// Reject handles DELETE /api/pending/reject/:id
func (h *PendingPaymentHandler) Reject(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pending payment id"})
		return
	}

	if err := h.pendingService.Reject(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rejected and deleted"})
}
