package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/services"
	"github.com/multicomhq/chitfund-backend/pkg/token"
)

// AuthHandler handles the OTP login flow.
type AuthHandler struct {
	otpService *services.OTPService
	tokens     *token.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(otpService *services.OTPService, tokens *token.Service) *AuthHandler {
	return &AuthHandler{
		otpService: otpService,
		tokens:     tokens,
	}
}

// RequestOTP handles POST /api/auth/request-otp
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req models.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card number and phone number are required"})
		return
	}

	if err := h.otpService.RequestCode(c.Request.Context(), req.CardNumber, req.Phone); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully to your registered phone number"})
}

// VerifyOTP handles POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card number, phone number and OTP are required"})
		return
	}

	user, err := h.otpService.VerifyCode(c.Request.Context(), req.CardNumber, req.Phone, req.SubmittedOTP)
	if err != nil {
		respondError(c, err)
		return
	}

	tok, err := h.tokens.IssueUserToken(user.ID.Hex(), user.CardNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP verified successfully",
		"token":   tok,
		"user": gin.H{
			"id":         user.ID.Hex(),
			"name":       user.Name,
			"cardNumber": user.CardNumber,
		},
	})
}
