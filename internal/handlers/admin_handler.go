package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/services"
)

// AdminHandler handles operator authentication endpoints.
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	admin, tok, err := h.adminService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       admin.ID.Hex(),
		"username": admin.Username,
		"role":     admin.Role,
		"token":    tok,
	})
}

// Register handles POST /api/admin/register. Intended for initial setup.
func (h *AdminHandler) Register(c *gin.Context) {
	var req models.AdminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, tok, err := h.adminService.Register(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       admin.ID.Hex(),
		"username": admin.Username,
		"role":     admin.Role,
		"token":    tok,
	})
}
