package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/multicomhq/chitfund-backend/internal/repositories"
	"github.com/multicomhq/chitfund-backend/pkg/token"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context keys set by the auth middleware.
const (
	ctxPrincipalKind = "principalKind"
	ctxUserID        = "userID"
	ctxCardNumber    = "cardNumber"
	ctxAdminID       = "adminID"
	ctxAdminRole     = "adminRole"
)

// Auth verifies the bearer token and resolves the claim against exactly one
// credential store, chosen by the claim's kind. The resolved principal is put
// on the gin context for downstream handlers.
func Auth(tokens *token.Service, userRepo repositories.UserRepository, adminRepo repositories.AdminRepository) gin.HandlerFunc {
	const bearerSchema = "Bearer "

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}
		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must start with Bearer"})
			return
		}

		claims, err := tokens.Verify(authHeader[len(bearerSchema):])
		if err != nil {
			if err == apperrors.ErrTokenExpired {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		switch claims.Kind {
		case token.KindUser:
			id, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			if _, err := userRepo.FindByID(c.Request.Context(), id); err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
				return
			}
			c.Set(ctxPrincipalKind, token.KindUser)
			c.Set(ctxUserID, id)
			c.Set(ctxCardNumber, claims.CardNumber)
		case token.KindAdmin:
			id, err := primitive.ObjectIDFromHex(claims.AdminID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			admin, err := adminRepo.FindByID(c.Request.Context(), id)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
				return
			}
			c.Set(ctxPrincipalKind, token.KindAdmin)
			c.Set(ctxAdminID, id)
			c.Set(ctxAdminRole, admin.Role)
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Next()
	}
}

// RequireAdmin rejects requests whose principal is not an admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if kind, ok := c.Get(ctxPrincipalKind); !ok || kind != token.KindAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user's id, if the principal is
// a user.
func UserIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

// AdminIDFromContext returns the authenticated admin's id, if the principal
// is an admin.
func AdminIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(ctxAdminID)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

// IsAdmin reports whether the request's principal is an admin.
func IsAdmin(c *gin.Context) bool {
	kind, ok := c.Get(ctxPrincipalKind)
	return ok && kind == token.KindAdmin
}
