package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/multicomhq/chitfund-backend/internal/config"
	"github.com/multicomhq/chitfund-backend/internal/handlers"
	"github.com/multicomhq/chitfund-backend/internal/middleware"
	"github.com/multicomhq/chitfund-backend/internal/repositories"
	"github.com/multicomhq/chitfund-backend/pkg/token"
)

// HandlerDependencies collects every handler the router mounts.
type HandlerDependencies struct {
	AuthHandler     *handlers.AuthHandler
	AdminHandler    *handlers.AdminHandler
	UserHandler     *handlers.UserHandler
	PaymentHandler  *handlers.PaymentHandler
	PendingHandler  *handlers.PendingPaymentHandler
	SchemeHandler   *handlers.SchemeHandler
	ActivityHandler *handlers.ActivityHandler
	ReportHandler   *handlers.ReportHandler
	ReminderHandler *handlers.ReminderHandler

	Tokens    *token.Service
	UserRepo  repositories.UserRepository
	AdminRepo repositories.AdminRepository
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(cfg))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/request-otp", deps.AuthHandler.RequestOTP)
			auth.POST("/verify-otp", deps.AuthHandler.VerifyOTP)
		}

		admin := public.Group("/admin")
		{
			admin.POST("/login", deps.AdminHandler.Login)
			admin.POST("/register", deps.AdminHandler.Register)
		}

		public.POST("/users", deps.UserHandler.Register)
	}

	// Protected routes: any authenticated principal
	protected := router.Group("/api")
	protected.Use(middleware.Auth(deps.Tokens, deps.UserRepo, deps.AdminRepo))
	{
		protected.GET("/users/profile", deps.UserHandler.Profile)
		protected.GET("/users/:id", deps.UserHandler.GetByID)
		protected.GET("/scheme", deps.SchemeHandler.GetActive)

		protected.POST("/pending/upload", deps.PendingHandler.Upload)
		protected.GET("/payments/user/:userId", deps.PaymentHandler.ListByUser)
		protected.GET("/payments/week/:week", deps.PaymentHandler.ListByWeek)
		protected.GET("/payments/week/:week/defaulters", deps.PaymentHandler.ListDefaulters)

		// Admin-only routes
		adminOnly := protected.Group("")
		adminOnly.Use(middleware.RequireAdmin())
		{
			adminOnly.GET("/users", deps.UserHandler.GetAll)

			pending := adminOnly.Group("/pending")
			{
				pending.GET("", deps.PendingHandler.List)
				pending.POST("/approve/:id", deps.PendingHandler.Approve)
				pending.DELETE("/reject/:id", deps.PendingHandler.Reject)
			}

			payments := adminOnly.Group("/payments")
			{
				payments.POST("", deps.PaymentHandler.AddBulk)
				payments.DELETE("/:id", deps.PaymentHandler.Delete)
				payments.GET("/recent/:limit", deps.PaymentHandler.ListRecent)
			}

			adminOnly.POST("/scheme", deps.SchemeHandler.Upsert)
			adminOnly.GET("/activity", deps.ActivityHandler.List)

			reports := adminOnly.Group("/reports")
			{
				reports.GET("/payments-received", deps.ReportHandler.PaymentsReceived)
				reports.GET("/pending-payments", deps.ReportHandler.PendingPayments)
			}

			adminOnly.GET("/reminders/send", deps.ReminderHandler.Send)
		}
	}

	return router
}
