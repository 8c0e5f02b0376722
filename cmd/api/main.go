package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/multicomhq/chitfund-backend/api/routes"
	"github.com/multicomhq/chitfund-backend/internal/config"
	"github.com/multicomhq/chitfund-backend/internal/handlers"
	mongorepo "github.com/multicomhq/chitfund-backend/internal/repositories/mongodb"
	"github.com/multicomhq/chitfund-backend/internal/services"
	"github.com/multicomhq/chitfund-backend/pkg/mongodb"
	"github.com/multicomhq/chitfund-backend/pkg/objectstore"
	"github.com/multicomhq/chitfund-backend/pkg/smsgateway"
	"github.com/multicomhq/chitfund-backend/pkg/token"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	userRepo := mongorepo.NewUserRepository(db)
	adminRepo := mongorepo.NewAdminRepository(db)
	paymentRepo := mongorepo.NewPaymentRepository(db)
	pendingRepo := mongorepo.NewPendingPaymentRepository(db)
	activityRepo := mongorepo.NewActivityLogRepository(db)
	schemeRepo := mongorepo.NewSchemeRepository(db)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelIndex()
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	if err := adminRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create admin indexes: %v", err)
	}
	if err := paymentRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create payment indexes: %v", err)
	}

	// Outbound dependencies
	var gateway smsgateway.Gateway
	if cfg.SMS.MockGateway || cfg.SMS.TwoFactorAPIKey == "" {
		log.Println("SMS gateway running in mock mode")
		gateway = smsgateway.NewMockGateway()
	} else {
		gateway = smsgateway.NewTwoFactorGateway(
			cfg.SMS.TwoFactorBaseURL,
			cfg.SMS.TwoFactorAPIKey,
			time.Duration(cfg.SMS.TimeoutSeconds)*time.Second,
		)
	}

	store, err := objectstore.NewS3Store(context.Background(), objectstore.S3Options{
		Region:          cfg.S3.Region,
		Bucket:          cfg.S3.Bucket,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		BaseEndpoint:    cfg.S3.BaseEndpoint,
	})
	if err != nil {
		log.Fatalf("Failed to initialise object store: %v", err)
	}

	tokens, err := token.NewService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)
	if err != nil {
		log.Fatalf("Failed to initialise token service: %v", err)
	}

	// Services
	activityService := services.NewActivityService(activityRepo, userRepo)
	otpService := services.NewOTPService(userRepo, gateway, time.Duration(cfg.OTP.ExpiryMinutes)*time.Minute)
	userService := services.NewUserService(userRepo, activityService)
	adminService := services.NewAdminService(adminRepo, tokens)
	schemeService := services.NewSchemeService(schemeRepo)
	paymentService := services.NewPaymentService(paymentRepo, userRepo, schemeRepo, activityService, store)
	pendingService := services.NewPendingPaymentService(pendingRepo, userRepo, paymentService, activityService, store)
	reportService := services.NewReportService(paymentRepo, pendingRepo, userRepo)
	reminderService := services.NewReminderService(paymentService, gateway)

	deps := routes.HandlerDependencies{
		AuthHandler:     handlers.NewAuthHandler(otpService, tokens),
		AdminHandler:    handlers.NewAdminHandler(adminService),
		UserHandler:     handlers.NewUserHandler(userService),
		PaymentHandler:  handlers.NewPaymentHandler(paymentService),
		PendingHandler:  handlers.NewPendingPaymentHandler(pendingService, store),
		SchemeHandler:   handlers.NewSchemeHandler(schemeService),
		ActivityHandler: handlers.NewActivityHandler(activityService),
		ReportHandler:   handlers.NewReportHandler(reportService),
		ReminderHandler: handlers.NewReminderHandler(reminderService),

		Tokens:    tokens,
		UserRepo:  userRepo,
		AdminRepo: adminRepo,
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
