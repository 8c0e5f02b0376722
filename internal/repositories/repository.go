package repositories

import (
	"context"
	"time"

	"github.com/multicomhq/chitfund-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByCardNumber(ctx context.Context, cardNumber int) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	FindByCardAndPhone(ctx context.Context, cardNumber int, phone string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	// SetOTP atomically stores the code and its expiry on the user.
	SetOTP(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error
	// ClearOTP atomically unsets both otp fields.
	ClearOTP(ctx context.Context, id primitive.ObjectID) error
}

// AdminRepository defines the interface for admin account operations.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// PaymentRepository defines the interface for confirmed payment operations.
type PaymentRepository interface {
	// CreateMany inserts the given payments; a (userId, week) collision
	// surfaces as apperrors.ErrConflict with nothing else inserted.
	CreateMany(ctx context.Context, payments []*models.Payment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error)
	FindByWeek(ctx context.Context, week int) ([]*models.Payment, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Payment, error)
	FindWeeksByUserID(ctx context.Context, userID primitive.ObjectID) ([]int, error)
	FindRecent(ctx context.Context, limit int) ([]*models.Payment, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Payment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PendingPaymentRepository defines the interface for the review queue.
type PendingPaymentRepository interface {
	Create(ctx context.Context, pending *models.PendingPayment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.PendingPayment, error)
	FindAll(ctx context.Context) ([]*models.PendingPayment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ActivityLogRepository defines the interface for the append-only audit trail.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLogEntry) error
	FindAll(ctx context.Context) ([]*models.ActivityLogEntry, error)
}

// SchemeRepository defines the interface for scheme configuration.
type SchemeRepository interface {
	Create(ctx context.Context, scheme *models.Scheme) error
	FindActive(ctx context.Context) (*models.Scheme, error)
	Update(ctx context.Context, scheme *models.Scheme) error
}
