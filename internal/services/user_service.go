package services

import (
	"context"
	"fmt"

	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService handles participant registration and lookup.
type UserService struct {
	userRepo repositories.UserRepository
	activity *ActivityService
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, activity *ActivityService) *UserService {
	return &UserService{
		userRepo: userRepo,
		activity: activity,
	}
}

// Register creates a participant. Card number and phone must both be unused.
func (s *UserService) Register(ctx context.Context, cardNumber int, name, phone, place string) (*models.User, error) {
	if cardNumber <= 0 {
		return nil, fmt.Errorf("%w: card number must be a positive number", apperrors.ErrValidation)
	}
	if name == "" || phone == "" || place == "" {
		return nil, fmt.Errorf("%w: name, phone and place are required", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.FindByCardNumber(ctx, cardNumber); err == nil {
		return nil, fmt.Errorf("%w: card number already registered", apperrors.ErrConflict)
	}
	if _, err := s.userRepo.FindByPhone(ctx, phone); err == nil {
		return nil, fmt.Errorf("%w: phone number already registered", apperrors.ErrConflict)
	}

	user := &models.User{
		CardNumber: cardNumber,
		Name:       name,
		Phone:      phone,
		Place:      place,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &models.ActivityLogEntry{
		ActionType: models.ActionRegister,
		UserID:     user.ID,
		Mode:       models.ModeManual,
		Note:       fmt.Sprintf("User %s (%d) registered", name, cardNumber),
	})

	return user, nil
}

// GetByID retrieves a user by id.
func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// GetAll retrieves every registered user.
func (s *UserService) GetAll(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.FindAll(ctx)
}
