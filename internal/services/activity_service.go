package services

import (
	"context"
	"log"

	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/repositories"
)

// ActivityService appends audit entries for state transitions. Log writes are
// best-effort: a failure must never block the transition that triggered it.
type ActivityService struct {
	logRepo  repositories.ActivityLogRepository
	userRepo repositories.UserRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(logRepo repositories.ActivityLogRepository, userRepo repositories.UserRepository) *ActivityService {
	return &ActivityService{
		logRepo:  logRepo,
		userRepo: userRepo,
	}
}

// Record appends an entry, swallowing failures with a warning.
func (s *ActivityService) Record(ctx context.Context, entry *models.ActivityLogEntry) {
	if err := s.logRepo.Create(ctx, entry); err != nil {
		log.Printf("[WARN] ActivityService: logging %s failed: %v", entry.ActionType, err)
	}
}

// ActivityLogView is an entry enriched with user details for display.
type ActivityLogView struct {
	*models.ActivityLogEntry
	UserName       string `json:"userName,omitempty"`
	UserCardNumber int    `json:"userCardNumber,omitempty"`
}

// List retrieves all entries newest first, with user name and card number
// attached where the user still exists.
func (s *ActivityService) List(ctx context.Context) ([]*ActivityLogView, error) {
	entries, err := s.logRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*ActivityLogView, 0, len(entries))
	cache := make(map[string]*models.User)
	for _, entry := range entries {
		view := &ActivityLogView{ActivityLogEntry: entry}
		if !entry.UserID.IsZero() {
			key := entry.UserID.Hex()
			user, ok := cache[key]
			if !ok {
				user, _ = s.userRepo.FindByID(ctx, entry.UserID)
				cache[key] = user
			}
			if user != nil {
				view.UserName = user.Name
				view.UserCardNumber = user.CardNumber
			}
		}
		views = append(views, view)
	}
	return views, nil
}
