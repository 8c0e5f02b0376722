package services

import (
	"context"
	"fmt"
	"log"

	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/repositories"
	"github.com/multicomhq/chitfund-backend/pkg/objectstore"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PendingPaymentService owns the review queue. A submitted proof moves to
// exactly one of two terminal outcomes, approval or rejection, and the row is
// deleted either way.
type PendingPaymentService struct {
	pendingRepo repositories.PendingPaymentRepository
	userRepo    repositories.UserRepository
	payments    *PaymentService
	activity    *ActivityService
	store       objectstore.Store
}

// NewPendingPaymentService creates a new PendingPaymentService
func NewPendingPaymentService(
	pendingRepo repositories.PendingPaymentRepository,
	userRepo repositories.UserRepository,
	payments *PaymentService,
	activity *ActivityService,
	store objectstore.Store,
) *PendingPaymentService {
	return &PendingPaymentService{
		pendingRepo: pendingRepo,
		userRepo:    userRepo,
		payments:    payments,
		activity:    activity,
		store:       store,
	}
}

// Submit queues an uploaded proof for admin review.
func (s *PendingPaymentService) Submit(ctx context.Context, userID primitive.ObjectID, amount int, mode string, week int, screenshotURL string) (*models.PendingPayment, error) {
	if userID.IsZero() || amount <= 0 || screenshotURL == "" {
		return nil, fmt.Errorf("%w: userId, amount and screenshot are required", apperrors.ErrValidation)
	}
	if !models.ValidMode(mode) {
		return nil, fmt.Errorf("%w: unknown payment mode %q", apperrors.ErrValidation, mode)
	}

	pending := &models.PendingPayment{
		UserID:        userID,
		Amount:        amount,
		Mode:          mode,
		ScreenshotURL: screenshotURL,
		Week:          week,
	}
	if err := s.pendingRepo.Create(ctx, pending); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &models.ActivityLogEntry{
		ActionType:    models.ActionUploadForReview,
		UserID:        userID,
		Amount:        amount,
		Mode:          mode,
		Note:          fmt.Sprintf("User uploaded payment for review. Amount: %d, Mode: %s", amount, mode),
		ScreenshotURL: screenshotURL,
	})

	return pending, nil
}

// Approve converts a pending proof into ledger payments at the user's unpaid
// week slots, then removes the pending row. Payment creation and the audit
// entry commit before the row is deleted; a failed delete leaves an orphan
// row, an accepted at-least-once risk rather than a cross-store transaction.
func (s *PendingPaymentService) Approve(ctx context.Context, id primitive.ObjectID) ([]*models.Payment, error) {
	pending, err := s.pendingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.AllocateUnpaidWeeks(ctx, pending.UserID, pending.Mode, pending.Amount, pending.ScreenshotURL)
	if err != nil {
		return nil, err
	}

	if err := s.pendingRepo.Delete(ctx, id); err != nil {
		log.Printf("[WARN] PendingPaymentService: pending row %s not deleted after approval: %v", id.Hex(), err)
	}

	return payments, nil
}

// Reject records the rejection, best-effort deletes the stored proof, and
// removes the pending row. Rejecting an already-dispositioned row fails with
// NotFound.
func (s *PendingPaymentService) Reject(ctx context.Context, id primitive.ObjectID) error {
	pending, err := s.pendingRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	s.activity.Record(ctx, &models.ActivityLogEntry{
		ActionType:    models.ActionReject,
		UserID:        pending.UserID,
		Amount:        pending.Amount,
		Mode:          pending.Mode,
		Note:          "Rejected pending payment.",
		ScreenshotURL: pending.ScreenshotURL,
	})

	if s.store.Owns(pending.ScreenshotURL) {
		if err := s.store.Delete(ctx, pending.ScreenshotURL); err != nil {
			log.Printf("[WARN] PendingPaymentService: deleting rejected screenshot failed: %v", err)
		}
	}

	return s.pendingRepo.Delete(ctx, id)
}

// PendingPaymentView is a pending row enriched with user details for review.
type PendingPaymentView struct {
	*models.PendingPayment
	UserName       string `json:"userName,omitempty"`
	UserCardNumber int    `json:"userCardNumber,omitempty"`
	UserPhone      string `json:"userPhone,omitempty"`
}

// List retrieves the whole review queue with user summaries attached.
func (s *PendingPaymentService) List(ctx context.Context) ([]*PendingPaymentView, error) {
	pendings, err := s.pendingRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*PendingPaymentView, 0, len(pendings))
	for _, pending := range pendings {
		view := &PendingPaymentView{PendingPayment: pending}
		if user, err := s.userRepo.FindByID(ctx, pending.UserID); err == nil {
			view.UserName = user.Name
			view.UserCardNumber = user.CardNumber
			view.UserPhone = user.Phone
		}
		views = append(views, view)
	}
	return views, nil
}
