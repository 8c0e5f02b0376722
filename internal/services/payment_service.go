package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/repositories"
	"github.com/multicomhq/chitfund-backend/pkg/objectstore"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentService owns the confirmed-payment ledger. Manual admin entry and
// pending-payment approval both funnel through it, so the multi-week expansion
// rule lives in exactly one place.
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
	schemeRepo  repositories.SchemeRepository
	activity    *ActivityService
	store       objectstore.Store

	// userLocks serializes the read-then-write week allocation per user.
	// The unique (userId, week) index is the backstop for anything that
	// slips past.
	userLocks sync.Map
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	schemeRepo repositories.SchemeRepository,
	activity *ActivityService,
	store objectstore.Store,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		schemeRepo:  schemeRepo,
		activity:    activity,
		store:       store,
	}
}

// SchemeTerms returns the active scheme's per-week unit amount and total week
// count, falling back to the historical defaults when no scheme is configured.
func (s *PaymentService) SchemeTerms(ctx context.Context) (unit, totalWeeks int) {
	unit, totalWeeks = models.DefaultCostPerWeek, models.DefaultTotalWeeks
	scheme, err := s.schemeRepo.FindActive(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[WARN] PaymentService: reading active scheme failed, using defaults: %v", err)
		}
		return unit, totalWeeks
	}
	if scheme.CostPerWeek > 0 {
		unit = scheme.CostPerWeek
	}
	if scheme.TotalWeeks > 0 {
		totalWeeks = scheme.TotalWeeks
	}
	return unit, totalWeeks
}

// AddBulk records totalAmount as consecutive week slots starting at startWeek.
// The amount must be a positive multiple of the per-week unit. Used for manual
// admin entry.
func (s *PaymentService) AddBulk(ctx context.Context, userID primitive.ObjectID, mode string, startWeek, totalAmount int, screenshotURL string) ([]*models.Payment, error) {
	if !models.ValidMode(mode) {
		return nil, fmt.Errorf("%w: unknown payment mode %q", apperrors.ErrValidation, mode)
	}
	unit, totalWeeks := s.SchemeTerms(ctx)
	numWeeks, err := weeksCovered(totalAmount, unit)
	if err != nil {
		return nil, err
	}
	if startWeek < 1 || startWeek+numWeeks-1 > totalWeeks {
		return nil, fmt.Errorf("%w: weeks %d..%d outside schedule 1..%d",
			apperrors.ErrValidation, startWeek, startWeek+numWeeks-1, totalWeeks)
	}

	weeks := make([]int, 0, numWeeks)
	for w := startWeek; w < startWeek+numWeeks; w++ {
		weeks = append(weeks, w)
	}

	unlock := s.lockUser(userID)
	defer unlock()

	payments, err := s.createForWeeks(ctx, userID, mode, unit, weeks, screenshotURL)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &models.ActivityLogEntry{
		ActionType:    models.ActionManual,
		UserID:        userID,
		Amount:        totalAmount,
		Mode:          mode,
		Week:          startWeek,
		Note:          fmt.Sprintf("Admin manually added payment for %d week(s) starting from week %d.", numWeeks, startWeek),
		ScreenshotURL: screenshotURL,
	})

	return payments, nil
}

// AllocateUnpaidWeeks records totalAmount against the smallest unpaid week
// slots, lowest first. Called by the approval flow, which has no explicit
// start week. Fails with CapacityExceeded when fewer unpaid slots remain than
// the amount covers.
func (s *PaymentService) AllocateUnpaidWeeks(ctx context.Context, userID primitive.ObjectID, mode string, totalAmount int, screenshotURL string) ([]*models.Payment, error) {
	unit, totalWeeks := s.SchemeTerms(ctx)
	numWeeks, err := weeksCovered(totalAmount, unit)
	if err != nil {
		return nil, err
	}

	unlock := s.lockUser(userID)
	defer unlock()

	paidWeeks, err := s.paymentRepo.FindWeeksByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	paid := make(map[int]bool, len(paidWeeks))
	for _, w := range paidWeeks {
		paid[w] = true
	}

	weeks := make([]int, 0, numWeeks)
	for w := 1; w <= totalWeeks && len(weeks) < numWeeks; w++ {
		if !paid[w] {
			weeks = append(weeks, w)
		}
	}
	if len(weeks) < numWeeks {
		return nil, apperrors.ErrCapacityExceeded
	}

	payments, err := s.createForWeeks(ctx, userID, mode, unit, weeks, screenshotURL)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &models.ActivityLogEntry{
		ActionType:    models.ActionApprove,
		UserID:        userID,
		Amount:        totalAmount,
		Mode:          mode,
		Week:          weeks[0],
		Note:          fmt.Sprintf("Approved payment for %d week(s) starting from week %d.", numWeeks, weeks[0]),
		ScreenshotURL: screenshotURL,
	})

	return payments, nil
}

// DeleteByID removes a payment, best-effort deletes its stored screenshot,
// and records the deletion.
func (s *PaymentService) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	if s.store.Owns(payment.ScreenshotURL) {
		if err := s.store.Delete(ctx, payment.ScreenshotURL); err != nil {
			log.Printf("[WARN] PaymentService: deleting screenshot for payment %s failed: %v", id.Hex(), err)
		}
	}

	s.activity.Record(ctx, &models.ActivityLogEntry{
		ActionType:    models.ActionDelete,
		UserID:        payment.UserID,
		Amount:        payment.Amount,
		Mode:          payment.Mode,
		Week:          payment.Week,
		Note:          fmt.Sprintf("Deleted week %d payment", payment.Week),
		ScreenshotURL: payment.ScreenshotURL,
	})

	return payment, nil
}

// ListByWeek retrieves all payments for a week slot.
func (s *PaymentService) ListByWeek(ctx context.Context, week int) ([]*models.Payment, error) {
	return s.paymentRepo.FindByWeek(ctx, week)
}

// ListDefaultersForWeek returns every user without a payment for the week.
func (s *PaymentService) ListDefaultersForWeek(ctx context.Context, week int) ([]*models.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByWeek(ctx, week)
	if err != nil {
		return nil, err
	}

	paid := make(map[string]bool, len(payments))
	for _, p := range payments {
		paid[p.UserID.Hex()] = true
	}

	defaulters := make([]*models.User, 0)
	for _, u := range users {
		if !paid[u.ID.Hex()] {
			defaulters = append(defaulters, u)
		}
	}
	return defaulters, nil
}

// ListByUser retrieves a user's full payment history ordered by week.
func (s *PaymentService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Payment, error) {
	return s.paymentRepo.FindByUserID(ctx, userID)
}

// ListRecent retrieves the most recently created payments.
func (s *PaymentService) ListRecent(ctx context.Context, limit int) ([]*models.Payment, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be a positive integer", apperrors.ErrValidation)
	}
	return s.paymentRepo.FindRecent(ctx, limit)
}

func (s *PaymentService) createForWeeks(ctx context.Context, userID primitive.ObjectID, mode string, unit int, weeks []int, screenshotURL string) ([]*models.Payment, error) {
	payments := make([]*models.Payment, 0, len(weeks))
	for _, week := range weeks {
		payments = append(payments, &models.Payment{
			UserID:        userID,
			Week:          week,
			Amount:        unit,
			Mode:          mode,
			ScreenshotURL: screenshotURL,
		})
	}
	if err := s.paymentRepo.CreateMany(ctx, payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *PaymentService) lockUser(userID primitive.ObjectID) func() {
	mu, _ := s.userLocks.LoadOrStore(userID.Hex(), &sync.Mutex{})
	lock := mu.(*sync.Mutex)
	lock.Lock()
	return lock.Unlock
}

// weeksCovered validates that amount is a positive multiple of unit and
// returns how many week slots it covers.
func weeksCovered(amount, unit int) (int, error) {
	if amount <= 0 || amount%unit != 0 {
		return 0, fmt.Errorf("%w: amount must be a positive multiple of %d", apperrors.ErrValidation, unit)
	}
	return amount / unit, nil
}
