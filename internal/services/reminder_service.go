package services

import (
	"context"
	"fmt"
	"log"

	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/pkg/smsgateway"
)

// ReminderService notifies defaulters for a week slot over SMS.
type ReminderService struct {
	payments *PaymentService
	gateway  smsgateway.Gateway
}

// NewReminderService creates a new ReminderService
func NewReminderService(payments *PaymentService, gateway smsgateway.Gateway) *ReminderService {
	return &ReminderService{
		payments: payments,
		gateway:  gateway,
	}
}

// ReminderResult reports the outcome of a reminder sweep.
type ReminderResult struct {
	Week       int            `json:"week"`
	Sent       int            `json:"sent"`
	Failed     int            `json:"failed"`
	Defaulters []*models.User `json:"defaulters"`
}

// SendWeekReminders dispatches one reminder per defaulter. A failed dispatch
// is counted and logged, never aborts the sweep.
func (s *ReminderService) SendWeekReminders(ctx context.Context, week int) (*ReminderResult, error) {
	_, totalWeeks := s.payments.SchemeTerms(ctx)
	if week < 1 || week > totalWeeks {
		return nil, fmt.Errorf("%w: week must be between 1 and %d", apperrors.ErrValidation, totalWeeks)
	}

	defaulters, err := s.payments.ListDefaultersForWeek(ctx, week)
	if err != nil {
		return nil, err
	}

	result := &ReminderResult{Week: week, Defaulters: defaulters}
	for _, user := range defaulters {
		if err := s.gateway.SendReminder(ctx, user.Phone, week); err != nil {
			result.Failed++
			log.Printf("[WARN] ReminderService: reminder to %s for week %d failed: %v", user.Phone, week, err)
			continue
		}
		result.Sent++
	}
	return result, nil
}
