package services

import (
	"context"
	"fmt"
	"time"

	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/repositories"
)

// Report range filters.
const (
	FilterToday     = "today"
	FilterThisWeek  = "thisWeek"
	FilterThisMonth = "thisMonth"
)

// DailyBucket aggregates one day of received payments.
type DailyBucket struct {
	TotalAmount int `json:"totalAmount"`
	Count       int `json:"count"`
}

// PaymentsReceivedReport summarises payments created inside a date range.
type PaymentsReceivedReport struct {
	StartDate      time.Time               `json:"startDate"`
	EndDate        time.Time               `json:"endDate"`
	TotalAmount    int                     `json:"totalAmount"`
	TotalPayments  int                     `json:"totalPayments"`
	DailyBreakdown map[string]*DailyBucket `json:"dailyBreakdown"`
}

// PendingUserSummary groups a user's queued proofs.
type PendingUserSummary struct {
	UserName       string                   `json:"userName"`
	UserCardNumber int                      `json:"userCardNumber"`
	TotalAmount    int                      `json:"totalAmount"`
	Count          int                      `json:"count"`
	Details        []*models.PendingPayment `json:"details"`
}

// PendingPaymentsReport summarises the review queue.
type PendingPaymentsReport struct {
	TotalPendingAmount int                   `json:"totalPendingAmount"`
	TotalPendingCount  int                   `json:"totalPendingCount"`
	PendingByUser      []*PendingUserSummary `json:"pendingByUser"`
}

// ReportService produces read-only aggregations for the admin dashboard.
type ReportService struct {
	paymentRepo repositories.PaymentRepository
	pendingRepo repositories.PendingPaymentRepository
	userRepo    repositories.UserRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	paymentRepo repositories.PaymentRepository,
	pendingRepo repositories.PendingPaymentRepository,
	userRepo repositories.UserRepository,
) *ReportService {
	return &ReportService{
		paymentRepo: paymentRepo,
		pendingRepo: pendingRepo,
		userRepo:    userRepo,
	}
}

// PaymentsReceived aggregates payments in the range selected by filter, or in
// [customStart, customEnd) when no filter is given. With neither, the range is
// all time up to now.
func (s *ReportService) PaymentsReceived(ctx context.Context, filter, customStart, customEnd string) (*PaymentsReceivedReport, error) {
	start, end, err := resolveRange(filter, customStart, customEnd, time.Now())
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &PaymentsReceivedReport{
		StartDate:      start,
		EndDate:        end,
		DailyBreakdown: make(map[string]*DailyBucket),
	}
	for _, p := range payments {
		report.TotalAmount += p.Amount
		report.TotalPayments++

		key := p.CreatedAt.Format("2006-01-02")
		bucket, ok := report.DailyBreakdown[key]
		if !ok {
			bucket = &DailyBucket{}
			report.DailyBreakdown[key] = bucket
		}
		bucket.TotalAmount += p.Amount
		bucket.Count++
	}
	return report, nil
}

// PendingSummary aggregates the review queue grouped by user.
func (s *ReportService) PendingSummary(ctx context.Context) (*PendingPaymentsReport, error) {
	pendings, err := s.pendingRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &PendingPaymentsReport{PendingByUser: []*PendingUserSummary{}}
	byUser := make(map[string]*PendingUserSummary)
	for _, p := range pendings {
		report.TotalPendingAmount += p.Amount
		report.TotalPendingCount++

		key := p.UserID.Hex()
		summary, ok := byUser[key]
		if !ok {
			summary = &PendingUserSummary{Details: []*models.PendingPayment{}}
			if user, err := s.userRepo.FindByID(ctx, p.UserID); err == nil {
				summary.UserName = user.Name
				summary.UserCardNumber = user.CardNumber
			}
			byUser[key] = summary
			report.PendingByUser = append(report.PendingByUser, summary)
		}
		summary.TotalAmount += p.Amount
		summary.Count++
		summary.Details = append(summary.Details, p)
	}
	return report, nil
}

// resolveRange turns a named filter or a custom pair of RFC 3339 / date-only
// strings into a half-open [start, end) interval.
func resolveRange(filter, customStart, customEnd string, now time.Time) (time.Time, time.Time, error) {
	switch filter {
	case FilterToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 0, 1), nil
	case FilterThisWeek:
		// Week starts on Monday.
		offset := int(now.Weekday()) - 1
		if offset < 0 {
			offset = 6
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), nil
	case FilterThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), nil
	case "":
		if customStart != "" && customEnd != "" {
			start, err1 := parseDate(customStart)
			end, err2 := parseDate(customEnd)
			if err1 != nil || err2 != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid date format", apperrors.ErrValidation)
			}
			return start, end, nil
		}
		return time.Unix(0, 0), now, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown filter %q", apperrors.ErrValidation, filter)
	}
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
