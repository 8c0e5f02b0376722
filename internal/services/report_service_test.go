package services

import (
	"context"
	"testing"
	"time"

	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveRangeFilters(t *testing.T) {
	// A Wednesday.
	now := time.Date(2024, time.March, 13, 15, 30, 0, 0, time.UTC)

	start, end, err := resolveRange(FilterToday, "", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC), end)

	start, end, err = resolveRange(FilterThisWeek, "", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.March, 18, 0, 0, 0, 0, time.UTC), end)

	start, end, err = resolveRange(FilterThisMonth, "", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestResolveRangeSundayBelongsToCurrentWeek(t *testing.T) {
	sunday := time.Date(2024, time.March, 17, 9, 0, 0, 0, time.UTC)
	start, _, err := resolveRange(FilterThisWeek, "", "", sunday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), start)
}

func TestResolveRangeCustomDates(t *testing.T) {
	now := time.Now()

	start, end, err := resolveRange("", "2024-01-01", "2024-02-01", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, err = resolveRange("", "yesterday", "today", now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, err = resolveRange("lastYear", "", "", now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPaymentsReceivedAggregates(t *testing.T) {
	userRepo := newFakeUserRepo()
	paymentRepo := newFakePaymentRepo()
	svc := NewReportService(paymentRepo, newFakePendingRepo(), userRepo)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	require.NoError(t, paymentRepo.CreateMany(ctx, []*models.Payment{
		{UserID: userID, Week: 1, Amount: 100, Mode: models.ModeManual},
		{UserID: userID, Week: 2, Amount: 100, Mode: models.ModeManual},
	}))

	report, err := svc.PaymentsReceived(ctx, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, 200, report.TotalAmount)
	assert.Equal(t, 2, report.TotalPayments)

	key := time.Now().Format("2006-01-02")
	require.Contains(t, report.DailyBreakdown, key)
	assert.Equal(t, 200, report.DailyBreakdown[key].TotalAmount)
	assert.Equal(t, 2, report.DailyBreakdown[key].Count)
}

func TestPendingSummaryGroupsByUser(t *testing.T) {
	alice := &models.User{CardNumber: 1, Name: "Alice", Phone: "9000000021"}
	bob := &models.User{CardNumber: 2, Name: "Bob", Phone: "9000000022"}
	userRepo := newFakeUserRepo(alice, bob)
	pendingRepo := newFakePendingRepo()
	svc := NewReportService(newFakePaymentRepo(), pendingRepo, userRepo)
	ctx := context.Background()

	for _, p := range []*models.PendingPayment{
		{UserID: alice.ID, Amount: 100, Mode: models.ModeUPI, ScreenshotURL: "a1"},
		{UserID: alice.ID, Amount: 200, Mode: models.ModeUPI, ScreenshotURL: "a2"},
		{UserID: bob.ID, Amount: 300, Mode: models.ModeOnline, ScreenshotURL: "b1"},
	} {
		require.NoError(t, pendingRepo.Create(ctx, p))
	}

	report, err := svc.PendingSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 600, report.TotalPendingAmount)
	assert.Equal(t, 3, report.TotalPendingCount)
	require.Len(t, report.PendingByUser, 2)

	byName := make(map[string]*PendingUserSummary)
	for _, s := range report.PendingByUser {
		byName[s.UserName] = s
	}
	require.Contains(t, byName, "Alice")
	require.Contains(t, byName, "Bob")
	assert.Equal(t, 300, byName["Alice"].TotalAmount)
	assert.Equal(t, 2, byName["Alice"].Count)
	assert.Equal(t, 300, byName["Bob"].TotalAmount)
	assert.Equal(t, 1, byName["Bob"].Count)
}
