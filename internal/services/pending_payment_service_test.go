package services

import (
	"context"
	"testing"

	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type pendingFixture struct {
	svc         *PendingPaymentService
	payments    *PaymentService
	pendingRepo *fakePendingRepo
	paymentRepo *fakePaymentRepo
	activity    *fakeActivityRepo
	store       *fakeStore
	user        *models.User
}

func newPendingFixture(t *testing.T, scheme *models.Scheme) *pendingFixture {
	t.Helper()
	user := &models.User{CardNumber: 11, Name: "Lakshmi", Phone: "9000000011"}
	userRepo := newFakeUserRepo(user)
	paymentRepo := newFakePaymentRepo()
	pendingRepo := newFakePendingRepo()
	activityRepo := newFakeActivityRepo()
	store := newFakeStore()
	activity := NewActivityService(activityRepo, userRepo)
	payments := NewPaymentService(paymentRepo, userRepo, newFakeSchemeRepo(scheme), activity, store)
	svc := NewPendingPaymentService(pendingRepo, userRepo, payments, activity, store)
	return &pendingFixture{
		svc:         svc,
		payments:    payments,
		pendingRepo: pendingRepo,
		paymentRepo: paymentRepo,
		activity:    activityRepo,
		store:       store,
		user:        user,
	}
}

func TestSubmitQueuesProofAndLogs(t *testing.T) {
	f := newPendingFixture(t, nil)
	ctx := context.Background()

	pending, err := f.svc.Submit(ctx, f.user.ID, 200, models.ModeUPI, 0, fakeStorePrefix+"proof.png")
	require.NoError(t, err)
	assert.False(t, pending.ID.IsZero())

	queued, err := f.pendingRepo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, []string{models.ActionUploadForReview}, f.activity.actions())
}

func TestSubmitValidation(t *testing.T) {
	f := newPendingFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, f.user.ID, 0, models.ModeUPI, 0, "url")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Submit(ctx, f.user.ID, 100, models.ModeUPI, 0, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Submit(ctx, f.user.ID, 100, "cash", 0, "url")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestApproveAllocatesGapsAndDeletesRow(t *testing.T) {
	f := newPendingFixture(t, nil)
	ctx := context.Background()

	for _, w := range []int{1, 2, 4} {
		_, err := f.payments.AddBulk(ctx, f.user.ID, models.ModeManual, w, 100, "")
		require.NoError(t, err)
	}

	pending, err := f.svc.Submit(ctx, f.user.ID, 200, models.ModeUPI, 0, fakeStorePrefix+"proof.png")
	require.NoError(t, err)

	payments, err := f.svc.Approve(ctx, pending.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, 3, payments[0].Week)
	assert.Equal(t, 5, payments[1].Week)

	_, err = f.pendingRepo.FindByID(ctx, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestApproveCapacityExceededKeepsRow(t *testing.T) {
	f := newPendingFixture(t, &models.Scheme{Title: "Short", Prize: "TV", CostPerWeek: 100, TotalWeeks: 2})
	ctx := context.Background()

	_, err := f.payments.AddBulk(ctx, f.user.ID, models.ModeManual, 1, 100, "")
	require.NoError(t, err)

	pending, err := f.svc.Submit(ctx, f.user.ID, 200, models.ModeUPI, 0, fakeStorePrefix+"proof.png")
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	// The proof stays queued so the admin can resolve it manually.
	_, err = f.pendingRepo.FindByID(ctx, pending.ID)
	assert.NoError(t, err)
}

func TestApproveUnknownRow(t *testing.T) {
	f := newPendingFixture(t, nil)
	_, err := f.svc.Approve(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRejectDeletesProofAndRowOnce(t *testing.T) {
	f := newPendingFixture(t, nil)
	ctx := context.Background()

	url := fakeStorePrefix + "blurry.png"
	pending, err := f.svc.Submit(ctx, f.user.ID, 100, models.ModeUPI, 0, url)
	require.NoError(t, err)

	require.NoError(t, f.svc.Reject(ctx, pending.ID))
	assert.Contains(t, f.store.deleted, url)
	assert.Equal(t, []string{models.ActionUploadForReview, models.ActionReject}, f.activity.actions())

	// Second disposition of the same row.
	err = f.svc.Reject(ctx, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListAttachesUserSummary(t *testing.T) {
	f := newPendingFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, f.user.ID, 100, models.ModeUPI, 0, fakeStorePrefix+"proof.png")
	require.NoError(t, err)

	views, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Lakshmi", views[0].UserName)
	assert.Equal(t, 11, views[0].UserCardNumber)
	assert.Equal(t, "9000000011", views[0].UserPhone)
}
