package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User

	setOTPErr   error
	clearOTPErr error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.CardNumber == user.CardNumber || u.Phone == user.Phone {
			return apperrors.ErrConflict
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.RegisteredAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByCardNumber(ctx context.Context, cardNumber int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.CardNumber == cardNumber {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByCardAndPhone(ctx context.Context, cardNumber int, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.CardNumber == cardNumber && u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CardNumber < out[j].CardNumber })
	return out, nil
}

func (r *fakeUserRepo) SetOTP(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error {
	if r.setOTPErr != nil {
		return r.setOTPErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.OTP = code
	u.OTPExpiresAt = &expiresAt
	return nil
}

func (r *fakeUserRepo) ClearOTP(ctx context.Context, id primitive.ObjectID) error {
	if r.clearOTPErr != nil {
		return r.clearOTPErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.OTP = ""
	u.OTPExpiresAt = nil
	return nil
}

// fakePaymentRepo is an in-memory PaymentRepository with the same
// (userId, week) uniqueness guarantee as the real collection.
type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{}
}

func (r *fakePaymentRepo) CreateMany(ctx context.Context, payments []*models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	taken := make(map[string]bool, len(r.payments))
	for _, p := range r.payments {
		taken[p.UserID.Hex()+"/"+fmt.Sprint(p.Week)] = true
	}
	for _, p := range payments {
		if taken[p.UserID.Hex()+"/"+fmt.Sprint(p.Week)] {
			return apperrors.ErrConflict
		}
	}
	now := time.Now()
	for _, p := range payments {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		p.CreatedAt = now
		p.UpdatedAt = now
		cp := *p
		r.payments = append(r.payments, &cp)
	}
	return nil
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakePaymentRepo) FindByWeek(ctx context.Context, week int) ([]*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Payment, 0)
	for _, p := range r.payments {
		if p.Week == week {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Payment, 0)
	for _, p := range r.payments {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out, nil
}

func (r *fakePaymentRepo) FindWeeksByUserID(ctx context.Context, userID primitive.ObjectID) ([]int, error) {
	payments, _ := r.FindByUserID(ctx, userID)
	weeks := make([]int, 0, len(payments))
	for _, p := range payments {
		weeks = append(weeks, p.Week)
	}
	return weeks, nil
}

func (r *fakePaymentRepo) FindRecent(ctx context.Context, limit int) ([]*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.payments)
	out := make([]*models.Payment, 0, limit)
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		cp := *r.payments[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePaymentRepo) FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Payment, 0)
	for _, p := range r.payments {
		if !p.CreatedAt.Before(start) && p.CreatedAt.Before(end) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.payments {
		if p.ID == id {
			r.payments = append(r.payments[:i], r.payments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// fakePendingRepo is an in-memory PendingPaymentRepository.
type fakePendingRepo struct {
	mu       sync.Mutex
	pendings map[primitive.ObjectID]*models.PendingPayment
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{pendings: make(map[primitive.ObjectID]*models.PendingPayment)}
}

func (r *fakePendingRepo) Create(ctx context.Context, pending *models.PendingPayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pending.ID.IsZero() {
		pending.ID = primitive.NewObjectID()
	}
	pending.CreatedAt = time.Now()
	cp := *pending
	r.pendings[pending.ID] = &cp
	return nil
}

func (r *fakePendingRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PendingPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pendings[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakePendingRepo) FindAll(ctx context.Context) ([]*models.PendingPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.PendingPayment, 0, len(r.pendings))
	for _, p := range r.pendings {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePendingRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pendings[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.pendings, id)
	return nil
}

// fakeActivityRepo is an in-memory ActivityLogRepository.
type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []*models.ActivityLogEntry
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (r *fakeActivityRepo) Create(ctx context.Context, entry *models.ActivityLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.CreatedAt = time.Now()
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeActivityRepo) FindAll(ctx context.Context) ([]*models.ActivityLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ActivityLogEntry, len(r.entries))
	for i, e := range r.entries {
		cp := *e
		out[len(r.entries)-1-i] = &cp
	}
	return out, nil
}

func (r *fakeActivityRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.ActionType
	}
	return out
}

// fakeSchemeRepo is an in-memory SchemeRepository. A nil active scheme
// reproduces the empty-collection case.
type fakeSchemeRepo struct {
	mu     sync.Mutex
	active *models.Scheme
}

func newFakeSchemeRepo(active *models.Scheme) *fakeSchemeRepo {
	if active != nil && active.ID.IsZero() {
		active.ID = primitive.NewObjectID()
		active.IsActive = true
	}
	return &fakeSchemeRepo{active: active}
}

func (r *fakeSchemeRepo) Create(ctx context.Context, scheme *models.Scheme) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if scheme.ID.IsZero() {
		scheme.ID = primitive.NewObjectID()
	}
	scheme.CreatedAt = time.Now()
	cp := *scheme
	r.active = &cp
	return nil
}

func (r *fakeSchemeRepo) FindActive(ctx context.Context) (*models.Scheme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return nil, apperrors.ErrNotFound
	}
	cp := *r.active
	return &cp, nil
}

func (r *fakeSchemeRepo) Update(ctx context.Context, scheme *models.Scheme) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil || r.active.ID != scheme.ID {
		return apperrors.ErrNotFound
	}
	cp := *scheme
	r.active = &cp
	return nil
}

// fakeGateway records dispatched messages and can be told to fail.
type fakeGateway struct {
	mu       sync.Mutex
	sent     []sentMessage
	failWith error
}

type sentMessage struct {
	phone string
	code  string
}

func (g *fakeGateway) SendOTP(ctx context.Context, phone, code string) error {
	if g.failWith != nil {
		return g.failWith
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, sentMessage{phone: phone, code: code})
	return nil
}

func (g *fakeGateway) SendReminder(ctx context.Context, phone string, week int) error {
	if g.failWith != nil {
		return g.failWith
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, sentMessage{phone: phone, code: fmt.Sprint(week)})
	return nil
}

func (g *fakeGateway) sentCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sent)
}

// fakeStore is an in-memory objectstore.Store keyed by URL.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string]bool
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string]bool)}
}

const fakeStorePrefix = "https://proofs.test/"

func (s *fakeStore) Put(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	url := fakeStorePrefix + filename
	s.objects[url] = true
	return url, nil
}

func (s *fakeStore) Delete(ctx context.Context, objectURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectURL)
	s.deleted = append(s.deleted, objectURL)
	return nil
}

func (s *fakeStore) Owns(objectURL string) bool {
	return strings.HasPrefix(objectURL, fakeStorePrefix)
}
