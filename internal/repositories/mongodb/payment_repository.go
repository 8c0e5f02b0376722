package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure PaymentRepository implements the interface
var _ repositories.PaymentRepository = (*PaymentRepository)(nil)

// PaymentRepository handles MongoDB operations for Payment
type PaymentRepository struct {
	collection *mongo.Collection
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{
		collection: db.Collection("payments"),
	}
}

// EnsureIndexes creates the compound unique index on (userId, week). The index
// is the conditional-write guard against two writers filling the same slot.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "week", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreateMany inserts the given payments ordered, so a duplicate (userId, week)
// aborts the batch at the colliding document.
func (r *PaymentRepository) CreateMany(ctx context.Context, payments []*models.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(payments))
	for _, p := range payments {
		p.ID = primitive.NewObjectID()
		p.CreatedAt = now
		p.UpdatedAt = now
		docs = append(docs, p)
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrConflict
	}
	return err
}

// FindByID finds a payment by ID
func (r *PaymentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	var payment models.Payment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindByWeek retrieves all payments for a week slot
func (r *PaymentRepository) FindByWeek(ctx context.Context, week int) ([]*models.Payment, error) {
	return r.findMany(ctx, bson.M{"week": week}, nil)
}

// FindByUserID retrieves a user's payments ordered by week
func (r *PaymentRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "week", Value: 1}})
	return r.findMany(ctx, bson.M{"userId": userID}, opts)
}

// FindWeeksByUserID returns only the week numbers already paid by a user
func (r *PaymentRepository) FindWeeksByUserID(ctx context.Context, userID primitive.ObjectID) ([]int, error) {
	opts := options.Find().
		SetProjection(bson.M{"week": 1}).
		SetSort(bson.D{{Key: "week", Value: 1}})
	payments, err := r.findMany(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	weeks := make([]int, 0, len(payments))
	for _, p := range payments {
		weeks = append(weeks, p.Week)
	}
	return weeks, nil
}

// FindRecent retrieves the most recently created payments
func (r *PaymentRepository) FindRecent(ctx context.Context, limit int) ([]*models.Payment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	return r.findMany(ctx, bson.M{}, opts)
}

// FindByDateRange retrieves payments created in [start, end)
func (r *PaymentRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Payment, error) {
	filter := bson.M{"createdAt": bson.M{"$gte": start, "$lt": end}}
	return r.findMany(ctx, filter, nil)
}

// Delete removes a payment by ID
func (r *PaymentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PaymentRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Payment, error) {
	var payments []*models.Payment
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []*models.Payment{}
	}
	return payments, nil
}
