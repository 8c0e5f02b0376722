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
)

// Compile-time check to ensure PendingPaymentRepository implements the interface
var _ repositories.PendingPaymentRepository = (*PendingPaymentRepository)(nil)

// PendingPaymentRepository handles MongoDB operations for PendingPayment
type PendingPaymentRepository struct {
	collection *mongo.Collection
}

// NewPendingPaymentRepository creates a new PendingPaymentRepository
func NewPendingPaymentRepository(db *mongo.Database) *PendingPaymentRepository {
	return &PendingPaymentRepository{
		collection: db.Collection("pending_payments"),
	}
}

// Create inserts a new pending payment
func (r *PendingPaymentRepository) Create(ctx context.Context, pending *models.PendingPayment) error {
	pending.ID = primitive.NewObjectID()
	pending.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, pending)
	return err
}

// FindByID finds a pending payment by ID
func (r *PendingPaymentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PendingPayment, error) {
	var pending models.PendingPayment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pending)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

// FindAll retrieves every pending payment awaiting review
func (r *PendingPaymentRepository) FindAll(ctx context.Context) ([]*models.PendingPayment, error) {
	var pendings []*models.PendingPayment
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &pendings); err != nil {
		return nil, err
	}
	if pendings == nil {
		pendings = []*models.PendingPayment{}
	}
	return pendings, nil
}

// Delete removes a pending payment by ID
func (r *PendingPaymentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
