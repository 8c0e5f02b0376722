package mongodb

import (
	"context"
	"time"

	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure ActivityLogRepository implements the interface
var _ repositories.ActivityLogRepository = (*ActivityLogRepository)(nil)

// ActivityLogRepository handles MongoDB operations for the audit trail.
// The collection is append-only; there is deliberately no update or delete.
type ActivityLogRepository struct {
	collection *mongo.Collection
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *mongo.Database) *ActivityLogRepository {
	return &ActivityLogRepository{
		collection: db.Collection("activity_logs"),
	}
}

// Create appends an audit entry
func (r *ActivityLogRepository) Create(ctx context.Context, entry *models.ActivityLogEntry) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// FindAll retrieves all entries, newest first
func (r *ActivityLogRepository) FindAll(ctx context.Context) ([]*models.ActivityLogEntry, error) {
	var entries []*models.ActivityLogEntry
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.ActivityLogEntry{}
	}
	return entries, nil
}
