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

// Compile-time check to ensure SchemeRepository implements the interface
var _ repositories.SchemeRepository = (*SchemeRepository)(nil)

// SchemeRepository handles MongoDB operations for Scheme
type SchemeRepository struct {
	collection *mongo.Collection
}

// NewSchemeRepository creates a new SchemeRepository
func NewSchemeRepository(db *mongo.Database) *SchemeRepository {
	return &SchemeRepository{
		collection: db.Collection("schemes"),
	}
}

// Create inserts a new scheme
func (r *SchemeRepository) Create(ctx context.Context, scheme *models.Scheme) error {
	scheme.ID = primitive.NewObjectID()
	scheme.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, scheme)
	return err
}

// FindActive finds the scheme with isActive=true
func (r *SchemeRepository) FindActive(ctx context.Context) (*models.Scheme, error) {
	var scheme models.Scheme
	err := r.collection.FindOne(ctx, bson.M{"isActive": true}).Decode(&scheme)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &scheme, nil
}

// Update replaces the mutable fields of an existing scheme
func (r *SchemeRepository) Update(ctx context.Context, scheme *models.Scheme) error {
	filter := bson.M{"_id": scheme.ID}
	update := bson.M{"$set": bson.M{
		"title":       scheme.Title,
		"prize":       scheme.Prize,
		"totalWeeks":  scheme.TotalWeeks,
		"costPerWeek": scheme.CostPerWeek,
		"isActive":    scheme.IsActive,
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
