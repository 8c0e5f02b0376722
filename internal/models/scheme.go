package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defaults applied when no scheme record is active.
const (
	DefaultTotalWeeks  = 60
	DefaultCostPerWeek = 100
)

// Scheme holds the chit-fund configuration. At most one record has
// IsActive=true; its costPerWeek and totalWeeks drive the payment ledger.
type Scheme struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Prize       string             `bson:"prize" json:"prize"`
	TotalWeeks  int                `bson:"totalWeeks" json:"totalWeeks"`
	CostPerWeek int                `bson:"costPerWeek" json:"costPerWeek"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
