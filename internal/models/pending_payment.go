package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PendingPayment represents an uploaded proof awaiting admin disposition.
// It is deleted on approval or rejection, never updated in place.
type PendingPayment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Amount        int                `bson:"amount" json:"amount"`
	Mode          string             `bson:"mode" json:"mode"`
	ScreenshotURL string             `bson:"screenshotUrl" json:"screenshotUrl"`
	Week          int                `bson:"week,omitempty" json:"week,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
