package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment modes accepted from clients and admins.
const (
	ModeManual = "manual"
	ModeOnline = "online"
	ModeUPI    = "UPI"
)

// Payment represents one confirmed week slot for a user. At most one Payment
// exists per (userId, week); the repository enforces this with a unique index.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Week          int                `bson:"week" json:"week"`
	Amount        int                `bson:"amount" json:"amount"`
	Mode          string             `bson:"mode" json:"mode"`
	ScreenshotURL string             `bson:"screenshotUrl,omitempty" json:"screenshotUrl,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidMode reports whether mode is an accepted payment mode.
func ValidMode(mode string) bool {
	switch mode {
	case ModeManual, ModeOnline, ModeUPI:
		return true
	}
	return false
}
