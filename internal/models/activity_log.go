package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity log action types.
const (
	ActionRegister        = "register"
	ActionManual          = "manual"
	ActionApprove         = "approve"
	ActionReject          = "reject"
	ActionDelete          = "delete"
	ActionUploadForReview = "user_uploaded_for_review"
)

// ActivityLogEntry is one append-only audit record. Entries are never mutated
// or deleted.
type ActivityLogEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ActionType    string             `bson:"actionType" json:"actionType"`
	UserID        primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Amount        int                `bson:"amount,omitempty" json:"amount,omitempty"`
	Mode          string             `bson:"mode,omitempty" json:"mode,omitempty"`
	Week          int                `bson:"week,omitempty" json:"week,omitempty"`
	Note          string             `bson:"note,omitempty" json:"note,omitempty"`
	ScreenshotURL string             `bson:"screenshotUrl,omitempty" json:"screenshotUrl,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
