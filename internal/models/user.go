package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a scheme participant. The otp fields are written only by the
// OTP service and are never serialized into API responses.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	CardNumber   int                 `bson:"cardNumber" json:"cardNumber"`
	Name         string              `bson:"name" json:"name"`
	Phone        string              `bson:"phone" json:"phone"`
	Place        string              `bson:"place" json:"place"`
	SchemeID     *primitive.ObjectID `bson:"schemeId,omitempty" json:"schemeId,omitempty"`
	OTP          string              `bson:"otp,omitempty" json:"-"`
	OTPExpiresAt *time.Time          `bson:"otpExpires,omitempty" json:"-"`
	RegisteredAt time.Time           `bson:"registeredAt" json:"registeredAt"`
}
