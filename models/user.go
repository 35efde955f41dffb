package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"` // Password is not returned in JSON
	PhotoURL  string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Provider  string             `bson:"provider" json:"provider"` // password, google
	Status    string             `bson:"status" json:"status"`     // pending, verified, active
	OTP       string             `bson:"otp,omitempty" json:"-"`   // OTP for email verification / password reset
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
