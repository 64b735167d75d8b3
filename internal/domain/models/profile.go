// internal/domain/models/profile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the per-user application record. There is exactly one Profile
// per identity; its _id is the identity's id, so the 1:1 relationship is
// enforced by the primary key rather than a separate foreign-key field.
//
// Profiles are created lazily the first time an identity authenticates.
// Both flags default to false; only an admin flips them.
type Profile struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Username  string             `bson:"username" json:"username"`
	IsActive  bool               `bson:"is_active" json:"is_active"`
	IsAdmin   bool               `bson:"is_admin" json:"is_admin"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
