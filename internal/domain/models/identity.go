// internal/domain/models/identity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is an authentication record: an email-shaped login plus a bcrypt
// secret hash. Application state (activation, admin) lives on Profile, not
// here; the identity layer only answers "who is this".
type Identity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	SecretHash  string             `bson:"secret_hash" json:"-"`
	DisplayName string             `bson:"display_name,omitempty" json:"display_name,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
