// internal/domain/models/coursepage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoursePage is one synced course document. Slug is the idempotency key:
// re-syncing the same source name resolves to the same slug and updates the
// existing row instead of inserting a second one.
//
// Title keeps the source file name verbatim; the slug transform is lossy and
// the display name should not be.
type CoursePage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug      string             `bson:"slug" json:"slug"`
	Title     string             `bson:"title" json:"title"`
	SortOrder int                `bson:"sort_order" json:"sort_order"`
	MDContent string             `bson:"md_content" json:"md_content"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
