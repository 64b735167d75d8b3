// internal/app/store/coursepages/pagestore.go
package pagestore

import (
	"context"
	"errors"
	"time"

	"github.com/lessonhub-app/lessonhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no page exists for a slug.
var ErrNotFound = errors.New("course page not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("course_pages")}
}

// Upsert inserts or replaces the page identified by its slug. created_at is
// written only on first insert; updated_at is touched on every call. The
// unique slug index guarantees at most one row per slug even under
// concurrent writers.
func (s *Store) Upsert(ctx context.Context, page models.CoursePage) error {
	now := time.Now().UTC()
	if page.UpdatedAt.IsZero() {
		page.UpdatedAt = now
	}

	update := bson.M{
		"$set": bson.M{
			"title":      page.Title,
			"sort_order": page.SortOrder,
			"md_content": page.MDContent,
			"updated_at": page.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"slug":       page.Slug,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"slug": page.Slug}, update, opts)
	return err
}

// GetBySlug loads one page. Returns ErrNotFound for an unknown slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.CoursePage, error) {
	var p models.CoursePage
	if err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all pages ordered by sort_order; creation order breaks ties
// so repeated syncs keep a stable listing.
func (s *Store) List(ctx context.Context) ([]models.CoursePage, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "sort_order", Value: 1},
		{Key: "created_at", Value: 1},
	})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CoursePage
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
