package testutil

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lessonhub-app/lessonhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// SetupTestDB connects to the test MongoDB instance and returns a database
// unique to this test, dropped on cleanup. Tests are skipped when no
// instance is reachable so the suite stays runnable without infrastructure.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("LESSONHUB_TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("mongo not available at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Skipf("mongo not reachable at %s: %v", uri, err)
	}

	db := client.Database("lessonhub_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateProfile inserts a profile with the given flags.
func (f *Fixtures) CreateProfile(ctx context.Context, username string, active, admin bool) models.Profile {
	f.t.Helper()

	p := models.Profile{
		ID:        primitive.NewObjectID(),
		Username:  username,
		IsActive:  active,
		IsAdmin:   admin,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("profiles").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}
	return p
}

// CreateCoursePage inserts a course page.
func (f *Fixtures) CreateCoursePage(ctx context.Context, slug, title string, order int) models.CoursePage {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.CoursePage{
		ID:        primitive.NewObjectID(),
		Slug:      slug,
		Title:     title,
		SortOrder: order,
		MDContent: "# " + title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("course_pages").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test course page: %v", err)
	}
	return p
}
