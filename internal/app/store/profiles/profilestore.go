// internal/app/store/profiles/profilestore.go
package profilestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/lessonhub-app/lessonhub/internal/app/system/loginid"
	"github.com/lessonhub-app/lessonhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no profile exists for the given id.
	ErrNotFound = errors.New("profile not found")
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("a profile with this username already exists")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("profiles")}
}

// GetByID loads a profile by identity id. Returns ErrNotFound if absent;
// any other error is surfaced untouched so callers can fail closed.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new profile with both flags off. The username must be
// unique; a duplicate insert returns ErrDuplicateUsername.
func (s *Store) Create(ctx context.Context, id primitive.ObjectID, username string) (*models.Profile, error) {
	p := models.Profile{
		ID:        id,
		Username:  username,
		IsActive:  false,
		IsAdmin:   false,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return &p, nil
}

// List returns all profiles ordered by creation time, oldest first.
func (s *Store) List(ctx context.Context) ([]models.Profile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetActive flips the activation flag for one profile.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_active": active}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAdmin flips the admin flag for one profile.
func (s *Store) SetAdmin(ctx context.Context, id primitive.ObjectID, admin bool) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_admin": admin}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Lazy resolution                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// Claims are the session-supplied identity attributes used to resolve (or
// lazily create) a profile.
type Claims struct {
	IdentityID  string
	Email       string
	DisplayName string
}

// Resolved is the outcome of a successful resolution.
type Resolved struct {
	Profile models.Profile
	Created bool
}

// Resolve implements the lazy-creation contract: look up by identity id,
// and if no row exists create one with both flags off. The username is the
// supplied display name when present, otherwise the email with the fixed
// domain suffix stripped.
//
// Two near-simultaneous first logins can race on the insert; the unique
// _id constraint makes the loser's insert fail as a duplicate, which is
// handled by re-fetching the winner's row rather than failing the request.
func (s *Store) Resolve(ctx context.Context, claims Claims) (Resolved, error) {
	id, err := primitive.ObjectIDFromHex(claims.IdentityID)
	if err != nil {
		return Resolved{}, err
	}

	p, err := s.GetByID(ctx, id)
	if err == nil {
		return Resolved{Profile: *p}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Resolved{}, err
	}

	username := claims.DisplayName
	if username == "" {
		username = loginid.UsernameFromEmail(claims.Email)
	}

	created, err := s.Create(ctx, id, username)
	if err == nil {
		return Resolved{Profile: *created, Created: true}, nil
	}
	if wafflemongo.IsDup(err) || errors.Is(err, ErrDuplicateUsername) {
		// Lost the first-login race; the row now exists.
		existing, ferr := s.GetByID(ctx, id)
		if ferr != nil {
			return Resolved{}, ferr
		}
		return Resolved{Profile: *existing}, nil
	}
	return Resolved{}, err
}
