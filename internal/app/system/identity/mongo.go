// internal/app/system/identity/mongo.go
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/lessonhub-app/lessonhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// MongoGateway is the mongo-backed Gateway. Secrets are stored as bcrypt
// hashes; emails are normalized to lowercase before storage and lookup.
type MongoGateway struct {
	c *mongo.Collection
}

func NewMongoGateway(db *mongo.Database) *MongoGateway {
	return &MongoGateway{c: db.Collection("identities")}
}

func (g *MongoGateway) SignUp(ctx context.Context, email, secret, displayName string) (*models.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Err: err}
	}

	id := models.Identity{
		ID:          primitive.NewObjectID(),
		Email:       normalizeEmail(email),
		SecretHash:  string(hash),
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := g.c.InsertOne(ctx, id); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, &Error{Kind: KindAlreadyRegistered, Err: err}
		}
		return nil, &Error{Kind: KindUnavailable, Err: err}
	}
	return &id, nil
}

func (g *MongoGateway) Authenticate(ctx context.Context, email, secret string) (*models.Identity, error) {
	var id models.Identity
	err := g.c.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &Error{Kind: KindInvalidCredentials}
		}
		return nil, &Error{Kind: KindUnavailable, Err: err}
	}

	if bcrypt.CompareHashAndPassword([]byte(id.SecretHash), []byte(secret)) != nil {
		return nil, &Error{Kind: KindInvalidCredentials}
	}
	return &id, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
