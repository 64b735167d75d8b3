package accountimport_test

import (
	"context"
	"testing"
	"time"

	"github.com/lessonhub-app/lessonhub/internal/app/accountimport"
	"github.com/lessonhub-app/lessonhub/internal/app/system/accountfile"
	"github.com/lessonhub-app/lessonhub/internal/app/system/identity"
	"github.com/lessonhub-app/lessonhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeGateway tracks registered emails and fails a configured set.
type fakeGateway struct {
	existing map[string]bool
	failing  map[string]bool
}

func (g *fakeGateway) SignUp(ctx context.Context, email, secret, displayName string) (*models.Identity, error) {
	if g.failing[email] {
		return nil, &identity.Error{Kind: identity.KindUnavailable}
	}
	if g.existing[email] {
		return nil, &identity.Error{Kind: identity.KindAlreadyRegistered}
	}
	g.existing[email] = true
	return &models.Identity{
		ID:          primitive.NewObjectID(),
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (g *fakeGateway) Authenticate(ctx context.Context, email, secret string) (*models.Identity, error) {
	return nil, &identity.Error{Kind: identity.KindInvalidCredentials}
}

func TestRun_Tally(t *testing.T) {
	gw := &fakeGateway{
		existing: map[string]bool{"old@lessonhub.local": true},
		failing:  map[string]bool{"broken@lessonhub.local": true},
	}

	res := accountimport.Run(context.Background(), gw, []accountfile.Account{
		{Username: "fresh", Password: "secret123"},
		{Username: "old", Password: "secret123"},
		{Username: "broken", Password: "secret123"},
	}, zap.NewNop())

	if res.Created != 1 {
		t.Errorf("created: got %d, want 1", res.Created)
	}
	if res.Skipped != 1 {
		t.Errorf("skipped: got %d, want 1", res.Skipped)
	}
	if res.Failed != 1 {
		t.Errorf("failed: got %d, want 1", res.Failed)
	}
	if !gw.existing["fresh@lessonhub.local"] {
		t.Error("fresh account was not registered with a synthesized email")
	}
}

func TestRun_SkippedBatchContinues(t *testing.T) {
	gw := &fakeGateway{
		existing: map[string]bool{"a@lessonhub.local": true},
	}

	res := accountimport.Run(context.Background(), gw, []accountfile.Account{
		{Username: "a", Password: "secret123"},
		{Username: "b", Password: "secret123"},
		{Username: "c", Password: "secret123"},
	}, zap.NewNop())

	if res.Created != 2 || res.Skipped != 1 || res.Failed != 0 {
		t.Errorf("tally: got %+v, want 2 created / 1 skipped / 0 failed", res)
	}
}
