package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/lessonhub-app/lessonhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID       string
	Username string
	Email    string
	IsActive bool
	IsAdmin  bool
}

// PendingUser returns a signed-in user an admin has not activated yet.
func PendingUser() TestUser {
	return TestUser{
		ID:       primitive.NewObjectID().Hex(),
		Username: "newcomer",
		Email:    "newcomer@lessonhub.local",
	}
}

// ActiveUser returns an activated non-admin user.
func ActiveUser() TestUser {
	return TestUser{
		ID:       primitive.NewObjectID().Hex(),
		Username: "learner",
		Email:    "learner@lessonhub.local",
		IsActive: true,
	}
}

// AdminUser returns an activated admin.
func AdminUser() TestUser {
	return TestUser{
		ID:       primitive.NewObjectID().Hex(),
		Username: "director",
		Email:    "director@lessonhub.local",
		IsActive: true,
		IsAdmin:  true,
	}
}

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses the session middleware and injects the user
// directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	sessionUser := &auth.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsActive: user.IsActive,
		IsAdmin:  user.IsAdmin,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}
