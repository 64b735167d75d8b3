// Package identity is the authentication capability: it issues and checks
// email/secret credentials, and reports failures as tagged error kinds so
// callers match on a code instead of inspecting message text.
package identity

import (
	"context"
	"fmt"

	"github.com/lessonhub-app/lessonhub/internal/domain/models"
)

// Kind tags an identity error with its category.
type Kind int

const (
	// KindUnavailable covers connectivity and other backend failures.
	KindUnavailable Kind = iota
	// KindAlreadyRegistered: the email is taken.
	KindAlreadyRegistered
	// KindInvalidCredentials: unknown email or wrong secret. The two are
	// deliberately indistinguishable to callers.
	KindInvalidCredentials
	// KindNotFound: the identity does not exist (lookup paths only).
	KindNotFound
)

// Error is a tagged identity failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindAlreadyRegistered:
		return "identity: already registered"
	case KindInvalidCredentials:
		return "identity: invalid credentials"
	case KindNotFound:
		return "identity: not found"
	default:
		if e.Err != nil {
			return fmt.Sprintf("identity: %v", e.Err)
		}
		return "identity: unavailable"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, defaulting to KindUnavailable for
// anything that is not a tagged identity error.
func KindOf(err error) Kind {
	if ie, ok := err.(*Error); ok {
		return ie.Kind
	}
	return KindUnavailable
}

// Gateway is the identity capability consumed by signup, login, and the
// batch importer.
type Gateway interface {
	// SignUp registers a new identity. Fails with KindAlreadyRegistered
	// if the email is taken.
	SignUp(ctx context.Context, email, secret, displayName string) (*models.Identity, error)

	// Authenticate checks credentials. Fails with KindInvalidCredentials
	// for unknown emails and wrong secrets alike.
	Authenticate(ctx context.Context, email, secret string) (*models.Identity, error)
}
