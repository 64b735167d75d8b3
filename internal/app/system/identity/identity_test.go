package identity

import (
	"errors"
	"testing"
)

func TestKindOf_TaggedError(t *testing.T) {
	err := &Error{Kind: KindAlreadyRegistered}
	if KindOf(err) != KindAlreadyRegistered {
		t.Errorf("KindOf = %v, want KindAlreadyRegistered", KindOf(err))
	}
}

func TestKindOf_UntaggedDefaultsToUnavailable(t *testing.T) {
	if KindOf(errors.New("boom")) != KindUnavailable {
		t.Error("untagged errors must map to KindUnavailable")
	}
}

func TestError_MessagesDoNotLeakDetail(t *testing.T) {
	// Invalid-credential messages must not distinguish unknown email from
	// wrong secret.
	a := (&Error{Kind: KindInvalidCredentials}).Error()
	b := (&Error{Kind: KindInvalidCredentials, Err: errors.New("no such user")}).Error()
	if a != b {
		t.Errorf("credential errors differ: %q vs %q", a, b)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("socket closed")
	err := &Error{Kind: KindUnavailable, Err: inner}
	if !errors.Is(err, inner) {
		t.Error("Unwrap must expose the underlying error")
	}
}
