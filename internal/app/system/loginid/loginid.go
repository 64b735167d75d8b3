// internal/app/system/loginid/loginid.go
package loginid

// Terminology: User Identifiers
//   - IdentityID / identity_id: The MongoDB ObjectID (_id) that uniquely identifies an identity record
//   - Username: The human-readable string users type to sign in

import (
	"regexp"
	"strings"
)

// EmailDomain is the fixed suffix used to synthesize email-shaped logins
// from usernames. The transform is reversible: stripping the suffix
// recovers the username.
const EmailDomain = "@lessonhub.local"

// MinSecretLen is the minimum accepted password length.
const MinSecretLen = 6

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidUsername reports whether s is an acceptable username.
func ValidUsername(s string) bool {
	return usernameRe.MatchString(s)
}

// ValidSecret reports whether s meets the minimum secret length.
func ValidSecret(s string) bool {
	return len(s) >= MinSecretLen
}

// SynthesizeEmail turns a username into the email-shaped identifier the
// identity layer requires.
func SynthesizeEmail(username string) string {
	return username + EmailDomain
}

// UsernameFromEmail recovers a username from a synthesized email.
// Addresses from other domains are returned unchanged, so foreign
// identities still receive a deterministic username.
func UsernameFromEmail(email string) string {
	return strings.TrimSuffix(email, EmailDomain)
}
