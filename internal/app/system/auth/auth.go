// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	profilestore "github.com/lessonhub-app/lessonhub/internal/app/store/profiles"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants & globals                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey   = "is_authenticated"
	identityKey = "identity_id"
	emailKey    = "identity_email"
	displayKey  = "identity_display_name"
)

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

// SessionName is set by InitSessionStore; the default serves tests.
var SessionName = "lessonhub-session"

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is the resolved per-request user injected into r.Context().
// It combines the session's identity claims with the Profile row looked up
// (or lazily created) on each request, so flag changes made by an admin take
// effect on the user's next request without re-login.
type SessionUser struct {
	ID       string
	Username string
	Email    string
	IsActive bool
	IsAdmin  bool
}

type ctxKey string

const (
	currentUserKey  ctxKey = "currentUser"
	resolveErrorKey ctxKey = "profileResolveError"
)

// CurrentUser returns the resolved user and a "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// ResolveFailed reports whether this request carried a session whose profile
// could not be resolved for a reason other than "not found". Callers must
// treat this as an ambiguous authorization state and fail closed.
func ResolveFailed(r *http.Request) bool {
	failed, _ := r.Context().Value(resolveErrorKey).(bool)
	return failed
}

// Resolver turns session identity claims into a Profile.
// profilestore.Store satisfies it; tests substitute fakes.
type Resolver interface {
	Resolve(ctx context.Context, claims profilestore.Claims) (profilestore.Resolved, error)
}

// LoadSessionUser resolves the session's identity (if any) to a profile and
// injects the result into the request context. Requests without a session
// pass through untouched. A resolution failure other than not-found marks
// the request via ResolveFailed instead of guessing flags.
func LoadSessionUser(resolver Resolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Store == nil {
				next.ServeHTTP(w, r)
				return
			}

			sess, _ := Store.Get(r, SessionName)
			isAuth, _ := sess.Values[isAuthKey].(bool)
			if !isAuth {
				next.ServeHTTP(w, r)
				return
			}

			claims := profilestore.Claims{
				IdentityID:  getString(sess, identityKey),
				Email:       getString(sess, emailKey),
				DisplayName: getString(sess, displayKey),
			}

			resolved, err := resolver.Resolve(r.Context(), claims)
			if err != nil {
				logger.Error("profile resolution failed",
					zap.String("identity_id", claims.IdentityID),
					zap.Error(err))
				r = r.WithContext(context.WithValue(r.Context(), resolveErrorKey, true))
				next.ServeHTTP(w, r)
				return
			}

			u := &SessionUser{
				ID:       resolved.Profile.ID.Hex(),
				Username: resolved.Profile.Username,
				Email:    claims.Email,
				IsActive: resolved.Profile.IsActive,
				IsAdmin:  resolved.Profile.IsAdmin,
			}
			next.ServeHTTP(w, withUser(r, u))
		})
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session lifecycle                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// SignIn writes the identity's claims into the session cookie. Each call
// replaces the prior values wholesale, so a new sign-in is an atomic
// snapshot rather than a merge with stale state.
func SignIn(w http.ResponseWriter, r *http.Request, identityID, email, displayName string) error {
	sess, _ := Store.Get(r, SessionName)
	sess.Values[isAuthKey] = true
	sess.Values[identityKey] = identityID
	sess.Values[emailKey] = email
	sess.Values[displayKey] = displayName
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := Store.Get(r, SessionName)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// InitSessionStore initializes the global session Store using the provided
// session key and cookie settings. The `secure` flag controls whether
// cookies are marked Secure and which SameSite mode is used: production
// needs Secure + SameSite=None, local http dev needs Lax without Secure.
func InitSessionStore(sessionKey, name, domain string, secure bool, logger *zap.Logger) error {
	keyBytes := []byte(sessionKey)
	if sessionKey == "" {
		if secure {
			return fmt.Errorf("session key is empty; provide ≥32 random chars")
		}
		// Dev convenience only: sessions won't survive a restart.
		keyBytes = securecookie.GenerateRandomKey(32)
		logger.Warn("session key is empty; generated an ephemeral dev key")
	} else if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore(keyBytes)
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	Store = store
	if name != "" {
		SessionName = name
	}

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| helpers                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// WithTestUser injects a SessionUser directly into the request context,
// bypassing the session middleware. Test use only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// WithTestResolveError marks the request as having failed profile
// resolution. Test use only.
func WithTestResolveError(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), resolveErrorKey, true))
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
