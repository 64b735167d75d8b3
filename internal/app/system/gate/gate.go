// Package gate holds the access-control decision table that governs every
// screen in the app, plus the chi middleware that enforces it.
//
// The decision is a pure function of three booleans — session present,
// profile active, profile admin — and the requested screen. Precedence is
// authentication first, then activation, then role. Nothing else is
// consulted: handlers behind gate middleware can trust the verdict and do
// no further access checks.
package gate

import (
	"net/http"

	"github.com/lessonhub-app/lessonhub/internal/app/system/auth"
	"github.com/lessonhub-app/lessonhub/internal/app/system/metrics"
)

// Screen enumerates every addressable screen in the app.
type Screen int

const (
	Login Screen = iota
	Signup
	Pending
	CourseList
	CourseDetail
	Admin
	Unknown
)

// String returns the screen's route label.
func (s Screen) String() string {
	switch s {
	case Login:
		return "login"
	case Signup:
		return "signup"
	case Pending:
		return "pending"
	case CourseList:
		return "course_list"
	case CourseDetail:
		return "course_detail"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// Path returns the canonical URL for a screen, used as a redirect target.
func (s Screen) Path() string {
	switch s {
	case Login:
		return "/login"
	case Signup:
		return "/signup"
	case Pending:
		return "/pending"
	case CourseList, CourseDetail:
		return "/courses"
	case Admin:
		return "/admin"
	default:
		return "/"
	}
}

// Verdict is the outcome of a gate decision: either render the requested
// screen, or redirect to another one.
type Verdict struct {
	Allow      bool
	RedirectTo Screen
}

func render() Verdict { return Verdict{Allow: true} }
func redirect(to Screen) Verdict { return Verdict{RedirectTo: to} }

// Decide evaluates the access table for one request.
//
//	hasSession  isActive  isAdmin | Login    Signup    Pending   List/Detail  Admin     Unknown
//	false       —         —       | Render   Render    →Login    →Login       →Login    →Login
//	true        false     —       | →Pending →Pending  Render    →Pending     →Pending  →Pending
//	true        true      false   | →List    →Pending  →List     Render       →List     →List
//	true        true      true    | →List    →Pending  →List     Render       Render    →List
func Decide(hasSession, isActive, isAdmin bool, s Screen) Verdict {
	if !hasSession {
		switch s {
		case Login, Signup:
			return render()
		default:
			return redirect(Login)
		}
	}

	if !isActive {
		if s == Pending {
			return render()
		}
		return redirect(Pending)
	}

	switch s {
	case Signup:
		return redirect(Pending)
	case CourseList, CourseDetail:
		return render()
	case Admin:
		if isAdmin {
			return render()
		}
		return redirect(CourseList)
	default:
		return redirect(CourseList)
	}
}

// Require wraps a feature's routes with the decision table for one screen.
// It reads the resolved SessionUser (or its absence) from context, and
// either passes the request through or issues a 303 to the verdict's
// screen. A failed profile resolution short-circuits to the error screen
// before the table is consulted: ambiguous profile state never grants
// access, and the only affordance offered there is sign-out.
func Require(screen Screen) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.ResolveFailed(r) {
				metrics.GateDecision(screen.String(), "error")
				http.Redirect(w, r, "/account-error", http.StatusSeeOther)
				return
			}

			u, hasSession := auth.CurrentUser(r)
			isActive, isAdmin := false, false
			if hasSession {
				isActive, isAdmin = u.IsActive, u.IsAdmin
			}

			v := Decide(hasSession, isActive, isAdmin, screen)
			if !v.Allow {
				metrics.GateDecision(screen.String(), "redirect")
				http.Redirect(w, r, v.RedirectTo.Path(), http.StatusSeeOther)
				return
			}

			metrics.GateDecision(screen.String(), "render")
			next.ServeHTTP(w, r)
		})
	}
}
