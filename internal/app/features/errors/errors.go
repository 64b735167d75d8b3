// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/lessonhub-app/lessonhub/internal/app/system/viewdata"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Message     string
	BackURL     string
	SignOutOnly bool
}

// Handler renders error pages. No DB needed.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// AccountError renders the fail-closed screen shown when a signed-in
// user's profile could not be resolved. The only affordance is sign-out:
// ambiguous account state must not offer a way back into gated screens.
// GET /account-error
func (h *Handler) AccountError(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:      viewdata.NewBaseVM(r, "Account problem"),
		Message:     "We couldn't load your account. Please sign out and try again later.",
		SignOutOnly: true,
	}
	templates.Render(w, r, "error_page", data)
}

// Forbidden renders the 403 page. The gates normally redirect instead of
// landing here; this covers direct navigation and bookmarked URLs.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusForbidden)
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Forbidden"),
		Message: "You don't have access to that page.",
		BackURL: "/courses",
	}
	templates.Render(w, r, "error_page", data)
}

// NotFound renders a friendly 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Not found"),
		Message: "That page doesn't exist.",
		BackURL: "/courses",
	}
	templates.Render(w, r, "error_page", data)
}

// RenderServerError shows a short error page with a retry affordance via
// the back link.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	w.WriteHeader(http.StatusInternalServerError)
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Something went wrong"),
		Message: msg,
		BackURL: backURL,
	}
	templates.Render(w, r, "error_page", data)
}

// RenderNotFound shows the not-found page for a missing resource.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	w.WriteHeader(http.StatusNotFound)
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Not found"),
		Message: msg,
		BackURL: backURL,
	}
	templates.Render(w, r, "error_page", data)
}
