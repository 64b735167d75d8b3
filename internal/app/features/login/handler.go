// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/lessonhub-app/lessonhub/internal/app/system/auth"
	"github.com/lessonhub-app/lessonhub/internal/app/system/gate"
	"github.com/lessonhub-app/lessonhub/internal/app/system/identity"
	"github.com/lessonhub-app/lessonhub/internal/app/system/loginid"
	"github.com/lessonhub-app/lessonhub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

type Handler struct {
	Identities identity.Gateway
	Log        *zap.Logger
}

func NewHandler(identities identity.Gateway, logger *zap.Logger) *Handler {
	return &Handler{Identities: identities, Log: logger}
}

type loginFormData struct {
	viewdata.BaseVM
	Error    string
	Username string
}

// ServeForm renders the sign-in form.
// GET /login
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	data := loginFormData{
		BaseVM: viewdata.NewBaseVM(r, "Sign in"),
	}
	templates.Render(w, r, "login", data)
}

// HandleSubmit checks credentials and establishes the session.
// POST /login
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	renderError := func(msg string) {
		data := loginFormData{
			BaseVM:   viewdata.NewBaseVM(r, "Sign in"),
			Error:    msg,
			Username: username,
		}
		templates.Render(w, r, "login", data)
	}

	if username == "" || password == "" {
		renderError("Enter your username and password.")
		return
	}

	email := loginid.SynthesizeEmail(username)
	id, err := h.Identities.Authenticate(r.Context(), email, password)
	if err != nil {
		switch identity.KindOf(err) {
		case identity.KindInvalidCredentials:
			renderError("Incorrect username or password.")
		default:
			h.Log.Error("identity gateway unavailable", zap.Error(err))
			renderError("Sign-in is temporarily unavailable. Please try again.")
		}
		return
	}

	if err := auth.SignIn(w, r, id.ID.Hex(), id.Email, id.DisplayName); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		renderError("Sign-in failed. Please try again.")
		return
	}

	// The gate decides where a fresh session lands; profile resolution
	// happens on the redirected request, so we only know "somewhere past
	// login". Pending is the safe landing for a not-yet-activated user and
	// the gate forwards active users on to the course list.
	http.Redirect(w, r, gate.Pending.Path(), http.StatusSeeOther)
}
