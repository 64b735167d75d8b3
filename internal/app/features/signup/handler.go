// internal/app/features/signup/handler.go
package signup

import (
	"fmt"
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

type signupFormData struct {
	viewdata.BaseVM
	Error    string
	Username string
}

// ServeForm renders the registration form.
// GET /signup
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	data := signupFormData{
		BaseVM: viewdata.NewBaseVM(r, "Sign up"),
	}
	templates.Render(w, r, "signup", data)
}

// HandleSubmit validates the form, registers the identity and signs the new
// user in. A fresh account always lands on the pending screen; an admin has
// to activate it before course content opens up.
// POST /signup
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm")

	renderError := func(msg string) {
		data := signupFormData{
			BaseVM:   viewdata.NewBaseVM(r, "Sign up"),
			Error:    msg,
			Username: username,
		}
		templates.Render(w, r, "signup", data)
	}

	if !loginid.ValidUsername(username) {
		renderError("Usernames may contain letters, digits and underscores only.")
		return
	}
	if !loginid.ValidSecret(password) {
		renderError(fmt.Sprintf("Passwords must be at least %d characters.", loginid.MinSecretLen))
		return
	}
	if password != confirm {
		renderError("Passwords do not match.")
		return
	}

	email := loginid.SynthesizeEmail(username)
	id, err := h.Identities.SignUp(r.Context(), email, password, username)
	if err != nil {
		switch identity.KindOf(err) {
		case identity.KindAlreadyRegistered:
			renderError("That username is already taken.")
		default:
			h.Log.Error("identity sign-up failed", zap.Error(err))
			renderError("Registration is temporarily unavailable. Please try again.")
		}
		return
	}

	if err := auth.SignIn(w, r, id.ID.Hex(), id.Email, id.DisplayName); err != nil {
		h.Log.Error("session save failed after sign-up", zap.Error(err))
		http.Redirect(w, r, gate.Login.Path(), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, gate.Pending.Path(), http.StatusSeeOther)
}
