// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/lessonhub-app/lessonhub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeLogout clears the session and sends the visitor back to the sign-in
// page. Clearing an already-empty session is harmless, so this endpoint
// never fails the redirect.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Warn("session clear failed during logout", zap.Error(err))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
