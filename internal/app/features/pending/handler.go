// internal/app/features/pending/handler.go
package pending

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/lessonhub-app/lessonhub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServePending shows the waiting-room page for signed-in accounts that an
// admin has not activated yet.
// GET /pending
func (h *Handler) ServePending(w http.ResponseWriter, r *http.Request) {
	data := viewdata.NewBaseVM(r, "Awaiting activation")
	templates.Render(w, r, "pending", data)
}
