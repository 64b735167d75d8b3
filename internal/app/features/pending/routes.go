// internal/app/features/pending/routes.go
package pending

import (
	"github.com/go-chi/chi/v5"
	"github.com/lessonhub-app/lessonhub/internal/app/system/gate"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(gate.Require(gate.Pending))
	r.Get("/", h.ServePending)
	return r
}
