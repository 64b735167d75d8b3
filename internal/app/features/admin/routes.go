// internal/app/features/admin/routes.go
package admin

import (
	"github.com/go-chi/chi/v5"
	"github.com/lessonhub-app/lessonhub/internal/app/system/gate"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(gate.Require(gate.Admin))
	r.Get("/", h.ServeUsers)
	r.Post("/users/{id}/active", h.HandleSetActive)
	r.Post("/users/{id}/admin", h.HandleSetAdmin)
	return r
}
