// internal/app/features/login/routes.go
package login

import (
	"github.com/go-chi/chi/v5"
	"github.com/lessonhub-app/lessonhub/internal/app/system/gate"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(gate.Require(gate.Login))
	r.Get("/", h.ServeForm)
	r.Post("/", h.HandleSubmit)
	return r
}
