// internal/app/features/signup/routes.go
package signup

import (
	"github.com/go-chi/chi/v5"
	"github.com/lessonhub-app/lessonhub/internal/app/system/gate"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(gate.Require(gate.Signup))
	r.Get("/", h.ServeForm)
	r.Post("/", h.HandleSubmit)
	return r
}
