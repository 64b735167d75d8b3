// internal/app/features/courses/routes.go
package courses

import (
	"github.com/go-chi/chi/v5"
	"github.com/lessonhub-app/lessonhub/internal/app/system/gate"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(gate.Require(gate.CourseList))
		pr.Get("/", h.ServeList)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(gate.Require(gate.CourseDetail))
		pr.Get("/{slug}", h.ServeDetail)
	})

	return r
}
