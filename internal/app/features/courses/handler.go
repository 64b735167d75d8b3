// internal/app/features/courses/handler.go
package courses

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	errpages "github.com/lessonhub-app/lessonhub/internal/app/features/errors"
	pagestore "github.com/lessonhub-app/lessonhub/internal/app/store/coursepages"
	"github.com/lessonhub-app/lessonhub/internal/app/system/markdownview"
	"github.com/lessonhub-app/lessonhub/internal/app/system/viewdata"
	"github.com/lessonhub-app/lessonhub/internal/domain/models"
	"go.uber.org/zap"
)

// PageReader is the slice of the page store the course screens need.
type PageReader interface {
	List(ctx context.Context) ([]models.CoursePage, error)
	GetBySlug(ctx context.Context, slug string) (*models.CoursePage, error)
}

type Handler struct {
	Pages PageReader
	Log   *zap.Logger
}

func NewHandler(pages PageReader, logger *zap.Logger) *Handler {
	return &Handler{Pages: pages, Log: logger}
}

type listItem struct {
	Slug  string
	Title string
}

type listData struct {
	viewdata.BaseVM
	Courses []listItem
}

type detailData struct {
	viewdata.BaseVM
	Slug string
	Body template.HTML
}

// ServeList shows every course page in sort order.
// GET /courses
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	pages, err := h.Pages.List(r.Context())
	if err != nil {
		h.Log.Error("course list failed", zap.Error(err))
		errpages.RenderServerError(w, r, "The course list couldn't be loaded.", "/courses")
		return
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Courses"),
	}
	for _, p := range pages {
		data.Courses = append(data.Courses, listItem{Slug: p.Slug, Title: p.Title})
	}
	templates.Render(w, r, "course_list", data)
}

// ServeDetail renders one course page's Markdown as sanitized HTML.
// GET /courses/{slug}
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := h.Pages.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, pagestore.ErrNotFound) {
			errpages.RenderNotFound(w, r, "That course doesn't exist.", "/courses")
			return
		}
		h.Log.Error("course fetch failed", zap.String("slug", slug), zap.Error(err))
		errpages.RenderServerError(w, r, "The course couldn't be loaded.", "/courses")
		return
	}

	body, err := markdownview.Render(page.MDContent)
	if err != nil {
		h.Log.Error("markdown render failed", zap.String("slug", slug), zap.Error(err))
		errpages.RenderServerError(w, r, "The course couldn't be displayed.", "/courses")
		return
	}

	data := detailData{
		BaseVM: viewdata.NewBaseVM(r, page.Title),
		Slug:   page.Slug,
		Body:   body,
	}
	templates.Render(w, r, "course_detail", data)
}
