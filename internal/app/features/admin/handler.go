// internal/app/features/admin/handler.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	errpages "github.com/lessonhub-app/lessonhub/internal/app/features/errors"
	profilestore "github.com/lessonhub-app/lessonhub/internal/app/store/profiles"
	"github.com/lessonhub-app/lessonhub/internal/app/system/auth"
	"github.com/lessonhub-app/lessonhub/internal/app/system/viewdata"
	"github.com/lessonhub-app/lessonhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProfileAdmin is the slice of the profile store the admin screens need.
type ProfileAdmin interface {
	List(ctx context.Context) ([]models.Profile, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	SetAdmin(ctx context.Context, id primitive.ObjectID, admin bool) error
}

type Handler struct {
	Profiles ProfileAdmin
	Log      *zap.Logger
}

func NewHandler(profiles ProfileAdmin, logger *zap.Logger) *Handler {
	return &Handler{Profiles: profiles, Log: logger}
}

type userRow struct {
	ID        string
	Username  string
	IsActive  bool
	IsAdmin   bool
	IsSelf    bool
	CreatedAt time.Time
}

type listData struct {
	viewdata.BaseVM
	Users []userRow
}

// ServeUsers lists every account with its flags and toggle controls.
// GET /admin
func (h *Handler) ServeUsers(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Profiles.List(r.Context())
	if err != nil {
		h.Log.Error("profile list failed", zap.Error(err))
		errpages.RenderServerError(w, r, "The user list couldn't be loaded.", "/admin")
		return
	}

	self, _ := auth.CurrentUser(r)

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Users"),
	}
	for _, p := range profiles {
		row := userRow{
			ID:        p.ID.Hex(),
			Username:  p.Username,
			IsActive:  p.IsActive,
			IsAdmin:   p.IsAdmin,
			CreatedAt: p.CreatedAt,
		}
		if self != nil && self.ID == row.ID {
			row.IsSelf = true
		}
		data.Users = append(data.Users, row)
	}
	templates.Render(w, r, "admin_users", data)
}

// HandleSetActive flips an account's activation flag.
// POST /admin/users/{id}/active
func (h *Handler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	h.handleFlag(w, r, "active", h.Profiles.SetActive)
}

// HandleSetAdmin flips an account's admin flag. The gate re-reads flags on
// every request, so a demoted admin loses this screen on their next click.
// POST /admin/users/{id}/admin
func (h *Handler) HandleSetAdmin(w http.ResponseWriter, r *http.Request) {
	h.handleFlag(w, r, "admin", h.Profiles.SetAdmin)
}

func (h *Handler) handleFlag(w http.ResponseWriter, r *http.Request, name string, set func(context.Context, primitive.ObjectID, bool) error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		errpages.RenderNotFound(w, r, "That user doesn't exist.", "/admin")
		return
	}

	value := r.FormValue("value") == "true"
	if err := set(r.Context(), id, value); err != nil {
		if errors.Is(err, profilestore.ErrNotFound) {
			errpages.RenderNotFound(w, r, "That user doesn't exist.", "/admin")
			return
		}
		h.Log.Error("flag update failed",
			zap.String("flag", name),
			zap.String("profile_id", id.Hex()),
			zap.Error(err))
		errpages.RenderServerError(w, r, "The change couldn't be saved.", "/admin")
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
