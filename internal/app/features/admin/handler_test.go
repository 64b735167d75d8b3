package admin_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/lessonhub-app/lessonhub/internal/app/features/admin"
	profilestore "github.com/lessonhub-app/lessonhub/internal/app/store/profiles"
	"github.com/lessonhub-app/lessonhub/internal/domain/models"
	"github.com/lessonhub-app/lessonhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type flagCall struct {
	id    primitive.ObjectID
	value bool
}

// fakeProfiles records flag mutations against a fixed set of profiles.
type fakeProfiles struct {
	profiles    []models.Profile
	activeCalls []flagCall
	adminCalls  []flagCall
}

func (f *fakeProfiles) List(ctx context.Context) ([]models.Profile, error) {
	return f.profiles, nil
}

func (f *fakeProfiles) has(id primitive.ObjectID) bool {
	for _, p := range f.profiles {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (f *fakeProfiles) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	if !f.has(id) {
		return profilestore.ErrNotFound
	}
	f.activeCalls = append(f.activeCalls, flagCall{id: id, value: active})
	return nil
}

func (f *fakeProfiles) SetAdmin(ctx context.Context, id primitive.ObjectID, value bool) error {
	if !f.has(id) {
		return profilestore.ErrNotFound
	}
	f.adminCalls = append(f.adminCalls, flagCall{id: id, value: value})
	return nil
}

func postFlag(target, id, value string) *http.Request {
	form := url.Values{"value": {value}}
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, testutil.AdminUser())
	return testutil.WithChiURLParam(req, "id", id)
}

func TestHandleSetActive_ActivatesAndRedirects(t *testing.T) {
	target := models.Profile{ID: primitive.NewObjectID(), Username: "zhang"}
	store := &fakeProfiles{profiles: []models.Profile{target}}
	handler := admin.NewHandler(store, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.HandleSetActive(rec, postFlag("/admin/users/x/active", target.ID.Hex(), "true"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location: got %q, want %q", loc, "/admin")
	}
	if len(store.activeCalls) != 1 || !store.activeCalls[0].value {
		t.Fatalf("expected one SetActive(true) call, got %+v", store.activeCalls)
	}
	if store.activeCalls[0].id != target.ID {
		t.Error("SetActive called with the wrong profile id")
	}
}

func TestHandleSetActive_Deactivates(t *testing.T) {
	target := models.Profile{ID: primitive.NewObjectID(), Username: "zhang", IsActive: true}
	store := &fakeProfiles{profiles: []models.Profile{target}}
	handler := admin.NewHandler(store, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.HandleSetActive(rec, postFlag("/admin/users/x/active", target.ID.Hex(), "false"))

	if len(store.activeCalls) != 1 || store.activeCalls[0].value {
		t.Fatalf("expected one SetActive(false) call, got %+v", store.activeCalls)
	}
}

func TestHandleSetAdmin_PromotesAndRedirects(t *testing.T) {
	target := models.Profile{ID: primitive.NewObjectID(), Username: "zhang", IsActive: true}
	store := &fakeProfiles{profiles: []models.Profile{target}}
	handler := admin.NewHandler(store, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.HandleSetAdmin(rec, postFlag("/admin/users/x/admin", target.ID.Hex(), "true"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if len(store.adminCalls) != 1 || !store.adminCalls[0].value {
		t.Fatalf("expected one SetAdmin(true) call, got %+v", store.adminCalls)
	}
}

func TestHandleSetActive_MalformedID_NoMutation(t *testing.T) {
	store := &fakeProfiles{}
	handler := admin.NewHandler(store, zap.NewNop())

	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		handler.HandleSetActive(rec, postFlag("/admin/users/x/active", "not-an-object-id", "true"))
	}()

	if len(store.activeCalls) != 0 {
		t.Error("malformed id must not reach the store")
	}
	if rec.Code == http.StatusSeeOther {
		t.Error("malformed id must not redirect as success")
	}
}

func TestHandleSetActive_UnknownID_NoRedirect(t *testing.T) {
	store := &fakeProfiles{}
	handler := admin.NewHandler(store, zap.NewNop())

	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		handler.HandleSetActive(rec, postFlag("/admin/users/x/active", primitive.NewObjectID().Hex(), "true"))
	}()

	if rec.Code == http.StatusSeeOther {
		t.Error("unknown id must not redirect as success")
	}
}

// failingProfiles errors on every call.
type failingProfiles struct{}

func (failingProfiles) List(ctx context.Context) ([]models.Profile, error) {
	return nil, errors.New("boom")
}

func (failingProfiles) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return errors.New("boom")
}

func (failingProfiles) SetAdmin(ctx context.Context, id primitive.ObjectID, value bool) error {
	return errors.New("boom")
}

func TestHandleSetActive_StoreError_NoRedirect(t *testing.T) {
	handler := admin.NewHandler(failingProfiles{}, zap.NewNop())

	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		handler.HandleSetActive(rec, postFlag("/admin/users/x/active", primitive.NewObjectID().Hex(), "true"))
	}()

	if rec.Code == http.StatusSeeOther {
		t.Error("store failure must not redirect as success")
	}
}
