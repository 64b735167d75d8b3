// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/lessonhub-app/lessonhub/internal/app/system/auth"
)

// DefaultSiteName is shown in the layout when no override is configured.
const DefaultSiteName = "LessonHub"

// BaseVM contains common fields for all view models. Embed it in
// feature-specific view models:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	Username   string
	IsActive   bool
	IsAdmin    bool

	// Page context
	Title       string
	CurrentPath string
}

// NewBaseVM creates a populated BaseVM for a page.
func NewBaseVM(r *http.Request, title string) BaseVM {
	vm := BaseVM{
		SiteName:    DefaultSiteName,
		Title:       title,
		CurrentPath: r.URL.Path,
	}
	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.Username = u.Username
		vm.IsActive = u.IsActive
		vm.IsAdmin = u.IsAdmin
	}
	return vm
}
