// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	adminfeature "github.com/lessonhub-app/lessonhub/internal/app/features/admin"
	coursesfeature "github.com/lessonhub-app/lessonhub/internal/app/features/courses"
	errorsfeature "github.com/lessonhub-app/lessonhub/internal/app/features/errors"
	healthfeature "github.com/lessonhub-app/lessonhub/internal/app/features/health"
	loginfeature "github.com/lessonhub-app/lessonhub/internal/app/features/login"
	logoutfeature "github.com/lessonhub-app/lessonhub/internal/app/features/logout"
	pendingfeature "github.com/lessonhub-app/lessonhub/internal/app/features/pending"
	signupfeature "github.com/lessonhub-app/lessonhub/internal/app/features/signup"
	pagestore "github.com/lessonhub-app/lessonhub/internal/app/store/coursepages"
	profilestore "github.com/lessonhub-app/lessonhub/internal/app/store/profiles"
	"github.com/lessonhub-app/lessonhub/internal/app/system/auth"
	"github.com/lessonhub-app/lessonhub/internal/app/system/gate"
	"github.com/lessonhub-app/lessonhub/internal/app/system/identity"
	"github.com/lessonhub-app/lessonhub/internal/app/system/metrics"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. LessonHub initializes the session store and
// template engine, applies the session-resolution middleware globally, and
// mounts one feature router per screen with its gate.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	profiles := profilestore.New(deps.MongoDatabase)
	pages := pagestore.New(deps.MongoDatabase)
	identities := identity.NewMongoGateway(deps.MongoDatabase)

	r := chi.NewRouter()

	r.Use(metrics.CountRequests)

	// Global auth middleware: resolves the session to a profile (creating
	// one on first login) and injects it for every handler and gate.
	r.Use(auth.LoadSessionUser(profiles, logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", metrics.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Locally stored course assets; with the s3 backend these are served
	// straight from the bucket's public URL instead.
	if appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Authentication
	loginHandler := loginfeature.NewHandler(identities, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	signupHandler := signupfeature.NewHandler(identities, logger)
	r.Mount("/signup", signupfeature.Routes(signupHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Waiting room for not-yet-activated accounts
	pendingHandler := pendingfeature.NewHandler(logger)
	r.Mount("/pending", pendingfeature.Routes(pendingHandler))

	// Course content
	coursesHandler := coursesfeature.NewHandler(pages, logger)
	r.Mount("/courses", coursesfeature.Routes(coursesHandler))

	// User administration
	adminHandler := adminfeature.NewHandler(profiles, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/account-error", errorsHandler.AccountError)
	r.Get("/forbidden", errorsHandler.Forbidden)

	// Unmatched paths go through the gate like any screen: the table sends
	// them to login, pending, or the course list depending on session state.
	r.NotFound(gate.Require(gate.Unknown)(http.HandlerFunc(errorsHandler.NotFound)).ServeHTTP)

	// The root just forwards into the gated course list; the gate takes
	// over routing from there.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/courses", http.StatusSeeOther)
	})

	return r, nil
}
