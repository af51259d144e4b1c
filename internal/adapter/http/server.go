// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"kittyfit/internal/app"
	"kittyfit/internal/logger"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig carries the runtime pieces of an optional SSO integration.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	sessions *app.SessionStore
	guard    *app.Guard
	auth     *app.AuthService
	workouts *app.WorkoutLogService
	metrics  *app.MetricsService
	progress *app.ProgressService
	oidc     OIDCConfig
	log      *logger.Logger

	cookieMaxAge int
}

// New creates a Server wired to the given application services.
func New(sessions *app.SessionStore, guard *app.Guard, auth *app.AuthService, workouts *app.WorkoutLogService, metrics *app.MetricsService, progress *app.ProgressService, oidc OIDCConfig, log *logger.Logger, cookieMaxAge int) *Server {
	return &Server{
		sessions: sessions,
		guard:    guard,
		auth:     auth,
		workouts: workouts,
		metrics:  metrics,
		progress: progress,
		oidc:     oidc,
		log:      log,

		cookieMaxAge: cookieMaxAge,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/session", s.handleSession)
	api.HandleFunc("/session/onboarding-complete", s.handleOnboardingComplete)
	api.HandleFunc("/session/guard", s.handleGuard)

	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/config", s.handleAuthConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	api.HandleFunc("/logs", s.handleLogs)
	api.HandleFunc("/logs/", s.handleLogByID)
	api.HandleFunc("/plans", s.handlePlans)
	api.HandleFunc("/plans/", s.handlePlanByID)

	api.HandleFunc("/metrics/streak", s.handleStreak)
	api.HandleFunc("/metrics/health", s.handleHealth)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(withNoCache(root))
}
