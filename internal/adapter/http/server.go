package adapthttp

import (
	"net/http"

	"weightlog/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig carries the single-sign-on setup. Enabled is false when no
// issuer is configured, in which case the SSO routes answer 404.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	weight      *app.WeightService
	analytics   *app.AnalyticsService
	profile     *app.ProfileService
	authSvc     *app.AuthService
	oidcConfig  OIDCConfig
	webDir      string
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(ws *app.WeightService, as *app.AnalyticsService, ps *app.ProfileService, auth *app.AuthService, webDir string) *Server {
	return &Server{weight: ws, analytics: as, profile: ps, authSvc: auth, webDir: webDir}
}

// WithOIDC enables single sign-on via the given provider.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithoutAuth disables session validation. Requests run as a fixed local
// user. Intended for tests.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	protected := http.NewServeMux()
	protected.HandleFunc("/weight", s.handleWeight)
	protected.HandleFunc("/weight/recent", s.handleWeightRecent)
	protected.HandleFunc("/weight/undo-last", s.handleWeightUndoLast)
	protected.HandleFunc("/weight/update", s.handleWeightUpdate)

	protected.HandleFunc("/analytics/trend", s.handleTrendAnalysis)
	protected.HandleFunc("/analytics/projection", s.handleProjection)

	protected.HandleFunc("/profile", s.handleProfile)
	protected.HandleFunc("/profile/goal", s.handleProfileGoal)
	protected.HandleFunc("/profile/unit", s.handleProfileUnit)

	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return loggingMiddleware(withNoCache(root))
}
