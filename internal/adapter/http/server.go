package adapthttp

import (
	"context"
	"log/slog"
	"net/http"

	"hydration/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/oauth2"
)

// OIDCConfig holds the SSO provider wiring. Enabled is false when no issuer
// is configured.
type OIDCConfig struct {
	Enabled      bool
	OAuth2Config *oauth2.Config
	Provider     *oidc.Provider
}

// Services bundles the application services the adapter drives.
type Services struct {
	Auth          *app.AuthService
	Tokens        *app.TokenService
	Profiles      *app.ProfileService
	Intakes       *app.IntakeService
	Summaries     *app.SummaryService
	Streaks       *app.StreakService
	Analytics     *app.AnalyticsService
	Weather       *app.WeatherService
	Reminders     *app.ReminderService
	Achievements  *app.AchievementService
	Subscriptions *app.SubscriptionService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc         Services
	log         *slog.Logger
	webDir      string
	oidcConfig  OIDCConfig
	forwardAuth bool
	disableAuth bool
	healthCheck func(ctx context.Context) error

	// routes is the set of registered API paths, used as metric labels.
	routes map[string]struct{}
}

// New creates a Server wired to the given application services.
func New(svc Services, webDir string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, log: log, webDir: webDir}
}

// WithOIDC enables SSO login through the given provider.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithForwardAuth trusts the Remote-User header set by an authenticating proxy.
func (s *Server) WithForwardAuth() *Server {
	s.forwardAuth = true
	return s
}

// WithHealthCheck makes /api/health report the result of check.
func (s *Server) WithHealthCheck(check func(ctx context.Context) error) *Server {
	s.healthCheck = check
	return s
}

// WithoutAuth disables authentication and serves every request as user 1.
// Intended for tests and local development.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	s.routes = make(map[string]struct{})
	handle := func(pattern string, h http.Handler) {
		api.Handle(pattern, h)
		s.routes["/api"+pattern] = struct{}{}
	}
	public := func(pattern string, h http.HandlerFunc) {
		handle(pattern, h)
	}
	public("/health", s.handleHealth)
	public("/config", s.handleConfig)

	public("/auth/register", s.handleRegister)
	public("/auth/login", s.handleLogin)
	public("/auth/logout", s.handleLogout)
	public("/auth/sso/login", s.handleSSOLogin)
	public("/auth/sso/callback", s.handleSSOCallback)

	protected := func(pattern string, h http.HandlerFunc) {
		handle(pattern, s.authMiddleware(h))
	}
	protected("/auth/token", s.handleIssueToken)
	protected("/account", s.handleAccount)

	protected("/profile", s.handleProfile)
	protected("/intake", s.handleIntake)
	protected("/intake/recent", s.handleIntakeRecent)
	protected("/intake/day", s.handleIntakeDay)
	protected("/today", s.handleToday)
	protected("/streak", s.handleStreak)
	protected("/summaries", s.handleSummaries)

	protected("/analytics", s.handleAnalytics)
	protected("/weather/adjustment", s.handleWeatherAdjustment)
	protected("/reminder", s.handleReminder)
	protected("/reminder/next", s.handleReminderNext)
	protected("/achievements", s.handleAchievements)
	protected("/subscription", s.handleSubscription)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", withNoCache(api)))
	root.Handle("/metrics", promhttp.Handler())
	root.Handle("/", withNoCache(spaFromDisk(s.webDir)))

	return s.loggingMiddleware(root)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.healthCheck != nil {
		if err := s.healthCheck(r.Context()); err != nil {
			s.log.WarnContext(r.Context(), "health check failed", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
