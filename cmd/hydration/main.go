package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "hydration/internal/adapter/http"
	"hydration/internal/adapter/memory"
	"hydration/internal/adapter/postgres"
	"hydration/internal/adapter/weather"
	"hydration/internal/app"
	"hydration/internal/config"
	"hydration/internal/domain"
	"hydration/internal/observability"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// store is the full set of persistence ports one backend provides.
type store interface {
	domain.UserRepository
	domain.ProfileRepository
	domain.IntakeRepository
	domain.SummaryRepository
	domain.ReminderRepository
	domain.AchievementRepository
	domain.SubscriptionRepository
}

const sessionSweepInterval = time.Hour

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, sessions, closer, err := openStore(cfg)
	if err != nil {
		logger.Error("store open failed", "store", cfg.Store, "err", err)
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	var provider domain.WeatherProvider
	if cfg.WeatherEnabled() {
		provider = weather.NewClient(cfg.OpenWeatherBaseURL, cfg.OpenWeatherAPIKey, cfg.WeatherTimeout)
	}

	tz := app.NewTimezoneResolver(db, cfg.DefaultTimezone)
	streaks := app.NewStreakService(db, tz)
	svc := adapthttp.Services{
		Auth:          app.NewAuthService(db, sessions).WithSessionTTL(cfg.SessionTTL),
		Tokens:        app.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL),
		Profiles:      app.NewProfileService(db),
		Intakes:       app.NewIntakeService(db, tz),
		Summaries:     app.NewSummaryService(db, db, db, streaks, tz),
		Streaks:       streaks,
		Analytics:     app.NewAnalyticsService(db, db, db, tz),
		Weather:       app.NewWeatherService(provider, db),
		Reminders:     app.NewReminderService(db, tz),
		Achievements:  app.NewAchievementService(db, db),
		Subscriptions: app.NewSubscriptionService(db),
	}

	srv := adapthttp.New(svc, cfg.WebDir, logger)
	if p, ok := db.(interface{ Ping(context.Context) error }); ok {
		srv = srv.WithHealthCheck(p.Ping)
	}
	if cfg.ForwardAuth {
		srv = srv.WithForwardAuth()
	}
	if cfg.SSOEnabled() {
		oidcCfg, err := newOIDC(ctx, cfg)
		if err != nil {
			logger.Error("oidc provider discovery failed", "issuer", cfg.OIDCIssuer, "err", err)
			os.Exit(1)
		}
		srv = srv.WithOIDC(oidcCfg)
	}

	go sweepSessions(ctx, svc.Auth, logger)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.Addr, "store", cfg.Store, "weather", cfg.WeatherEnabled(), "sso", cfg.SSOEnabled())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
	logger.Info("stopped")
}

func openStore(cfg config.Config) (store, domain.SessionRepository, io.Closer, error) {
	if cfg.Store == config.StoreMemory {
		db := memory.New()
		return db, db.NewSessionRepo(), io.NopCloser(nil), nil
	}
	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	return db, postgres.NewSessionRepo(db), db, nil
}

func newOIDC(ctx context.Context, cfg config.Config) (adapthttp.OIDCConfig, error) {
	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			RedirectURL:  cfg.OIDCRedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}

func sweepSessions(ctx context.Context, auth *app.AuthService, logger *slog.Logger) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := auth.PurgeExpiredSessions(ctx); err != nil {
				logger.Warn("expired session sweep failed", "err", err)
			}
		}
	}
}
