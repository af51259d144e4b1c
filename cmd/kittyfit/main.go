package main

import (
	"context"
	"errors"
	"net/http"

	adapthttp "kittyfit/internal/adapter/http"
	"kittyfit/internal/adapter/memory"
	"kittyfit/internal/adapter/postgres"
	"kittyfit/internal/app"
	"kittyfit/internal/config"
	"kittyfit/internal/domain"
	"kittyfit/internal/logger"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(0).Fatal("failed to load config", "error", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx := context.Background()

	var (
		accounts domain.AccountRepository
		profiles domain.ProfileRepository
		logs     domain.WorkoutLogRepository
		plans    domain.WorkoutPlanRepository
		identity domain.IdentityProvider
	)

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("failed to open database", "error", err)
		}
		defer func() { _ = db.Close() }()

		accounts, profiles, logs = db, db, db
		plans = db.Plans()
		identity = db.Identity(cfg.DeviceID)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory storage")
		store := memory.NewStore()
		accounts, profiles, logs = store, store, store
		plans = store.Plans()
		identity = store
	}

	sessions := app.NewSessionStore(memory.NewKV(), identity, log)

	// The reconciliation must finish before the first request observes the
	// state, so Start runs synchronously here rather than alongside serving.
	sessions.Start(ctx)

	guard := app.NewGuard(sessions, cfg.RedirectDelay)
	authSvc := app.NewAuthService(accounts, profiles, identity, sessions, log)
	workoutSvc := app.NewWorkoutLogService(logs, plans)
	metricsSvc := app.NewMetricsService(logs)
	progressSvc := app.NewProgressService(profiles, sessions, log)

	oidcCfg := adapthttp.OIDCConfig{}
	if cfg.OIDC.Enabled {
		provider, err := oidc.NewProvider(ctx, cfg.OIDC.Issuer)
		if err != nil {
			log.Fatal("failed to set up sso provider", "error", err, "issuer", cfg.OIDC.Issuer)
		}
		oidcCfg = adapthttp.OIDCConfig{
			Enabled:  true,
			Provider: provider,
			OAuth2Config: &oauth2.Config{
				ClientID:     cfg.OIDC.ClientID,
				ClientSecret: cfg.OIDC.ClientSecret,
				RedirectURL:  cfg.OIDC.RedirectURL,
				Endpoint:     provider.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			},
		}
	}

	srv := adapthttp.New(sessions, guard, authSvc, workoutSvc, metricsSvc, progressSvc, oidcCfg, log, cfg.SessionCookieMaxAge)

	log.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed", "error", err)
	}
}
