package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	adapthttp "weightlog/internal/adapter/http"
	"weightlog/internal/adapter/postgres"
	"weightlog/internal/app"
	"weightlog/internal/logging"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

func main() {
	logging.Setup(logging.Config{
		Level: env("LOG_LEVEL", "info"),
		JSON:  os.Getenv("LOG_JSON") == "true",
		File:  os.Getenv("LOG_FILE"),
	})

	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		logrus.Fatal("DATABASE_URL is required")
	}

	db, err := postgres.Open(connStr)
	if err != nil {
		logrus.WithError(err).Fatal("db open")
	}
	defer func() { _ = db.Close() }()

	sessionRepo := postgres.NewSessionRepo(db)
	go expireSessions(context.Background(), sessionRepo)

	weightSvc := app.NewWeightService(db)
	analyticsSvc := app.NewAnalyticsService(db, db)
	profileSvc := app.NewProfileService(db)
	authSvc := app.NewAuthService(db, sessionRepo)

	srv := adapthttp.New(weightSvc, analyticsSvc, profileSvc, authSvc, webDir)

	if issuer := os.Getenv("OIDC_ISSUER"); issuer != "" {
		provider, err := oidc.NewProvider(context.Background(), issuer)
		if err != nil {
			logrus.WithError(err).Fatal("oidc provider")
		}
		srv = srv.WithOIDC(adapthttp.OIDCConfig{
			Enabled:  true,
			Provider: provider,
			OAuth2Config: oauth2.Config{
				ClientID:     os.Getenv("OIDC_CLIENT_ID"),
				ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
				RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
				Endpoint:     provider.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
			},
		})
		logrus.WithField("issuer", issuer).Info("sso enabled")
	}

	logrus.WithField("addr", addr).Info("listening")
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatal(err)
	}
}

// expireSessions periodically removes expired sessions from the store.
func expireSessions(ctx context.Context, sessions *postgres.SessionRepo) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sessions.DeleteExpired(ctx); err != nil {
				logrus.WithError(err).Warn("session cleanup")
			}
		}
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
