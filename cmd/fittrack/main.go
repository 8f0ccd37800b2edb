package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	adapthttp "fittrack/internal/adapter/http"
	"fittrack/internal/adapter/postgres"
	"fittrack/internal/app"
	"fittrack/internal/config"
	"fittrack/internal/token"
)

func main() {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("config")
	}

	log := newLogger(cfg.LogFormat)

	db, err := postgres.Open(cfg.DatabaseURL, log, cfg.SQLEcho)
	if err != nil {
		log.Fatal().Err(err).Msg("db open")
	}
	defer func() { _ = db.Close() }()

	tokens, err := token.New(cfg.SecretKey, cfg.TokenAlg, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer")
	}

	users := postgres.NewUserRepo(db)
	types := postgres.NewWorkoutTypeRepo(db)
	exercises := postgres.NewExerciseRepo(db)
	sessions := postgres.NewWorkoutSessionRepo(db)
	logs := postgres.NewExerciseLogRepo(db)
	measurements := postgres.NewBodyMeasurementRepo(db)
	goals := postgres.NewFitnessGoalRepo(db)
	stats := postgres.NewStatsRepo(db)

	srv := adapthttp.New(
		log,
		app.NewAuthService(users, tokens),
		app.NewUserService(users),
		app.NewCatalogService(types, exercises, logs),
		app.NewWorkoutService(sessions, logs, exercises),
		app.NewMeasurementService(measurements),
		app.NewGoalService(goals),
		app.NewStatsService(stats),
		ssoConfig(cfg, log),
	)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Msg("listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("serve")
	}
	log.Info().Msg("stopped")
}

func newLogger(format string) zerolog.Logger {
	if format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// ssoConfig builds the optional OIDC login wiring. Returns nil when the
// OIDC environment is not fully configured.
func ssoConfig(cfg *config.Config, log zerolog.Logger) *adapthttp.SSOConfig {
	if !cfg.SSOEnabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		log.Fatal().Err(err).Msg("oidc provider")
	}

	return &adapthttp.SSOConfig{
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			RedirectURL:  cfg.OIDCRedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}
}
