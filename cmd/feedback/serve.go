package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	adapthttp "feedback/internal/adapter/http"
	"feedback/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const sessionPurgeInterval = time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("web-dir", "web", "directory of the static web client, empty to disable")
	_ = v.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("web_dir", serveCmd.Flags().Lookup("web-dir"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.close() }()

	authSvc := app.NewAuthService(st.users, st.sessions)
	prefsSvc := app.NewPreferencesService(st.preferences)
	svc := adapthttp.Services{
		BloodPressure: app.NewBloodPressureService(st.bloodPressures),
		Points:        app.NewPointsService(st.points),
		Weight:        app.NewWeightService(st.weights),
		Preferences:   prefsSvc,
		Charts:        app.NewChartsService(st.weights, st.bloodPressures, st.points),
		Auth:          authSvc,
		Tokens:        app.NewTokenService(cfg.JWTSecret, cfg.TokenValidity),
	}

	opts := adapthttp.Options{
		AppName:          cfg.AppName,
		WebDir:           cfg.WebDir,
		TrustForwardAuth: cfg.TrustForwardAuth,
		Logger:           log,
		Ping:             st.ping,
	}
	if cfg.OIDCEnabled() {
		opts.OIDC, err = adapthttp.NewOIDCConfig(ctx, cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret, cfg.OIDCRedirectURL)
		if err != nil {
			return err
		}
		log.Info("sso enabled", zap.String("issuer", cfg.OIDCIssuer))
	}
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET not set, bearer token authentication disabled")
	}

	go purgeSessions(ctx, authSvc, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           adapthttp.New(svc, opts).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("store", cfg.Store))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func purgeSessions(ctx context.Context, auth *app.AuthService, log *zap.Logger) {
	t := time.NewTicker(sessionPurgeInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := auth.PurgeExpiredSessions(ctx); err != nil {
				log.Error("purge sessions", zap.Error(err))
			}
		}
	}
}
