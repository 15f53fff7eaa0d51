package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"expensetracker/internal/cache"
	"expensetracker/internal/cli"
	apphttp "expensetracker/internal/http"
	"expensetracker/internal/log"
	"expensetracker/internal/session"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	sessions := session.NewManager(session.Config{
		CookieName:   cfg.SessionCookie,
		TTL:          cfg.SessionTTL,
		MaxSessions:  cfg.SessionMax,
		CookieSecure: cfg.CookieSecure,
		Currency:     cfg.CurrencySymbol,
	}, session.WithLogger(logger.WithComponent(log.ComponentSession)))

	janitor := cache.NewManager()
	janitor.Register(sessions)

	srv := apphttp.NewServer(":"+cfg.Port, sessions, apphttp.Options{
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		TrustedProxies:     cfg.TrustedProxies,
	})
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting expense tracker",
			"port", cfg.Port,
			"session_ttl", cfg.SessionTTL.String(),
			"session_max", cfg.SessionMax,
			log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		janitor.StartCleanup(cfg.SessionCleanupInterval)
		<-gctx.Done()
		janitor.Stop()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully", "sessions", sessions.Count())
}
