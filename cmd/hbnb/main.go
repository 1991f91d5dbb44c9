package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dukerupert/hbnb/internal/backend"
	"github.com/dukerupert/hbnb/internal/config"
	"github.com/dukerupert/hbnb/internal/logging"
	"github.com/dukerupert/hbnb/internal/server"
	"github.com/dukerupert/hbnb/internal/session"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	var sealer *session.Sealer
	if cfg.CookieSecret != "" {
		sealer, err = session.NewSealer(cfg.CookieSecret, cfg.CookieSalt)
		if err != nil {
			return fmt.Errorf("cookie sealer: %w", err)
		}
	} else {
		logger.Warn("HBNB_COOKIE_SECRET not set, session cookies hold the raw token")
	}
	store := session.NewCookieStore(sealer, cfg.SecureCookies)

	client := backend.NewClient(cfg.APIBase,
		backend.WithTimeout(cfg.APITimeout),
		backend.WithLogger(logger.With("component", "backend")),
	)

	srv, err := server.New(client, store, logger, server.WithBehindProxy(cfg.BehindProxy))
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout(),
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("hbnb web starting", "addr", httpServer.Addr, "api", client.BaseURL())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
