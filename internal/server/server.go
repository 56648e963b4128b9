// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server wires configuration, storage, services, and HTTP together.
package server

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

	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"

	"github.com/fomag/convocatoria-backend/internal/config"
	"github.com/fomag/convocatoria-backend/internal/database"
	"github.com/fomag/convocatoria-backend/internal/i18n"
	"github.com/fomag/convocatoria-backend/internal/repository"
	"github.com/fomag/convocatoria-backend/internal/services/acceso"
	"github.com/fomag/convocatoria-backend/internal/services/email"
	"github.com/fomag/convocatoria-backend/internal/services/password"
	"github.com/fomag/convocatoria-backend/internal/services/token"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.NewFromCLI(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	// Repository and services
	repo := repository.New(db)

	tokens, err := token.NewService(&cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	var notifier acceso.Notifier
	mailer := email.NewService(&cfg.SMTP)
	if mailer.Enabled() {
		notifier = mailer
	} else {
		slog.Info("outgoing mail disabled, reset notifications will be skipped")
	}

	accesoSvc := acceso.NewService(repo, password.NewHasher(), notifier, &cfg.Auth)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg, tokens)
	setupRoutes(e, repo, accesoSvc, tokens)

	return startWithGracefulShutdown(ctx, e, cfg)
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("server running", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
