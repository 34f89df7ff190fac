package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/wichtel-api-go/pkg/auth"
	"github.com/arnavshah/wichtel-api-go/pkg/config"
	"github.com/arnavshah/wichtel-api-go/pkg/database"
	"github.com/arnavshah/wichtel-api-go/pkg/handlers"
	"github.com/arnavshah/wichtel-api-go/pkg/metrics"
	"github.com/arnavshah/wichtel-api-go/pkg/router"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if p := config.LoadEnv(); p != "" {
		logger.Info("loaded environment file", "path", p)
	}
	cfg := config.FromEnv()

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("database setup failed", "error", err)
		os.Exit(1)
	}

	created, err := auth.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		logger.Error("could not create admin user", "error", err)
		os.Exit(1)
	}
	if created {
		logger.Info("default admin user created", "username", cfg.AdminUsername)
	}

	h := handlers.New(db, auth.NewSigner(cfg.JWTSecret, cfg.MasterSecret), metrics.NewCollector(), logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("server starting", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("could not run server", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
