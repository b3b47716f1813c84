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

	"status_board/internal/config"
	"status_board/internal/logging"
	"status_board/internal/migrations"
	"status_board/internal/repository"
	"status_board/internal/router"
	"status_board/internal/service"
	"status_board/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	envLoaded := config.LoadEnvFile()

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if !envLoaded {
		logger.Info("no .env file found, relying on environment variables")
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		logger.Error("failed to load DB config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := migrations.Up(ctx, dbPool); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours)

	userRepo := repository.NewUserRepository(dbPool)
	statusRepo := repository.NewStatusRepository(dbPool)

	authService := service.NewAuthService(userRepo, jwtUtil)
	statusService := service.NewStatusService(statusRepo, userRepo, cfg.StatusOptions)

	engine := router.New(router.Deps{
		AuthService:   authService,
		StatusService: statusService,
		JWTUtil:       jwtUtil,
		DB:            dbPool,
		Logger:        logger,
		CORSOrigin:    cfg.CORSAllowedOrigin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort, "status_options", cfg.StatusOptions.Values())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exiting")
}
