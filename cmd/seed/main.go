// Command seed populates the status board with demo users and statuses,
// creates a single account with -user/-password, or wipes everything with
// -delete-all. It talks to the database directly.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"status_board/internal/config"
	"status_board/internal/logging"
	"status_board/internal/migrations"
	"status_board/internal/repository"
	"status_board/internal/service"
)

func main() {
	deleteAll := flag.Bool("delete-all", false, "delete every user and status instead of seeding")
	skipStatuses := flag.Bool("skip-statuses", false, "seed users only")
	username := flag.String("user", "", "create this single user instead of seeding")
	password := flag.String("password", "", "password for -user")
	flag.Parse()

	config.LoadEnvFile()
	logger := logging.New(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	users, err := loadSeedUsers(os.Getenv("SEED_USERS"))
	if err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		logger.Error("failed to load DB config", "error", err)
		os.Exit(1)
	}
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

	userRepo := repository.NewUserRepository(dbPool)

	if *username != "" {
		// no tokens are minted here, so no issuer
		auth := service.NewAuthService(userRepo, nil)
		if err := createAccount(ctx, auth, logger, *username, *password); err != nil {
			logger.Error("account creation failed", "error", err)
			os.Exit(1)
		}
		return
	}

	options, fromEnv := config.LoadStatusOptions()
	if !fromEnv {
		logger.Info("STATUS_OPTIONS not set, using default status options", "options", options.Values())
	}

	seeder := service.NewSeedService(userRepo, repository.NewStatusRepository(dbPool), options, logger)

	if *deleteAll {
		n, err := seeder.DeleteAll(ctx)
		if err != nil {
			logger.Error("delete failed", "error", err)
			os.Exit(1)
		}
		logger.Info("all users deleted", "count", n)
		return
	}

	report := seeder.SeedUsers(ctx, users)
	logger.Info("users seeded", "report", report.String())

	if !*skipStatuses {
		report = seeder.SeedStatuses(ctx, service.DemoStatuses)
		logger.Info("statuses seeded", "report", report.String())
	}
	logger.Info("seeding completed")
}
