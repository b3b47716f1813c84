package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN           string
	MaxRetries    int
	RetryInterval time.Duration
}

// LoadDBConfig loads database configuration from environment variables.
// DATABASE_URL wins over the individual DB_* variables when set.
func LoadDBConfig() (*DBConfig, error) {
	cfg := &DBConfig{MaxRetries: 5, RetryInterval: 5 * time.Second}

	if url := strings.TrimSpace(os.Getenv("DATABASE_URL")); url != "" {
		cfg.DSN = url
		return cfg, nil
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	sslMode := getEnv("DB_SSLMODE", "disable")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	cfg.DSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbHost, dbPort, dbUser, dbPassword, dbName, sslMode)
	return cfg, nil
}

// ConnectDB establishes a connection pool to PostgreSQL, retrying a few times
// while the database comes up.
func ConnectDB(ctx context.Context, cfg *DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var pool *pgxpool.Pool
	for i := 0; i < attempts; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				slog.InfoContext(ctx, "connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		slog.WarnContext(ctx, "failed to connect to database",
			"attempt", i+1, "max_attempts", attempts, "retry_in", cfg.RetryInterval, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", attempts, err)
}
