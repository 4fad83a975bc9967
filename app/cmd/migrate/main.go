package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"product-service/app/config"
	"product-service/app/driver/postgres/migrations"
	"product-service/app/utils/database"
	"product-service/app/utils/logger"
	"product-service/app/utils/migration"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command (up, down, status)")
		steps   = flag.Int("steps", 1, "Number of steps for down migration")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := cfg.LogLevel
	if *verbose {
		logLevel = "debug"
	}

	appLogger, err := logger.New(logLevel)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	dbConn, err := database.NewConnection(database.ConfigFrom(cfg), appLogger)
	if err != nil {
		appLogger.Error("Failed to create database connection", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	migrator := migration.NewMigrator(dbConn.DB(), appLogger, migrations.FS)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, migrator, *command, *steps, appLogger); err != nil {
		appLogger.Error("Migration command failed", "command", *command, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, migrator *migration.Migrator, command string, steps int, log *slog.Logger) error {
	start := time.Now()

	switch command {
	case "up":
		applied, err := migrator.Up(ctx)
		if err != nil {
			return err
		}
		logger.LogDuration(log, start, "migrate_up", "applied", applied)

	case "down":
		if steps <= 0 {
			steps = 1
		}
		for i := 0; i < steps; i++ {
			if err := migrator.Down(ctx); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		logger.LogDuration(log, start, "migrate_down", "steps", steps)

	case "status":
		statuses, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied " + s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%03d  %-30s %s\n", s.Version, s.Name, state)
		}

	default:
		return fmt.Errorf("unknown command %q (available: up, down, status)", command)
	}

	return nil
}
