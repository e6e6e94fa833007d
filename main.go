package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/HolidayLinux/moneycalcbase/internal/config"
	"github.com/HolidayLinux/moneycalcbase/internal/repository/sqlite"
	"github.com/HolidayLinux/moneycalcbase/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	db, err := sqlite.Open(ctx, sqlite.Config{
		Path:     cfg.Database.Path,
		InMemory: cfg.Database.InMemory,
		Migrate:  cfg.Database.Migrate,
	})
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, err := db.SchemaVersion(ctx)
	if err != nil {
		slog.Error("failed to read schema version", "error", err)
		os.Exit(1)
	}

	ledger := service.NewLedgerService(db.Users(), db.Accounts(), db.Transactions())

	users, err := ledger.Users(ctx)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		os.Exit(1)
	}

	slog.Info("store ready",
		"path", storeTarget(cfg.Database),
		"schema_version", version,
		"users", len(users),
	)
}

func storeTarget(cfg config.DatabaseConfig) string {
	if cfg.InMemory {
		return ":memory:"
	}
	return cfg.Path
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
