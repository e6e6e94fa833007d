package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// Engine applies an ordered list of migration steps to a database. Step N
// (1-based) is steps[N-1]; applied versions are tracked in a
// schema_migrations table so re-running against a current database is a
// no-op.
type Engine struct {
	steps []Migration
}

// New creates an Engine over the given step list.
func New(steps []Migration) *Engine {
	return &Engine{steps: steps}
}

// Validate checks the step list for internal consistency: at least one step,
// and no semantically empty up action. A failure here is a defect in the
// shipped list, not a runtime condition, and must keep the store from
// becoming usable.
func (e *Engine) Validate() error {
	if len(e.steps) == 0 {
		return fmt.Errorf("empty migration list")
	}
	for i, step := range e.steps {
		if strings.TrimSpace(step.Up) == "" {
			return fmt.Errorf("migration %d: empty up action", i+1)
		}
	}
	return nil
}

// Run applies every step above the database's recorded version, in order,
// each inside its own transaction. Steps are never retried: a failure aborts
// the run and leaves the recorded version at the last step that committed.
func (e *Engine) Run(ctx context.Context, db *sql.DB) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validate migrations: %w", err)
	}

	if err := ensureMigrationsTable(ctx, db); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	current, err := e.Version(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if current > len(e.steps) {
		return fmt.Errorf("database at version %d, but only %d steps are known", current, len(e.steps))
	}

	for version := current + 1; version <= len(e.steps); version++ {
		if err := e.applyUp(ctx, db, version); err != nil {
			return fmt.Errorf("apply migration %d: %w", version, err)
		}
		slog.Info("migration applied", "version", version)
	}

	return nil
}

// Rollback reverts steps down to (and excluding) target, newest first. It
// fails on any step in the range that has no down action.
func (e *Engine) Rollback(ctx context.Context, db *sql.DB, target int) error {
	if target < 0 || target > len(e.steps) {
		return fmt.Errorf("invalid rollback target %d", target)
	}

	current, err := e.Version(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for version := current; version > target; version-- {
		if err := e.applyDown(ctx, db, version); err != nil {
			return fmt.Errorf("revert migration %d: %w", version, err)
		}
		slog.Info("migration reverted", "version", version)
	}

	return nil
}

// Version returns the highest applied step number, or 0 for a fresh
// database.
func (e *Engine) Version(ctx context.Context, db *sql.DB) (int, error) {
	if err := ensureMigrationsTable(ctx, db); err != nil {
		return 0, err
	}
	var version int
	err := db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

func ensureMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func (e *Engine) applyUp(ctx context.Context, db *sql.DB, version int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, e.steps[version-1].Up); err != nil {
		return fmt.Errorf("execute sql: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	return tx.Commit()
}

func (e *Engine) applyDown(ctx context.Context, db *sql.DB, version int) error {
	down := e.steps[version-1].Down
	if strings.TrimSpace(down) == "" {
		return fmt.Errorf("no down action")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, down); err != nil {
		return fmt.Errorf("execute sql: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = ?", version); err != nil {
		return fmt.Errorf("unrecord migration: %w", err)
	}

	return tx.Commit()
}
