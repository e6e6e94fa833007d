package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/HolidayLinux/moneycalcbase/internal/domain"
	"github.com/HolidayLinux/moneycalcbase/internal/repository/sqlite/migrations"
)

// dateFormat is how Users and Accounts creation dates are written, matching
// the DATE columns in the schema. The driver hands DATE values back as
// time.Time, so reads scan them directly. Ledger records keep full
// timestamps.
const dateFormat = "2006-01-02"

// Config selects the physical store and whether to bring its schema up to
// date during Open.
type Config struct {
	// Path is the database file. Ignored when InMemory is set.
	Path string

	// InMemory backs the store with a private in-memory database.
	InMemory bool

	// Migrate applies all pending schema migrations during Open.
	Migrate bool
}

// DB is the storage facade: it owns the single connection behind a guard
// and exposes the capability stores built on it.
type DB struct {
	sqlDB *sql.DB
	guard *guard

	users        *UserRepository
	accounts     *AccountRepository
	transactions *TransactionRepository
}

// Open opens or creates the configured SQLite database and wires the
// capability stores. Failure to open or to migrate is fatal: no DB is
// returned.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	dsn := cfg.Path
	if cfg.InMemory {
		dsn = ":memory:"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", domain.ErrStoreUnavailable, err)
	}

	// One physical connection, kept alive for the lifetime of the store.
	// The guard serializes access; the pool must never grow past it.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	// WAL reduces writer stalls for file databases; SQLite silently keeps
	// the memory journal for in-memory ones.
	if _, err := sqlDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: enable WAL mode: %v", domain.ErrStoreUnavailable, err)
	}

	// Foreign keys stay unenforced: account ownership and ledger references
	// are soft. Orphaned accounts remain readable and ledger records outlive
	// their account.

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: ping database: %v", domain.ErrStoreUnavailable, err)
	}

	g := newGuard(sqlDB)
	db := &DB{
		sqlDB:        sqlDB,
		guard:        g,
		users:        &UserRepository{g: g},
		accounts:     &AccountRepository{g: g},
		transactions: &TransactionRepository{g: g},
	}

	if cfg.Migrate {
		if err := db.Migrate(ctx); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	return db, nil
}

// Migrate validates the shipped migration list and applies every pending
// step. Re-running against a current database is a no-op.
func (db *DB) Migrate(ctx context.Context) error {
	err := db.guard.run(ctx, func(conn *sql.DB) error {
		return migrations.New(migrations.Steps).Run(ctx, conn)
	})
	if err != nil {
		if errors.Is(err, domain.ErrLockUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrMigrationFailed, err)
	}
	return nil
}

// SchemaVersion returns the highest applied migration step.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := db.guard.run(ctx, func(conn *sql.DB) error {
		v, err := migrations.New(migrations.Steps).Version(ctx, conn)
		version = v
		return err
	})
	return version, err
}

// Close releases the physical connection.
func (db *DB) Close() error {
	return db.sqlDB.Close()
}

// Users returns the user capability store.
func (db *DB) Users() domain.UserStore { return db.users }

// Accounts returns the account capability store.
func (db *DB) Accounts() domain.AccountStore { return db.accounts }

// Transactions returns the ledger capability store.
func (db *DB) Transactions() domain.TransactionStore { return db.transactions }

// queryFailed tags low-level statement and mapping errors as
// domain.ErrQueryFailed while keeping the driver error in the chain.
func queryFailed(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrQueryFailed, err))
}

// isUniqueConstraintError checks for a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return containsString(msg, "UNIQUE constraint failed") ||
		containsString(msg, "unique constraint")
}

func containsString(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
