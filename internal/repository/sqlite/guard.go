package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/HolidayLinux/moneycalcbase/internal/domain"
)

// guard owns exclusive access to the single physical connection. SQLite is
// not assumed safe for concurrent statement execution on one handle, so
// every operation, reads included, goes through run. No component may hold
// the *sql.DB outside a borrowed unit of work.
type guard struct {
	sem chan struct{}
	db  *sql.DB
}

func newGuard(db *sql.DB) *guard {
	return &guard{sem: make(chan struct{}, 1), db: db}
}

// run executes fn with exclusive access to the connection, blocking until
// any other in-flight unit of work completes. The connection is released on
// every exit path. A caller whose context ends while waiting gets
// domain.ErrLockUnavailable and never issues its statement.
//
// fn must not call run again: nested acquisition deadlocks.
func (g *guard) run(ctx context.Context, fn func(db *sql.DB) error) error {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domain.ErrLockUnavailable, ctx.Err())
	}
	defer func() { <-g.sem }()

	return fn(g.db)
}
