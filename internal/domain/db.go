package domain

import "context"

// Database defines lifecycle operations for the underlying store. Each
// implementation owns its own migration steps and strategy.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}

// Store is the full storage facade: every capability interface plus the
// database lifecycle, behind one constructible object.
type Store interface {
	Database

	Users() UserStore
	Accounts() AccountStore
	Transactions() TransactionStore
}
