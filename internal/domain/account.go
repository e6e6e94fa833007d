package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Account is a user's named money pool. UserID is a soft reference: the
// store never requires the owning user to exist at read time.
type Account struct {
	ID        int64
	UserID    int64
	Name      string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	// Add inserts a new account and returns it with the store-assigned id
	// and creation date.
	Add(ctx context.Context, cmd AddAccountCommand) (*Account, error)

	// Delete removes the account by id. Deleting an absent account is not
	// an error.
	Delete(ctx context.Context, account *Account) error

	// SetBalance unconditionally overwrites the account's balance. It is a
	// raw write used by the money-movement path; callers wanting a ledger
	// trail go through TransactionStore.Execute instead.
	SetBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error

	// List returns all accounts in store-native row order.
	List(ctx context.Context) ([]Account, error)

	// GetByUser returns the single account owned by the given user id.
	// Zero or plural matches both yield ErrNotFound: the schema does not
	// enforce one account per user, so plural rows are a data-integrity
	// condition to fix upstream, not something to disambiguate here.
	GetByUser(ctx context.Context, userID int64) (*Account, error)
}
