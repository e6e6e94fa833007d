package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType tags the direction of a money movement. Only Income and
// Outcome are meaningful; the zero value is invalid and rejected.
type PaymentType int

const (
	PaymentIncome  PaymentType = 1
	PaymentOutcome PaymentType = 2
)

// Valid reports whether t is one of the two meaningful payment types.
func (t PaymentType) Valid() bool {
	return t == PaymentIncome || t == PaymentOutcome
}

func (t PaymentType) String() string {
	switch t {
	case PaymentIncome:
		return "income"
	case PaymentOutcome:
		return "outcome"
	default:
		return "unknown"
	}
}

// Transaction is one immutable ledger record. Amount is always the
// non-negative magnitude; the direction lives in Type. Records are inserted
// once and never updated or deleted; corrections are new offsetting
// records.
type Transaction struct {
	ID          string
	Amount      decimal.Decimal
	Description string
	UserID      int64
	AccountID   int64
	Type        PaymentType
	Target      string
	CreatedAt   time.Time
}

// TransactionStore executes money movements and reads the ledger.
type TransactionStore interface {
	// Execute atomically applies the payment to the account's balance and
	// appends the corresponding ledger record. Either both effects persist
	// or neither does. The account value contributes identifying fields
	// only; the balance is re-read inside the store's own transaction, so
	// a stale snapshot cannot lose concurrent movements.
	Execute(ctx context.Context, account *Account, payment Payment) (*Transaction, error)

	// ListByAccount returns the account's ledger records in store-native
	// row order.
	ListByAccount(ctx context.Context, accountID int64) ([]Transaction, error)
}
