package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/HolidayLinux/moneycalcbase/internal/domain"
)

// LedgerService is the application-facing surface over the capability
// stores: it validates input and delegates. It holds no state of its own,
// so any store implementation, the SQLite one or an in-memory fake, can sit
// behind it.
type LedgerService struct {
	users        domain.UserStore
	accounts     domain.AccountStore
	transactions domain.TransactionStore
}

// NewLedgerService creates a LedgerService over the given stores.
func NewLedgerService(users domain.UserStore, accounts domain.AccountStore, transactions domain.TransactionStore) *LedgerService {
	return &LedgerService{users: users, accounts: accounts, transactions: transactions}
}

// CreateUser registers a user with the given display name and external
// number.
func (s *LedgerService) CreateUser(ctx context.Context, name, number string) (*domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(number) == "" {
		return nil, fmt.Errorf("%w: number is required", domain.ErrInvalidInput)
	}
	return s.users.Add(ctx, domain.AddUserCommand{Name: name, Number: number})
}

// Users returns all registered users.
func (s *LedgerService) Users(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// UserByNumber resolves a user by their external number.
func (s *LedgerService) UserByNumber(ctx context.Context, number string) (*domain.User, error) {
	return s.users.GetByNumber(ctx, number)
}

// RemoveUser deletes a user by id. Removing an unknown id is a no-op.
func (s *LedgerService) RemoveUser(ctx context.Context, id int64) error {
	return s.users.DeleteByID(ctx, id)
}

// OpenAccount creates a named money pool for the user.
func (s *LedgerService) OpenAccount(ctx context.Context, userID int64, name string, initial decimal.Decimal) (*domain.Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: account name is required", domain.ErrInvalidInput)
	}
	return s.accounts.Add(ctx, domain.AddAccountCommand{
		UserID:         userID,
		Name:           name,
		InitialBalance: initial,
	})
}

// AccountFor returns the user's account.
func (s *LedgerService) AccountFor(ctx context.Context, userID int64) (*domain.Account, error) {
	return s.accounts.GetByUser(ctx, userID)
}

// CloseAccount removes the account. The account's ledger records stay: the
// history is immutable even when the pool it describes is gone.
func (s *LedgerService) CloseAccount(ctx context.Context, account *domain.Account) error {
	return s.accounts.Delete(ctx, account)
}

// Apply records a money movement against the account. The payment type must
// be Income or Outcome and the amount non-negative; a zero amount is
// accepted as an audit-only ledger entry.
func (s *LedgerService) Apply(ctx context.Context, account *domain.Account, payment domain.Payment) (*domain.Transaction, error) {
	if !payment.Type.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownPaymentType, payment.Type)
	}
	if payment.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", domain.ErrInvalidInput)
	}
	return s.transactions.Execute(ctx, account, payment)
}

// History returns the account's ledger records.
func (s *LedgerService) History(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	return s.transactions.ListByAccount(ctx, accountID)
}
