package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/HolidayLinux/moneycalcbase/internal/domain"
	"github.com/HolidayLinux/moneycalcbase/internal/service"
)

// fakeStore is an in-memory stand-in for the SQLite store. The service only
// depends on the capability interfaces, so tests never need a database.
type fakeStore struct {
	nextUserID    int64
	nextAccountID int64
	users         []domain.User
	accounts      []domain.Account
	records       []domain.Transaction
}

var (
	_ domain.UserStore        = (*fakeStore)(nil)
	_ domain.TransactionStore = (*fakeStore)(nil)
	_ domain.AccountStore     = fakeAccounts{}
)

func (f *fakeStore) Add(ctx context.Context, cmd domain.AddUserCommand) (*domain.User, error) {
	for _, user := range f.users {
		if user.Number == cmd.Number {
			return nil, domain.ErrDuplicateNumber
		}
	}
	f.nextUserID++
	user := domain.User{ID: f.nextUserID, Name: cmd.Name, Number: cmd.Number}
	f.users = append(f.users, user)
	return &user, nil
}

func (f *fakeStore) List(ctx context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), f.users...), nil
}

func (f *fakeStore) GetByNumber(ctx context.Context, number string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Number == number {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) DeleteByID(ctx context.Context, id int64) error {
	for i, user := range f.users {
		if user.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) AddAccount(ctx context.Context, cmd domain.AddAccountCommand) (*domain.Account, error) {
	f.nextAccountID++
	account := domain.Account{
		ID:      f.nextAccountID,
		UserID:  cmd.UserID,
		Name:    cmd.Name,
		Balance: cmd.InitialBalance,
	}
	f.accounts = append(f.accounts, account)
	return &account, nil
}

func (f *fakeStore) Delete(ctx context.Context, account *domain.Account) error {
	for i, a := range f.accounts {
		if a.ID == account.ID {
			f.accounts = append(f.accounts[:i], f.accounts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) SetBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	for i := range f.accounts {
		if f.accounts[i].ID == accountID {
			f.accounts[i].Balance = balance
			return nil
		}
	}
	return nil
}

func (f *fakeStore) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return append([]domain.Account(nil), f.accounts...), nil
}

func (f *fakeStore) GetByUser(ctx context.Context, userID int64) (*domain.Account, error) {
	var matches []domain.Account
	for _, account := range f.accounts {
		if account.UserID == userID {
			matches = append(matches, account)
		}
	}
	if len(matches) != 1 {
		return nil, domain.ErrNotFound
	}
	return &matches[0], nil
}

func (f *fakeStore) Execute(ctx context.Context, account *domain.Account, payment domain.Payment) (*domain.Transaction, error) {
	delta := payment.Amount
	if payment.Type == domain.PaymentOutcome {
		delta = delta.Neg()
	}
	for i := range f.accounts {
		if f.accounts[i].ID == account.ID {
			f.accounts[i].Balance = f.accounts[i].Balance.Add(delta)
			record := domain.Transaction{
				ID:        fmt.Sprintf("fake-%d", len(f.records)+1),
				Amount:    payment.Amount,
				UserID:    account.UserID,
				AccountID: account.ID,
				Type:      payment.Type,
				Target:    payment.Target,
			}
			f.records = append(f.records, record)
			return &record, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	var records []domain.Transaction
	for _, record := range f.records {
		if record.AccountID == accountID {
			records = append(records, record)
		}
	}
	return records, nil
}

type fakeAccounts struct{ *fakeStore }

func (f fakeAccounts) Add(ctx context.Context, cmd domain.AddAccountCommand) (*domain.Account, error) {
	return f.AddAccount(ctx, cmd)
}

func (f fakeAccounts) List(ctx context.Context) ([]domain.Account, error) {
	return f.ListAccounts(ctx)
}

func newTestLedger() (*service.LedgerService, *fakeStore) {
	store := &fakeStore{}
	return service.NewLedgerService(store, fakeAccounts{store}, store), store
}

func TestLedgerService_CreateUser(t *testing.T) {
	svc, store := newTestLedger()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "scam", "88005553535")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if len(store.users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(store.users))
	}
}

func TestLedgerService_CreateUser_Invalid(t *testing.T) {
	svc, store := newTestLedger()
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "   ", "123"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := svc.CreateUser(ctx, "scam", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank number, got %v", err)
	}
	if len(store.users) != 0 {
		t.Fatalf("rejected input must not reach the store, got %d users", len(store.users))
	}
}

func TestLedgerService_OpenAccount_Invalid(t *testing.T) {
	svc, _ := newTestLedger()

	_, err := svc.OpenAccount(context.Background(), 1, "", decimal.Zero)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank account name, got %v", err)
	}
}

func TestLedgerService_Apply(t *testing.T) {
	svc, _ := newTestLedger()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "scam", "apply-1")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	account, err := svc.OpenAccount(ctx, user.ID, "TEST ACCOUNT", decimal.NewFromFloat(50))
	if err != nil {
		t.Fatalf("OpenAccount: %v", err)
	}

	if _, err := svc.Apply(ctx, account, domain.Payment{
		Type:   domain.PaymentIncome,
		Amount: decimal.NewFromFloat(25),
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	found, err := svc.AccountFor(ctx, user.ID)
	if err != nil {
		t.Fatalf("AccountFor: %v", err)
	}
	if !found.Balance.Equal(decimal.NewFromFloat(75)) {
		t.Fatalf("expected balance 75, got %s", found.Balance)
	}

	history, err := svc.History(ctx, account.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 ledger record, got %d", len(history))
	}
}

func TestLedgerService_Apply_Rejections(t *testing.T) {
	svc, store := newTestLedger()
	ctx := context.Background()
	account := &domain.Account{ID: 1, UserID: 1}

	if _, err := svc.Apply(ctx, account, domain.Payment{
		Type:   domain.PaymentType(7),
		Amount: decimal.NewFromFloat(1),
	}); !errors.Is(err, domain.ErrUnknownPaymentType) {
		t.Fatalf("expected ErrUnknownPaymentType, got %v", err)
	}

	if _, err := svc.Apply(ctx, account, domain.Payment{
		Type:   domain.PaymentIncome,
		Amount: decimal.NewFromFloat(-1),
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if len(store.records) != 0 {
		t.Fatalf("rejected payments must not reach the ledger, got %d records", len(store.records))
	}
}
