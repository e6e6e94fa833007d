package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HolidayLinux/moneycalcbase/internal/domain"
)

// AccountRepository implements domain.AccountStore against the guarded
// connection.
type AccountRepository struct {
	g *guard
}

func (r *AccountRepository) Add(ctx context.Context, cmd domain.AddAccountCommand) (*domain.Account, error) {
	now := time.Now().UTC()
	account := &domain.Account{
		UserID:    cmd.UserID,
		Name:      cmd.Name,
		Balance:   cmd.InitialBalance,
		CreatedAt: now,
	}

	err := r.g.run(ctx, func(db *sql.DB) error {
		result, err := db.ExecContext(ctx,
			"INSERT INTO Accounts (Name, UserId, MoneyCount, CreationDate) VALUES (?, ?, ?, ?)",
			cmd.Name, cmd.UserID, cmd.InitialBalance, now.Format(dateFormat),
		)
		if err != nil {
			return queryFailed("insert account", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return queryFailed("get last insert id", err)
		}
		account.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *AccountRepository) Delete(ctx context.Context, account *domain.Account) error {
	return r.g.run(ctx, func(db *sql.DB) error {
		// Deleting an absent account is deliberately not an error.
		if _, err := db.ExecContext(ctx, "DELETE FROM Accounts WHERE Id = ?", account.ID); err != nil {
			return queryFailed("delete account", err)
		}
		return nil
	})
}

// SetBalance unconditionally overwrites the balance. The money-movement
// path issues the equivalent statement inside its own transaction; this
// raw write exists for the rare repair or import job, not as an everyday
// mutation.
func (r *AccountRepository) SetBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	return r.g.run(ctx, func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx,
			"UPDATE Accounts SET MoneyCount = ? WHERE Id = ?", balance, accountID); err != nil {
			return queryFailed("update balance", err)
		}
		return nil
	})
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account

	err := r.g.run(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			"SELECT Id, Name, UserId, MoneyCount, CreationDate FROM Accounts")
		if err != nil {
			return queryFailed("query accounts", err)
		}
		defer rows.Close()

		for rows.Next() {
			account, err := scanAccount(rows)
			if err != nil {
				return err
			}
			accounts = append(accounts, *account)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetByUser returns the single account owned by the user. The schema does
// not enforce one account per user; plural rows are a data-integrity
// condition and are reported as ErrNotFound, same as zero rows.
func (r *AccountRepository) GetByUser(ctx context.Context, userID int64) (*domain.Account, error) {
	var matches []domain.Account

	err := r.g.run(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			"SELECT Id, Name, UserId, MoneyCount, CreationDate FROM Accounts WHERE UserId = ?", userID)
		if err != nil {
			return queryFailed("query account by user", err)
		}
		defer rows.Close()

		for rows.Next() {
			account, err := scanAccount(rows)
			if err != nil {
				return err
			}
			matches = append(matches, *account)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	if len(matches) != 1 {
		return nil, domain.ErrNotFound
	}
	return &matches[0], nil
}

func scanAccount(rows *sql.Rows) (*domain.Account, error) {
	var account domain.Account
	if err := rows.Scan(&account.ID, &account.Name, &account.UserID, &account.Balance, &account.CreatedAt); err != nil {
		return nil, queryFailed("scan account", err)
	}
	return &account, nil
}
