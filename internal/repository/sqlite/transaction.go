package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HolidayLinux/moneycalcbase/internal/domain"
)

// TransactionRepository implements domain.TransactionStore. Execute is the
// money-movement coordinator: one balance write plus one ledger append, in
// one database transaction.
type TransactionRepository struct {
	g *guard
}

// Execute applies the payment to the account and appends the ledger record.
// Both statements run inside a single database transaction: a concurrent
// reader can never observe a balance change without its ledger entry, or
// vice versa, and any failure rolls back both.
//
// The account's balance field is treated as a possibly stale snapshot; the
// authoritative balance is re-read inside the transaction. Only the
// account's identifying fields end up in the ledger record.
func (r *TransactionRepository) Execute(ctx context.Context, account *domain.Account, payment domain.Payment) (*domain.Transaction, error) {
	if !payment.Type.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownPaymentType, payment.Type)
	}
	if payment.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", domain.ErrInvalidInput)
	}

	delta := payment.Amount
	if payment.Type == domain.PaymentOutcome {
		delta = delta.Neg()
	}

	record := &domain.Transaction{
		ID:          uuid.NewString(),
		Amount:      payment.Amount,
		Description: payment.Description,
		UserID:      account.UserID,
		AccountID:   account.ID,
		Type:        payment.Type,
		Target:      payment.Target,
		CreatedAt:   time.Now().UTC(),
	}

	err := r.g.run(ctx, func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return queryFailed("begin transaction", err)
		}
		defer tx.Rollback()

		var balance decimal.Decimal
		err = tx.QueryRowContext(ctx,
			"SELECT MoneyCount FROM Accounts WHERE Id = ?", account.ID).Scan(&balance)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return queryFailed("read balance", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE Accounts SET MoneyCount = ? WHERE Id = ?",
			balance.Add(delta), account.ID); err != nil {
			return queryFailed("update balance", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO Transactions (Id, Amount, Description, UserId, AccountId, PaymentType, CreationDate, PaymentTarget)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			record.ID, record.Amount, record.Description, record.UserID, record.AccountID,
			int(record.Type), record.CreatedAt.Format(time.RFC3339Nano), record.Target,
		); err != nil {
			return queryFailed("insert ledger record", err)
		}

		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListByAccount returns the account's ledger records. There is no update or
// delete counterpart: ledger records are immutable once written.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	var records []domain.Transaction

	err := r.g.run(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`SELECT Id, Amount, Description, UserId, AccountId, PaymentType, CreationDate, PaymentTarget
			 FROM Transactions WHERE AccountId = ?`, accountID)
		if err != nil {
			return queryFailed("query ledger records", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				record      domain.Transaction
				paymentType int
				created     string
			)
			if err := rows.Scan(&record.ID, &record.Amount, &record.Description,
				&record.UserID, &record.AccountID, &paymentType, &created, &record.Target); err != nil {
				return queryFailed("scan ledger record", err)
			}

			createdAt, err := time.Parse(time.RFC3339Nano, created)
			if err != nil {
				return queryFailed("parse creation date", err)
			}
			record.Type = domain.PaymentType(paymentType)
			record.CreatedAt = createdAt
			records = append(records, record)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
