package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/HolidayLinux/moneycalcbase/internal/domain"
)

// UserRepository implements domain.UserStore against the guarded
// connection.
type UserRepository struct {
	g *guard
}

func (r *UserRepository) Add(ctx context.Context, cmd domain.AddUserCommand) (*domain.User, error) {
	now := time.Now().UTC()
	user := &domain.User{
		Name:      cmd.Name,
		Number:    cmd.Number,
		CreatedAt: now,
	}

	err := r.g.run(ctx, func(db *sql.DB) error {
		result, err := db.ExecContext(ctx,
			"INSERT INTO Users (Name, Number, CreationDate) VALUES (?, ?, ?)",
			cmd.Name, cmd.Number, now.Format(dateFormat),
		)
		if err != nil {
			if isUniqueConstraintError(err) {
				return domain.ErrDuplicateNumber
			}
			return queryFailed("insert user", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return queryFailed("get last insert id", err)
		}
		user.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User

	err := r.g.run(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			"SELECT Id, Name, Number, CreationDate FROM Users")
		if err != nil {
			return queryFailed("query users", err)
		}
		defer rows.Close()

		for rows.Next() {
			user, err := scanUser(rows)
			if err != nil {
				return err
			}
			users = append(users, *user)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetByNumber returns the single user with the given external number. The
// number is unique by invariant, so plural matches indicate corruption and
// are reported as ErrNotFound rather than disambiguated.
func (r *UserRepository) GetByNumber(ctx context.Context, number string) (*domain.User, error) {
	var matches []domain.User

	err := r.g.run(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			"SELECT Id, Name, Number, CreationDate FROM Users WHERE Number = ?", number)
		if err != nil {
			return queryFailed("query user by number", err)
		}
		defer rows.Close()

		for rows.Next() {
			user, err := scanUser(rows)
			if err != nil {
				return err
			}
			matches = append(matches, *user)
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

func (r *UserRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.g.run(ctx, func(db *sql.DB) error {
		// Deleting an absent id is deliberately not an error.
		if _, err := db.ExecContext(ctx, "DELETE FROM Users WHERE Id = ?", id); err != nil {
			return queryFailed("delete user", err)
		}
		return nil
	})
}

func scanUser(rows *sql.Rows) (*domain.User, error) {
	var user domain.User
	if err := rows.Scan(&user.ID, &user.Name, &user.Number, &user.CreatedAt); err != nil {
		return nil, queryFailed("scan user", err)
	}
	return &user, nil
}
