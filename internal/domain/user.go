package domain

import (
	"context"
	"time"
)

// User is an owner of accounts. Number is the stable, caller-visible
// identifier; ID is assigned by the store on insert and is internal.
type User struct {
	ID        int64
	Name      string
	Number    string
	CreatedAt time.Time
}

// UserStore defines persistence operations for users.
type UserStore interface {
	// Add inserts a new user and returns it with the store-assigned id and
	// creation date. Returns ErrDuplicateNumber when the external number is
	// already taken.
	Add(ctx context.Context, cmd AddUserCommand) (*User, error)

	// List returns all users in store-native row order.
	List(ctx context.Context) ([]User, error)

	// GetByNumber returns the single user with the given external number.
	// Zero or plural matches both yield ErrNotFound.
	GetByNumber(ctx context.Context, number string) (*User, error)

	// DeleteByID removes a user. Deleting an absent id is not an error.
	DeleteByID(ctx context.Context, id int64) error
}
