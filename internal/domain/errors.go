package domain

import "errors"

var (
	// ErrNotFound is returned by single-row lookups that matched zero rows,
	// and also when they matched more than one: the lookups assume a unique
	// key, so plural matches indicate corrupted data and are never
	// disambiguated.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateNumber is returned when adding a user whose external
	// number is already taken.
	ErrDuplicateNumber = errors.New("user number already exists")

	// ErrUnknownPaymentType is returned for a payment intent whose type is
	// neither Income nor Outcome.
	ErrUnknownPaymentType = errors.New("unknown payment type")

	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable means the physical store could not be opened or
	// created. Fatal at construction.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrMigrationFailed means migration validation or application failed.
	// Fatal at construction; schema state may be partially upgraded.
	ErrMigrationFailed = errors.New("migration failed")

	// ErrQueryFailed wraps statement or row-mapping failures. These are
	// defects, not runtime conditions, and are never retried.
	ErrQueryFailed = errors.New("query failed")

	// ErrLockUnavailable means the connection guard could not be acquired,
	// e.g. the caller gave up waiting.
	ErrLockUnavailable = errors.New("connection lock unavailable")
)
