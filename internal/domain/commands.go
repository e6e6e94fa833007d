package domain

import "github.com/shopspring/decimal"

// AddUserCommand carries the input for creating a user.
type AddUserCommand struct {
	Name   string
	Number string
}

// AddAccountCommand carries the input for creating an account.
type AddAccountCommand struct {
	UserID         int64
	Name           string
	InitialBalance decimal.Decimal
}

// Payment is a signed money-movement intent: Amount is the non-negative
// magnitude, Type decides the sign. A zero amount is a valid no-op ledger
// entry kept for audit trails.
type Payment struct {
	Type        PaymentType
	Amount      decimal.Decimal
	Description string
	Target      string
}
