// Package rail defines the payment rail the ledger settles debts through and
// an in-memory account implementation of it.
package rail

import (
	"context"
	"errors"
)

var (
	// ErrInsufficientFunds occurs when the source account lacks the balance
	// to cover a transfer, or an account does not exist.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateTransfer indicates the transfer reference was already used.
	ErrDuplicateTransfer = errors.New("duplicate transfer")

	// ErrInvalidAmount indicates a non-positive transfer amount.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Transfer is a request to move value between two members.
type Transfer struct {
	// Reference uniquely identifies the transfer. Rails treat it as an
	// idempotency key.
	Reference string
	From      string
	To        string
	Amount    int64
}

// Rail moves value between members. Transfer must either fully apply or
// return an error having applied nothing, and must eventually return.
type Rail interface {
	Transfer(ctx context.Context, t Transfer) error
}

// Func adapts a function to the Rail interface.
type Func func(ctx context.Context, t Transfer) error

// Transfer calls f.
func (f Func) Transfer(ctx context.Context, t Transfer) error {
	return f(ctx, t)
}
