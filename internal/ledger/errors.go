package ledger

import "errors"

var (
	// ErrGroupNotFound is returned when an operation references a group that
	// was never created.
	ErrGroupNotFound = errors.New("group not found")

	// ErrNotGroupMember is returned when the caller is not a member of the
	// group a member-gated operation targets.
	ErrNotGroupMember = errors.New("not a group member")

	// ErrInvalidParameters is returned for structurally invalid expenses:
	// non-positive amount, no participants, non-member payer, split data
	// that does not match the policy, or shares that would overflow a balance.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrInvalidPayment is returned when a settlement amount is not positive
	// or exceeds the recorded debt.
	ErrInvalidPayment = errors.New("invalid payment")

	// ErrTransferFailed is returned when the payment rail declines or fails a
	// settlement transfer. Ledger state is unchanged.
	ErrTransferFailed = errors.New("transfer failed")
)
