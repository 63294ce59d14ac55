package models

// Settlement is the outcome of a debtor paying down part or all of a direct
// debt through the payment rail.
type Settlement struct {
	// Reference is the idempotency key handed to the payment rail (UUID format).
	Reference string

	// GroupID is the group whose debt graph was settled against.
	GroupID int64

	// Debtor is the member who paid.
	Debtor string

	// Creditor is the member who received the payment.
	Creditor string

	// Amount is the settled amount.
	Amount int64

	// Remaining is the direct debt still owed after the settlement.
	Remaining int64

	// SettledAt is the Unix timestamp when the settlement was committed.
	SettledAt int64
}
