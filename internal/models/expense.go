package models

import (
	"fmt"
	"strings"
)

// SplitPolicy selects how an expense total is divided among participants.
type SplitPolicy int

const (
	// SplitEqual divides the total evenly, truncating each share.
	SplitEqual SplitPolicy = iota
	// SplitExact takes one explicit share per participant.
	SplitExact
	// SplitPercentage takes one basis-point weight per participant (10000 = 100%).
	SplitPercentage
)

// String returns the wire name of the policy.
func (p SplitPolicy) String() string {
	switch p {
	case SplitEqual:
		return "equal"
	case SplitExact:
		return "exact"
	case SplitPercentage:
		return "percentage"
	default:
		return fmt.Sprintf("SplitPolicy(%d)", int(p))
	}
}

// ParseSplitPolicy maps a wire name to a SplitPolicy, ignoring case.
func ParseSplitPolicy(s string) (SplitPolicy, error) {
	switch strings.ToLower(s) {
	case "equal":
		return SplitEqual, nil
	case "exact":
		return SplitExact, nil
	case "percentage":
		return SplitPercentage, nil
	default:
		return 0, fmt.Errorf("unknown split policy %q", s)
	}
}

// Expense describes a payment made by one member on behalf of several
// participants. It is not persisted; only its effect on the Ledger is kept.
type Expense struct {
	GroupID int64

	// TotalAmount is the amount paid, in opaque integer units. Must be positive.
	TotalAmount int64

	// Payer is the member who paid. Must belong to the group.
	Payer string

	// Participants share the cost. The payer may appear here; their own share
	// never turns into a self-debt.
	Participants []string

	Policy SplitPolicy

	// AuxData carries the per-participant amounts (SplitExact) or basis points
	// (SplitPercentage). Ignored for SplitEqual.
	AuxData []int64

	// Description is an opaque label, not interpreted by the ledger.
	Description string
}
