package models

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrAmountOverflow is returned when applying an amount would take a balance
// or debt outside the int64 range.
var ErrAmountOverflow = errors.New("amount overflow")

// DebtKey identifies a direct obligation from Debtor to Creditor.
type DebtKey struct {
	Debtor   string
	Creditor string
}

// DebtEdge is one entry of a debt graph.
type DebtEdge struct {
	Debtor   string // Member who owes
	Creditor string // Member who is owed
	Amount   int64
}

// MemberBalance is a member's net position within a group.
type MemberBalance struct {
	Member     string
	NetBalance int64 // Positive = owed money, Negative = owes money
}

// Ledger is the mutable accounting state of one group.
type Ledger struct {
	GroupID  int64
	Balances map[string]int64
	Debts    map[DebtKey]int64
}

// NewLedger returns an empty ledger for the group.
func NewLedger(groupID int64) *Ledger {
	return &Ledger{
		GroupID:  groupID,
		Balances: make(map[string]int64),
		Debts:    make(map[DebtKey]int64),
	}
}

// Balance returns member's net balance, zero if absent.
func (l *Ledger) Balance(member string) int64 {
	return l.Balances[member]
}

// Debt returns the amount debtor owes creditor directly, zero if absent.
func (l *Ledger) Debt(debtor, creditor string) int64 {
	return l.Debts[DebtKey{Debtor: debtor, Creditor: creditor}]
}

// AddDebt records that debtor now owes creditor amount more, moving the same
// amount between their net balances. The balance sum is unchanged. amount
// must not be negative. The ledger is left untouched when any resulting value
// would overflow.
func (l *Ledger) AddDebt(debtor, creditor string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("negative debt %d from %q to %q", amount, debtor, creditor)
	}

	key := DebtKey{Debtor: debtor, Creditor: creditor}
	if l.Balances[debtor] < math.MinInt64+amount ||
		l.Balances[creditor] > math.MaxInt64-amount ||
		l.Debts[key] > math.MaxInt64-amount {
		return fmt.Errorf("%w: adding %d from %q to %q", ErrAmountOverflow, amount, debtor, creditor)
	}

	l.Balances[debtor] -= amount
	l.Balances[creditor] += amount
	l.Debts[key] += amount
	return nil
}

// Settle records that debtor paid creditor amount against their direct debt.
// The caller must have checked amount against Debt(debtor, creditor).
func (l *Ledger) Settle(debtor, creditor string, amount int64) {
	key := DebtKey{Debtor: debtor, Creditor: creditor}
	l.Debts[key] -= amount
	if l.Debts[key] == 0 {
		delete(l.Debts, key)
	}
	l.Balances[debtor] += amount
	l.Balances[creditor] -= amount
}

// ReplaceDebts discards the whole debt graph and installs edges in its place.
// Balances are not touched.
func (l *Ledger) ReplaceDebts(edges []DebtEdge) {
	l.Debts = make(map[DebtKey]int64, len(edges))
	for _, e := range edges {
		if e.Amount == 0 {
			continue
		}
		l.Debts[DebtKey{Debtor: e.Debtor, Creditor: e.Creditor}] = e.Amount
	}
}

// Sum returns the sum of all net balances. It is zero for a consistent ledger.
func (l *Ledger) Sum() int64 {
	var sum int64
	for _, b := range l.Balances {
		sum += b
	}
	return sum
}

// Edges returns the non-zero debts ordered by debtor, then creditor.
func (l *Ledger) Edges() []DebtEdge {
	edges := make([]DebtEdge, 0, len(l.Debts))
	for k, amount := range l.Debts {
		if amount == 0 {
			continue
		}
		edges = append(edges, DebtEdge{Debtor: k.Debtor, Creditor: k.Creditor, Amount: amount})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Debtor != edges[j].Debtor {
			return edges[i].Debtor < edges[j].Debtor
		}
		return edges[i].Creditor < edges[j].Creditor
	})
	return edges
}

// Clone returns a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	c := &Ledger{
		GroupID:  l.GroupID,
		Balances: make(map[string]int64, len(l.Balances)),
		Debts:    make(map[DebtKey]int64, len(l.Debts)),
	}
	for m, b := range l.Balances {
		c.Balances[m] = b
	}
	for k, d := range l.Debts {
		c.Debts[k] = d
	}
	return c
}
