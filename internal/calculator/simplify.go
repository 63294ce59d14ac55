package calculator

import (
	"sort"

	"github.com/mmynk/splitledger/internal/models"
)

// position is a member with the absolute value of a non-zero net balance.
type position struct {
	member string
	amount int64
}

// SimplifyDebts rewrites a group's obligations as a small set of transfers
// that produce exactly the given net balances.
//
// Algorithm:
//   - Split members into creditors (balance > 0) and debtors (balance < 0).
//     Zero balances are dropped.
//   - Sort both lists by amount, largest first. Ties keep member order.
//   - Walk both lists with one cursor each, matching the current debtor with
//     the current creditor for min(remaining) and advancing whichever side
//     reaches zero (both on an exact match).
//
// At most len(creditors)+len(debtors)-1 edges are produced and no (debtor,
// creditor) pair appears twice. This is a greedy heuristic: the result is
// smaller than the original graph in practice but not guaranteed to be the
// minimum number of transfers.
//
// Balances of members not listed in members are ignored, so callers must pass
// every key that holds a non-zero balance.
func SimplifyDebts(members []string, balances map[string]int64) []models.DebtEdge {
	var creditors, debtors []position
	for _, m := range members {
		switch b := balances[m]; {
		case b > 0:
			creditors = append(creditors, position{member: m, amount: b})
		case b < 0:
			debtors = append(debtors, position{member: m, amount: -b})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })

	var edges []models.DebtEdge
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		amount := min(creditors[i].amount, debtors[j].amount)

		edges = append(edges, models.DebtEdge{
			Debtor:   debtors[j].member,
			Creditor: creditors[i].member,
			Amount:   amount,
		})

		creditors[i].amount -= amount
		debtors[j].amount -= amount

		if creditors[i].amount == 0 {
			i++
		}
		if debtors[j].amount == 0 {
			j++
		}
	}

	return edges
}
