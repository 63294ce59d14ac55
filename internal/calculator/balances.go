package calculator

import (
	"sort"

	"github.com/mmynk/splitledger/internal/models"
)

// NetEffect returns, per member, what the debt graph implies as a net balance:
// incoming debt minus outgoing debt. For a graph consistent with a ledger this
// equals each member's net balance.
func NetEffect(edges []models.DebtEdge) map[string]int64 {
	net := make(map[string]int64)
	for _, e := range edges {
		net[e.Debtor] -= e.Amount
		net[e.Creditor] += e.Amount
	}
	return net
}

// MemberBalances lists net balances in member order. Ledger keys that are not
// group members (participants of an expense who never joined) follow, sorted.
func MemberBalances(members []string, ledger *models.Ledger) []models.MemberBalance {
	seen := make(map[string]bool, len(members))
	result := make([]models.MemberBalance, 0, len(members))
	for _, m := range members {
		seen[m] = true
		result = append(result, models.MemberBalance{Member: m, NetBalance: ledger.Balance(m)})
	}

	var others []string
	for m := range ledger.Balances {
		if !seen[m] {
			others = append(others, m)
		}
	}
	sort.Strings(others)
	for _, m := range others {
		result = append(result, models.MemberBalance{Member: m, NetBalance: ledger.Balance(m)})
	}

	return result
}

// BalanceKeys returns every member followed by any other ledger key, in the
// order MemberBalances uses. Simplification must see all of them for the
// resulting graph to account for every non-zero balance.
func BalanceKeys(members []string, ledger *models.Ledger) []string {
	balances := MemberBalances(members, ledger)
	keys := make([]string, len(balances))
	for i, b := range balances {
		keys[i] = b.Member
	}
	return keys
}
