package calculator

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/mmynk/splitledger/internal/models"
)

func TestSimplifyDebts(t *testing.T) {
	tests := []struct {
		name     string
		members  []string
		balances map[string]int64
		want     []models.DebtEdge
	}{
		{
			name:     "no balances",
			members:  []string{"Alice", "Bob"},
			balances: map[string]int64{},
			want:     nil,
		},
		{
			name:     "single pair",
			members:  []string{"Alice", "Bob"},
			balances: map[string]int64{"Alice": 500, "Bob": -500},
			want: []models.DebtEdge{
				{Debtor: "Bob", Creditor: "Alice", Amount: 500},
			},
		},
		{
			name:     "one creditor many debtors",
			members:  []string{"P", "A", "B"},
			balances: map[string]int64{"P": 20000, "A": -10000, "B": -10000},
			want: []models.DebtEdge{
				{Debtor: "A", Creditor: "P", Amount: 10000},
				{Debtor: "B", Creditor: "P", Amount: 10000},
			},
		},
		{
			name:     "largest amounts are matched first",
			members:  []string{"A", "B", "C", "D"},
			balances: map[string]int64{"A": 30, "B": 70, "C": -60, "D": -40},
			want: []models.DebtEdge{
				{Debtor: "C", Creditor: "B", Amount: 60},
				{Debtor: "D", Creditor: "B", Amount: 10},
				{Debtor: "D", Creditor: "A", Amount: 30},
			},
		},
		{
			name:     "ties keep member order",
			members:  []string{"D1", "C1", "D2", "C2"},
			balances: map[string]int64{"C1": 50, "C2": 50, "D1": -50, "D2": -50},
			want: []models.DebtEdge{
				{Debtor: "D1", Creditor: "C1", Amount: 50},
				{Debtor: "D2", Creditor: "C2", Amount: 50},
			},
		},
		{
			name:     "zero balances are skipped",
			members:  []string{"A", "Z", "B"},
			balances: map[string]int64{"A": 10, "Z": 0, "B": -10},
			want: []models.DebtEdge{
				{Debtor: "B", Creditor: "A", Amount: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifyDebts(tt.members, tt.balances)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SimplifyDebts() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestSimplifyDebts_PreservesBalances checks on random ledgers that the
// simplified graph accounts for every balance exactly.
func TestSimplifyDebts_PreservesBalances(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	members := []string{"Alice", "Bob", "Charlie", "Diana", "Eve", "Frank"}

	for round := 0; round < 200; round++ {
		ledger := models.NewLedger(1)
		for k := 0; k < 10; k++ {
			debtor := members[rng.Intn(len(members))]
			creditor := members[rng.Intn(len(members))]
			if debtor == creditor {
				continue
			}
			ledger.AddDebt(debtor, creditor, int64(rng.Intn(1000)+1))
		}

		edges := SimplifyDebts(members, ledger.Balances)

		creditors, debtors := 0, 0
		for _, m := range members {
			if b := ledger.Balance(m); b > 0 {
				creditors++
			} else if b < 0 {
				debtors++
			}
		}
		if creditors+debtors > 0 && len(edges) > creditors+debtors-1 {
			t.Fatalf("round %d: %d edges for %d creditors and %d debtors", round, len(edges), creditors, debtors)
		}

		seen := make(map[models.DebtKey]bool)
		for _, e := range edges {
			if e.Amount <= 0 {
				t.Fatalf("round %d: non-positive edge %+v", round, e)
			}
			key := models.DebtKey{Debtor: e.Debtor, Creditor: e.Creditor}
			if seen[key] {
				t.Fatalf("round %d: duplicate edge %+v", round, e)
			}
			seen[key] = true
		}

		net := NetEffect(edges)
		for _, m := range members {
			if net[m] != ledger.Balance(m) {
				t.Fatalf("round %d: %s net effect = %d, balance = %d", round, m, net[m], ledger.Balance(m))
			}
		}
	}
}

func TestMemberBalances(t *testing.T) {
	ledger := models.NewLedger(1)
	ledger.AddDebt("Bob", "Alice", 100)
	ledger.AddDebt("zed", "Alice", 50)
	ledger.AddDebt("mallory", "Alice", 25)

	got := MemberBalances([]string{"Alice", "Bob", "Charlie"}, ledger)
	want := []models.MemberBalance{
		{Member: "Alice", NetBalance: 175},
		{Member: "Bob", NetBalance: -100},
		{Member: "Charlie", NetBalance: 0},
		{Member: "mallory", NetBalance: -25},
		{Member: "zed", NetBalance: -50},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MemberBalances() = %v, want %v", got, want)
	}

	keys := BalanceKeys([]string{"Alice", "Bob", "Charlie"}, ledger)
	if !reflect.DeepEqual(keys, []string{"Alice", "Bob", "Charlie", "mallory", "zed"}) {
		t.Errorf("BalanceKeys() = %v", keys)
	}
}
