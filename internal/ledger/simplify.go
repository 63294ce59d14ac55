package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/notify"
)

// SimplifyDebts replaces the group's debt graph with a greedy set of
// transfers that yields the same net balances. Balances are not modified.
// The result is smaller than an arbitrary graph but not guaranteed minimal.
func (e *Engine) SimplifyDebts(ctx context.Context, groupID int64, caller string) ([]models.DebtEdge, error) {
	edges, err := e.simplifyDebts(ctx, groupID, caller)
	if err != nil {
		return nil, err
	}

	e.publish(ctx, notify.NewEvent(notify.KindDebtsSimplified, groupID))
	return edges, nil
}

func (e *Engine) simplifyDebts(ctx context.Context, groupID int64, caller string) ([]models.DebtEdge, error) {
	group, unlock, err := e.acquireMember(ctx, groupID, caller)
	if err != nil {
		return nil, err
	}
	defer unlock()

	l, err := e.getLedger(ctx, groupID)
	if err != nil {
		return nil, err
	}

	before := len(l.Debts)

	// Non-member participants can hold balances too; leaving them out would
	// leave their balances unaccounted for by the new graph.
	keys := calculator.BalanceKeys(group.Members, l)
	edges := calculator.SimplifyDebts(keys, l.Balances)
	l.ReplaceDebts(edges)

	if err := e.store.SaveLedger(ctx, l); err != nil {
		return nil, fmt.Errorf("save ledger: %w", err)
	}

	e.logger.InfoContext(ctx, "Debts simplified",
		"group_id", groupID,
		"edges_before", before,
		"edges_after", len(edges),
	)
	return edges, nil
}
