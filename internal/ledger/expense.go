package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/notify"
)

// RecordExpense applies an expense paid by exp.Payer to the group's ledger.
// Every participant other than the payer owes the payer their share; the
// payer's own share is not recorded.
func (e *Engine) RecordExpense(ctx context.Context, caller string, exp models.Expense) error {
	if err := e.recordExpense(ctx, caller, exp); err != nil {
		return err
	}

	event := notify.NewEvent(notify.KindExpenseAdded, exp.GroupID)
	event.Description = exp.Description
	event.TotalAmount = exp.TotalAmount
	e.publish(ctx, event)

	return nil
}

func (e *Engine) recordExpense(ctx context.Context, caller string, exp models.Expense) error {
	group, unlock, err := e.acquireMember(ctx, exp.GroupID, caller)
	if err != nil {
		return err
	}
	defer unlock()

	if err := e.validateExpense(group, exp); err != nil {
		return err
	}

	shares, err := calculator.ComputeShares(exp.TotalAmount, exp.Participants, exp.Policy, exp.AuxData)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	l, err := e.getLedger(ctx, exp.GroupID)
	if err != nil {
		return err
	}

	for i, participant := range exp.Participants {
		if participant == exp.Payer || shares[i] == 0 {
			continue
		}
		if err := l.AddDebt(participant, exp.Payer, shares[i]); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
		}
	}

	if err := e.store.SaveLedger(ctx, l); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	e.logger.InfoContext(ctx, "Expense recorded",
		"group_id", exp.GroupID,
		"payer", exp.Payer,
		"total", exp.TotalAmount,
		"policy", exp.Policy,
		"participants_count", len(exp.Participants),
	)
	return nil
}

func (e *Engine) validateExpense(group *models.Group, exp models.Expense) error {
	if exp.TotalAmount <= 0 {
		return fmt.Errorf("%w: total amount must be positive, got %d", ErrInvalidParameters, exp.TotalAmount)
	}
	if len(exp.Participants) == 0 {
		return fmt.Errorf("%w: must have at least one participant", ErrInvalidParameters)
	}
	if !group.HasMember(exp.Payer) {
		return fmt.Errorf("%w: payer %q is not a group member", ErrInvalidParameters, exp.Payer)
	}
	if e.strictParticipants {
		for _, p := range exp.Participants {
			if !group.HasMember(p) {
				return fmt.Errorf("%w: participant %q is not a group member", ErrInvalidParameters, p)
			}
		}
	}
	return nil
}
