package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/notify"
	"github.com/mmynk/splitledger/internal/rail"
)

// SettleDebt pays amount of caller's direct debt to creditor through the
// payment rail. The ledger changes only after the rail reports success; the
// group stays locked across the rail call.
func (e *Engine) SettleDebt(ctx context.Context, groupID int64, caller, creditor string, amount int64) (*models.Settlement, error) {
	st, err := e.settleDebt(ctx, groupID, caller, creditor, amount)
	if err != nil {
		return nil, err
	}

	event := notify.NewEvent(notify.KindDebtSettled, groupID)
	event.Payer = caller
	event.Payee = creditor
	event.Amount = amount
	e.publish(ctx, event)

	return st, nil
}

func (e *Engine) settleDebt(ctx context.Context, groupID int64, caller, creditor string, amount int64) (*models.Settlement, error) {
	_, unlock, err := e.acquireMember(ctx, groupID, caller)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidPayment, amount)
	}

	l, err := e.getLedger(ctx, groupID)
	if err != nil {
		return nil, err
	}

	owed := l.Debt(caller, creditor)
	if amount > owed {
		return nil, fmt.Errorf("%w: %d exceeds debt of %d to %q", ErrInvalidPayment, amount, owed, creditor)
	}

	transfer := rail.Transfer{
		Reference: uuid.New().String(),
		From:      caller,
		To:        creditor,
		Amount:    amount,
	}
	if err := e.rail.Transfer(ctx, transfer); err != nil {
		e.logger.WarnContext(ctx, "Settlement transfer failed",
			"group_id", groupID,
			"reference", transfer.Reference,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	l.Settle(caller, creditor, amount)

	if err := e.store.SaveLedger(ctx, l); err != nil {
		// The rail already moved the funds; the reference is what an operator
		// needs to reconcile.
		e.logger.ErrorContext(ctx, "Settlement transferred but not recorded",
			"group_id", groupID,
			"reference", transfer.Reference,
			"debtor", caller,
			"creditor", creditor,
			"amount", amount,
			"error", err,
		)
		return nil, fmt.Errorf("save ledger: %w", err)
	}

	e.logger.InfoContext(ctx, "Debt settled",
		"group_id", groupID,
		"reference", transfer.Reference,
		"debtor", caller,
		"creditor", creditor,
		"amount", amount,
	)

	return &models.Settlement{
		Reference: transfer.Reference,
		GroupID:   groupID,
		Debtor:    caller,
		Creditor:  creditor,
		Amount:    amount,
		Remaining: owed - amount,
		SettledAt: e.now().Unix(),
	}, nil
}
