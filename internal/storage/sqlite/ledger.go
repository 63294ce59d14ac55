package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
)

// GetLedger loads the balances and debts of a group.
func (s *SQLiteStore) GetLedger(ctx context.Context, groupID int64) (*models.Ledger, error) {
	if err := groupExists(ctx, s.db, groupID); err != nil {
		return nil, err
	}

	ledger := models.NewLedger(groupID)

	rows, err := s.db.QueryContext(ctx,
		"SELECT member, amount FROM balances WHERE group_id = ?",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	for rows.Next() {
		var member string
		var amount int64
		if err := rows.Scan(&member, &amount); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		ledger.Balances[member] = amount
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balances: %w", err)
	}

	debtRows, err := s.db.QueryContext(ctx,
		"SELECT debtor, creditor, amount FROM debts WHERE group_id = ?",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get debts: %w", err)
	}
	defer debtRows.Close()

	for debtRows.Next() {
		var key models.DebtKey
		var amount int64
		if err := debtRows.Scan(&key.Debtor, &key.Creditor, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		ledger.Debts[key] = amount
	}
	if err := debtRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}

	return ledger, nil
}

// SaveLedger replaces the balances and debts of a group in one transaction.
// Zero entries are not stored.
func (s *SQLiteStore) SaveLedger(ctx context.Context, ledger *models.Ledger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := groupExists(ctx, tx, ledger.GroupID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM balances WHERE group_id = ?", ledger.GroupID); err != nil {
		return fmt.Errorf("failed to clear balances: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM debts WHERE group_id = ?", ledger.GroupID); err != nil {
		return fmt.Errorf("failed to clear debts: %w", err)
	}

	for member, amount := range ledger.Balances {
		if amount == 0 {
			continue
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO balances (group_id, member, amount) VALUES (?, ?, ?)",
			ledger.GroupID, member, amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert balance: %w", err)
		}
	}

	for key, amount := range ledger.Debts {
		if amount == 0 {
			continue
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO debts (group_id, debtor, creditor, amount) VALUES (?, ?, ?, ?)",
			ledger.GroupID, key.Debtor, key.Creditor, amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert debt: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
