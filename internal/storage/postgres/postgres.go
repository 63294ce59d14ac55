// Package postgres provides a PostgreSQL-backed implementation of the
// storage.Store interface using pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

var _ storage.Store = (*PostgresStore)(nil)

// PostgresStore implements storage.Store on a pgx connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

// New connects to url, verifies connectivity and runs migrations.
func New(ctx context.Context, url string) (*PostgresStore, error) {
	if url == "" {
		return nil, fmt.Errorf("database url is required")
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: pool}, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

func (s *PostgresStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO groups (name, created_at) VALUES ($1, $2) RETURNING id`,
		group.Name, group.CreatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}

	batch := &pgx.Batch{}
	for i, member := range group.Members {
		batch.Queue(`INSERT INTO group_members (group_id, position, member) VALUES ($1, $2, $3)`, id, i, member)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert members: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	group.ID = id
	return nil
}

func (s *PostgresStore) GetGroup(ctx context.Context, groupID int64) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM groups WHERE id = $1`, groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}

	members, err := s.listMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

func (s *PostgresStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, created_at FROM groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	groups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Group, error) {
		g := &models.Group{}
		err := row.Scan(&g.ID, &g.Name, &g.CreatedAt)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan groups: %w", err)
	}

	for _, g := range groups {
		if g.Members, err = s.listMembers(ctx, g.ID); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (s *PostgresStore) AddGroupMember(ctx context.Context, groupID int64, member string) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	// Lock the group row so concurrent joins compute distinct positions.
	var id int64
	err = tx.QueryRow(ctx, `SELECT id FROM groups WHERE id = $1 FOR UPDATE`, groupID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock group: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO group_members (group_id, position, member)
        SELECT $1, COALESCE(MAX(position), -1) + 1, $2 FROM group_members WHERE group_id = $1
        ON CONFLICT (group_id, member) DO NOTHING`, groupID, member)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) GetLedger(ctx context.Context, groupID int64) (*models.Ledger, error) {
	if err := s.groupExists(ctx, groupID); err != nil {
		return nil, err
	}

	ledger := models.NewLedger(groupID)

	rows, err := s.db.Query(ctx, `SELECT member, amount FROM balances WHERE group_id = $1`, groupID)
	if err != nil {
		return nil, fmt.Errorf("get balances: %w", err)
	}
	var member string
	var amount int64
	_, err = pgx.ForEachRow(rows, []any{&member, &amount}, func() error {
		ledger.Balances[member] = amount
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan balances: %w", err)
	}

	rows, err = s.db.Query(ctx, `SELECT debtor, creditor, amount FROM debts WHERE group_id = $1`, groupID)
	if err != nil {
		return nil, fmt.Errorf("get debts: %w", err)
	}
	var key models.DebtKey
	_, err = pgx.ForEachRow(rows, []any{&key.Debtor, &key.Creditor, &amount}, func() error {
		ledger.Debts[key] = amount
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan debts: %w", err)
	}

	return ledger, nil
}

func (s *PostgresStore) SaveLedger(ctx context.Context, ledger *models.Ledger) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var id int64
	err = tx.QueryRow(ctx, `SELECT id FROM groups WHERE id = $1 FOR UPDATE`, ledger.GroupID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("group %d: %w", ledger.GroupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock group: %w", err)
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM balances WHERE group_id = $1`, ledger.GroupID)
	batch.Queue(`DELETE FROM debts WHERE group_id = $1`, ledger.GroupID)
	for member, amount := range ledger.Balances {
		if amount != 0 {
			batch.Queue(`INSERT INTO balances (group_id, member, amount) VALUES ($1, $2, $3)`,
				ledger.GroupID, member, amount)
		}
	}
	for key, amount := range ledger.Debts {
		if amount != 0 {
			batch.Queue(`INSERT INTO debts (group_id, debtor, creditor, amount) VALUES ($1, $2, $3, $4)`,
				ledger.GroupID, key.Debtor, key.Creditor, amount)
		}
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) listMembers(ctx context.Context, groupID int64) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT member FROM group_members WHERE group_id = $1 ORDER BY position`, groupID)
	if err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}
	members, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan members: %w", err)
	}
	return members, nil
}

func (s *PostgresStore) groupExists(ctx context.Context, groupID int64) error {
	var id int64
	err := s.db.QueryRow(ctx, `SELECT id FROM groups WHERE id = $1`, groupID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check group: %w", err)
	}
	return nil
}
