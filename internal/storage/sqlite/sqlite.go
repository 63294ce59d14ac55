// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; one connection avoids SQLITE_BUSY under
	// concurrent ledger updates on different groups.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateGroup persists a new group and its initial members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO groups (name, created_at) VALUES (?, ?)",
		group.Name, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read group id: %w", err)
	}

	for i, member := range group.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, position, member) VALUES (?, ?, ?)",
			id, i, member,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	group.ID = id
	return nil
}

// GetGroup retrieves a group by ID, including its members in insertion order.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID int64) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.listMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members

	return group, nil
}

// ListGroups retrieves all groups ordered by ID.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_at FROM groups ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var groups []*models.Group
	for rows.Next() {
		g := &models.Group{}
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	// Members are loaded after the cursor is closed; the store holds a single
	// connection.
	for _, g := range groups {
		members, err := s.listMembers(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		g.Members = members
	}

	return groups, nil
}

// AddGroupMember appends a member at the end of the group's member list.
func (s *SQLiteStore) AddGroupMember(ctx context.Context, groupID int64, member string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := groupExists(ctx, tx, groupID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO group_members (group_id, position, member)
		 SELECT ?, COALESCE(MAX(position), -1) + 1, ? FROM group_members WHERE group_id = ?
		 ON CONFLICT (group_id, member) DO NOTHING`,
		groupID, member, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) listMembers(ctx context.Context, groupID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member FROM group_members WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var member string
		if err := rows.Scan(&member); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func groupExists(ctx context.Context, q queryer, groupID int64) error {
	var exists int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", groupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}
	return nil
}
