// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrNotFound is returned when a group does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for group and ledger storage operations.
// This abstraction allows swapping storage backends (memory, SQLite, PostgreSQL)
// without changing the ledger engine.
//
// Stores do not serialize ledger updates per group; the engine does that.
type Store interface {
	// CreateGroup persists a new group with its initial members.
	// The group.ID and group.CreatedAt fields will be populated by the store.
	// IDs increase monotonically and are never reused.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID with members in insertion order.
	// Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID int64) (*models.Group, error)

	// ListGroups retrieves all groups ordered by ID.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// AddGroupMember appends a member to a group. Adding an existing member is
	// a no-op. Returns ErrNotFound if the group does not exist.
	AddGroupMember(ctx context.Context, groupID int64, member string) error

	// GetLedger retrieves the balances and debts of a group. A group without
	// recorded activity yields an empty ledger.
	GetLedger(ctx context.Context, groupID int64) (*models.Ledger, error)

	// SaveLedger atomically replaces the stored balances and debts of a group.
	SaveLedger(ctx context.Context, ledger *models.Ledger) error

	// Close releases any resources held by the store.
	Close() error
}
