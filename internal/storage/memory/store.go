// Package memory provides an in-memory implementation of storage.Store,
// useful for tests and ephemeral deployments.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps groups and ledgers in maps guarded by a RWMutex.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	groups  map[int64]*models.Group
	ledgers map[int64]*models.Ledger
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		groups:  make(map[int64]*models.Group),
		ledgers: make(map[int64]*models.Ledger),
	}
}

func (s *Store) CreateGroup(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	group.ID = s.nextID
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	s.groups[group.ID] = cloneGroup(group)
	return nil
}

func (s *Store) GetGroup(_ context.Context, groupID int64) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}
	return cloneGroup(g), nil
}

func (s *Store) ListGroups(_ context.Context) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]*models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, cloneGroup(g))
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

func (s *Store) AddGroupMember(_ context.Context, groupID int64, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[groupID]
	if !ok {
		return fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}
	g.AddMember(member)
	return nil
}

func (s *Store) GetLedger(_ context.Context, groupID int64) (*models.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.groups[groupID]; !ok {
		return nil, fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}
	l, ok := s.ledgers[groupID]
	if !ok {
		return models.NewLedger(groupID), nil
	}
	return l.Clone(), nil
}

func (s *Store) SaveLedger(_ context.Context, ledger *models.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[ledger.GroupID]; !ok {
		return fmt.Errorf("group %d: %w", ledger.GroupID, storage.ErrNotFound)
	}
	s.ledgers[ledger.GroupID] = ledger.Clone()
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func cloneGroup(g *models.Group) *models.Group {
	c := *g
	c.Members = append([]string(nil), g.Members...)
	return &c
}
