package ledger

import (
	"context"
	"sync"
)

// groupLocks hands out one lock per group so operations on a group are
// serialized while different groups proceed in parallel.
type groupLocks struct {
	mu    sync.Mutex
	locks map[int64]chan struct{}
}

func newGroupLocks() *groupLocks {
	return &groupLocks{locks: make(map[int64]chan struct{})}
}

// lock blocks until the group's lock is held or ctx is done. The returned
// function releases the lock.
func (g *groupLocks) lock(ctx context.Context, groupID int64) (func(), error) {
	g.mu.Lock()
	ch, ok := g.locks[groupID]
	if !ok {
		ch = make(chan struct{}, 1)
		g.locks[groupID] = ch
	}
	g.mu.Unlock()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
