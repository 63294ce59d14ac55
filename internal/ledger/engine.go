// Package ledger implements the shared-expense ledger: group membership,
// expense recording, settlement through a payment rail and debt
// simplification.
//
// Every operation that mutates a group holds that group's lock for its whole
// duration, including the payment rail call of SettleDebt, so no operation
// observes another one half-applied. Ledger state is written through the
// storage.Store in a single SaveLedger call per operation; an operation either
// fully applies or leaves the stored state untouched. Events are published
// after the group lock is released.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/notify"
	"github.com/mmynk/splitledger/internal/rail"
	"github.com/mmynk/splitledger/internal/storage"
)

// Engine is the ledger service. It is safe for concurrent use.
type Engine struct {
	store    storage.Store
	rail     rail.Rail
	notifier notify.Notifier
	logger   *slog.Logger
	locks    *groupLocks
	now      func() time.Time

	strictParticipants bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets the sink ledger events are delivered to.
func WithNotifier(n notify.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithStrictParticipants requires every expense participant to be a group
// member. By default only the payer is checked and non-member participants
// accrue balances like any other key.
func WithStrictParticipants() Option {
	return func(e *Engine) { e.strictParticipants = true }
}

// New creates an Engine persisting to store and settling through r.
func New(store storage.Store, r rail.Rail, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		rail:   r,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		locks:  newGroupLocks(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// getGroup loads a group, translating a missing group into ErrGroupNotFound.
func (e *Engine) getGroup(ctx context.Context, groupID int64) (*models.Group, error) {
	group, err := e.store.GetGroup(ctx, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrGroupNotFound, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("load group %d: %w", groupID, err)
	}
	return group, nil
}

func (e *Engine) getLedger(ctx context.Context, groupID int64) (*models.Ledger, error) {
	l, err := e.store.GetLedger(ctx, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrGroupNotFound, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("load ledger %d: %w", groupID, err)
	}
	return l, nil
}

// acquire locks an existing group and returns its current state. Groups are
// never deleted, so checking existence before locking is safe and keeps
// unknown ids out of the lock table.
func (e *Engine) acquire(ctx context.Context, groupID int64) (*models.Group, func(), error) {
	if _, err := e.getGroup(ctx, groupID); err != nil {
		return nil, nil, err
	}

	unlock, err := e.locks.lock(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	group, err := e.getGroup(ctx, groupID)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return group, unlock, nil
}

// acquireMember is acquire plus the membership check of member-gated
// operations.
func (e *Engine) acquireMember(ctx context.Context, groupID int64, caller string) (*models.Group, func(), error) {
	group, unlock, err := e.acquire(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	if !group.HasMember(caller) {
		unlock()
		return nil, nil, fmt.Errorf("%w: %q in group %d", ErrNotGroupMember, caller, groupID)
	}
	return group, unlock, nil
}

// publish delivers an event. Callers must not hold a group lock, so a slow
// sink never stalls other operations on the group. Failures are logged and
// otherwise ignored.
func (e *Engine) publish(ctx context.Context, event notify.Event) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Notify(ctx, event); err != nil {
		e.logger.WarnContext(ctx, "Event delivery failed",
			"kind", event.Kind,
			"group_id", event.GroupID,
			"error", err,
		)
	}
}
