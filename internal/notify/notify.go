// Package notify delivers ledger events to downstream systems. Delivery is
// best effort: the ledger logs failures and never rolls back because of them.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Kind names an event shape.
type Kind string

const (
	KindGroupCreated    Kind = "group_created"
	KindMemberJoined    Kind = "member_joined"
	KindExpenseAdded    Kind = "expense_added"
	KindDebtSettled     Kind = "debt_settled"
	KindDebtsSimplified Kind = "debts_simplified"
)

// Event is a flattened ledger event. Only the fields relevant to Kind are set.
type Event struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	GroupID    int64     `json:"group_id"`
	OccurredAt time.Time `json:"occurred_at"`

	Name        string `json:"name,omitempty"`        // group_created
	Member      string `json:"member,omitempty"`      // member_joined
	Description string `json:"description,omitempty"` // expense_added
	TotalAmount int64  `json:"total_amount,omitempty"`
	Payer       string `json:"payer,omitempty"` // debt_settled
	Payee       string `json:"payee,omitempty"`
	Amount      int64  `json:"amount,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(kind Kind, groupID int64) Event {
	return Event{
		ID:         uuid.New().String(),
		Kind:       kind,
		GroupID:    groupID,
		OccurredAt: time.Now().UTC(),
	}
}

// Notifier delivers events to downstream systems.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Logger writes events to a structured logger.
type Logger struct {
	logger *slog.Logger
}

// NewLogger constructs a logging notifier.
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// Notify writes the event to the logger.
func (n *Logger) Notify(ctx context.Context, e Event) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.InfoContext(ctx, "ledger event",
		"event_id", e.ID,
		"kind", e.Kind,
		"group_id", e.GroupID,
	)
	return nil
}

// Multi fans an event out to every notifier, collecting their errors.
type Multi []Notifier

// Notify delivers e to every notifier even if some fail.
func (m Multi) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
