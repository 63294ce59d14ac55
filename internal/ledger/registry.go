package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/notify"
)

// CreateGroup creates a group whose members are the caller followed by
// initialMembers in order, skipping duplicates.
func (e *Engine) CreateGroup(ctx context.Context, caller, name string, initialMembers []string) (*models.Group, error) {
	if caller == "" {
		return nil, fmt.Errorf("%w: caller required", ErrInvalidParameters)
	}

	group := &models.Group{Name: name}
	group.AddMember(caller)
	for _, m := range initialMembers {
		group.AddMember(m)
	}

	if err := e.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	e.logger.InfoContext(ctx, "Group created",
		"group_id", group.ID,
		"name", group.Name,
		"members_count", len(group.Members),
	)

	event := notify.NewEvent(notify.KindGroupCreated, group.ID)
	event.Name = group.Name
	e.publish(ctx, event)

	return group, nil
}

// JoinGroup adds caller to the group. Joining twice is a no-op.
func (e *Engine) JoinGroup(ctx context.Context, groupID int64, caller string) error {
	added, err := e.joinGroup(ctx, groupID, caller)
	if err != nil || !added {
		return err
	}

	event := notify.NewEvent(notify.KindMemberJoined, groupID)
	event.Member = caller
	e.publish(ctx, event)

	return nil
}

func (e *Engine) joinGroup(ctx context.Context, groupID int64, caller string) (bool, error) {
	if caller == "" {
		return false, fmt.Errorf("%w: caller required", ErrInvalidParameters)
	}

	group, unlock, err := e.acquire(ctx, groupID)
	if err != nil {
		return false, err
	}
	defer unlock()

	if group.HasMember(caller) {
		return false, nil
	}

	if err := e.store.AddGroupMember(ctx, groupID, caller); err != nil {
		return false, fmt.Errorf("add member: %w", err)
	}

	e.logger.InfoContext(ctx, "Member joined", "group_id", groupID, "member", caller)
	return true, nil
}

// Group returns a group by id.
func (e *Engine) Group(ctx context.Context, groupID int64) (*models.Group, error) {
	return e.getGroup(ctx, groupID)
}

// ListGroups returns every group ordered by id.
func (e *Engine) ListGroups(ctx context.Context) ([]*models.Group, error) {
	groups, err := e.store.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// IsMember reports whether member belongs to the group.
func (e *Engine) IsMember(ctx context.Context, groupID int64, member string) (bool, error) {
	group, err := e.getGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	return group.HasMember(member), nil
}

// GroupMembers returns the members of a group in insertion order.
func (e *Engine) GroupMembers(ctx context.Context, groupID int64) ([]string, error) {
	group, err := e.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return group.Members, nil
}

// NetBalance returns member's net balance in the group.
func (e *Engine) NetBalance(ctx context.Context, groupID int64, member string) (int64, error) {
	l, err := e.getLedger(ctx, groupID)
	if err != nil {
		return 0, err
	}
	return l.Balance(member), nil
}

// Debt returns what debtor directly owes creditor in the group.
func (e *Engine) Debt(ctx context.Context, groupID int64, debtor, creditor string) (int64, error) {
	l, err := e.getLedger(ctx, groupID)
	if err != nil {
		return 0, err
	}
	return l.Debt(debtor, creditor), nil
}

// Balances returns every member's net balance in member order, followed by
// any non-member keys holding a balance.
func (e *Engine) Balances(ctx context.Context, groupID int64) ([]models.MemberBalance, error) {
	group, err := e.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	l, err := e.getLedger(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return calculator.MemberBalances(group.Members, l), nil
}

// DebtGraph returns the non-zero direct debts of a group ordered by debtor,
// then creditor.
func (e *Engine) DebtGraph(ctx context.Context, groupID int64) ([]models.DebtEdge, error) {
	l, err := e.getLedger(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return l.Edges(), nil
}
