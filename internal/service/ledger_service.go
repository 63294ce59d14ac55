// Package service exposes the ledger engine as the Connect service
// splitledger.v1.LedgerService.
package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
)

// LedgerService implements the Connect LedgerService. The caller of every
// procedure is the member placed in the context by middleware.RequireAuth.
type LedgerService struct {
	engine *ledger.Engine
	logger *slog.Logger
}

// NewLedgerService creates a new LedgerService backed by engine.
func NewLedgerService(engine *ledger.Engine, logger *slog.Logger) *LedgerService {
	return &LedgerService{engine: engine, logger: logger}
}

// NewLedgerServiceHandler builds an HTTP handler serving every procedure of
// svc. The returned path is the prefix to mount it under.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	handle(mux, CreateGroupProcedure, svc.CreateGroup, opts)
	handle(mux, JoinGroupProcedure, svc.JoinGroup, opts)
	handle(mux, GetGroupProcedure, svc.GetGroup, opts)
	handle(mux, ListGroupsProcedure, svc.ListGroups, opts)
	handle(mux, GetGroupMembersProcedure, svc.GetGroupMembers, opts)
	handle(mux, GetNetBalanceProcedure, svc.GetNetBalance, opts)
	handle(mux, GetDebtProcedure, svc.GetDebt, opts)
	handle(mux, GetBalancesProcedure, svc.GetBalances, opts)
	handle(mux, RecordExpenseProcedure, svc.RecordExpense, opts)
	handle(mux, SettleDebtProcedure, svc.SettleDebt, opts)
	handle(mux, SimplifyDebtsProcedure, svc.SimplifyDebts, opts)

	return "/" + ServiceName + "/", mux
}

func handle[Req, Res any](
	mux *http.ServeMux,
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

// caller returns the authenticated member or an Unauthenticated error.
func caller(ctx context.Context) (string, error) {
	member := middleware.GetMember(ctx)
	if member == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errors.New("caller unknown"))
	}
	return member, nil
}

// toConnectError maps ledger errors to Connect codes.
func (s *LedgerService) toConnectError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ledger.ErrGroupNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrNotGroupMember):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, ledger.ErrInvalidParameters), errors.Is(err, ledger.ErrInvalidPayment):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrTransferFailed):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		s.logger.ErrorContext(ctx, "Ledger operation failed", "error", err)
		return connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}
}

// CreateGroup creates a group with the caller as its first member.
func (s *LedgerService) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	member, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	group, err := s.engine.CreateGroup(ctx, member, req.Msg.Name, req.Msg.Members)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	return connect.NewResponse(&CreateGroupResponse{Group: toGroup(group)}), nil
}

// JoinGroup adds the caller to a group and returns the group.
func (s *LedgerService) JoinGroup(ctx context.Context, req *connect.Request[JoinGroupRequest]) (*connect.Response[JoinGroupResponse], error) {
	member, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.engine.JoinGroup(ctx, req.Msg.GroupID, member); err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	group, err := s.engine.Group(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	return connect.NewResponse(&JoinGroupResponse{Group: toGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *LedgerService) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	group, err := s.engine.Group(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&GetGroupResponse{Group: toGroup(group)}), nil
}

// ListGroups retrieves all groups.
func (s *LedgerService) ListGroups(ctx context.Context, _ *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	groups, err := s.engine.ListGroups(ctx)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	out := make([]*Group, len(groups))
	for i, g := range groups {
		out[i] = toGroup(g)
	}
	return connect.NewResponse(&ListGroupsResponse{Groups: out}), nil
}

func (s *LedgerService) GetGroupMembers(ctx context.Context, req *connect.Request[GetGroupMembersRequest]) (*connect.Response[GetGroupMembersResponse], error) {
	members, err := s.engine.GroupMembers(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&GetGroupMembersResponse{Members: members}), nil
}

func (s *LedgerService) GetNetBalance(ctx context.Context, req *connect.Request[GetNetBalanceRequest]) (*connect.Response[GetNetBalanceResponse], error) {
	member := req.Msg.Member
	if member == "" {
		var err error
		if member, err = caller(ctx); err != nil {
			return nil, err
		}
	}

	balance, err := s.engine.NetBalance(ctx, req.Msg.GroupID, member)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&GetNetBalanceResponse{NetBalance: balance}), nil
}

func (s *LedgerService) GetDebt(ctx context.Context, req *connect.Request[GetDebtRequest]) (*connect.Response[GetDebtResponse], error) {
	amount, err := s.engine.Debt(ctx, req.Msg.GroupID, req.Msg.Debtor, req.Msg.Creditor)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&GetDebtResponse{Amount: amount}), nil
}

// GetBalances returns every balance and the current debt graph of a group.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	balances, err := s.engine.Balances(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	edges, err := s.engine.DebtGraph(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	return connect.NewResponse(&GetBalancesResponse{
		Balances: toBalances(balances),
		Debts:    toDebts(edges),
	}), nil
}

// RecordExpense records an expense on behalf of the caller.
func (s *LedgerService) RecordExpense(ctx context.Context, req *connect.Request[RecordExpenseRequest]) (*connect.Response[RecordExpenseResponse], error) {
	member, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	policy, err := models.ParseSplitPolicy(req.Msg.Policy)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	err = s.engine.RecordExpense(ctx, member, models.Expense{
		GroupID:      req.Msg.GroupID,
		TotalAmount:  req.Msg.TotalAmount,
		Payer:        req.Msg.Payer,
		Participants: req.Msg.Participants,
		Policy:       policy,
		AuxData:      req.Msg.AuxData,
		Description:  req.Msg.Description,
	})
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	return connect.NewResponse(&RecordExpenseResponse{}), nil
}

// SettleDebt pays down the caller's debt through the payment rail.
func (s *LedgerService) SettleDebt(ctx context.Context, req *connect.Request[SettleDebtRequest]) (*connect.Response[SettleDebtResponse], error) {
	member, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.engine.SettleDebt(ctx, req.Msg.GroupID, member, req.Msg.Creditor, req.Msg.Amount)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	return connect.NewResponse(&SettleDebtResponse{Settlement: &Settlement{
		Reference: st.Reference,
		GroupID:   st.GroupID,
		Debtor:    st.Debtor,
		Creditor:  st.Creditor,
		Amount:    st.Amount,
		Remaining: st.Remaining,
		SettledAt: st.SettledAt,
	}}), nil
}

// SimplifyDebts collapses the group's debt graph and returns the new edges.
func (s *LedgerService) SimplifyDebts(ctx context.Context, req *connect.Request[SimplifyDebtsRequest]) (*connect.Response[SimplifyDebtsResponse], error) {
	member, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	edges, err := s.engine.SimplifyDebts(ctx, req.Msg.GroupID, member)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&SimplifyDebtsResponse{Debts: toDebts(edges)}), nil
}
