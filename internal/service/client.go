package service

import (
	"context"

	"connectrpc.com/connect"
)

// LedgerClient is a typed client for LedgerService.
type LedgerClient struct {
	createGroup     *connect.Client[CreateGroupRequest, CreateGroupResponse]
	joinGroup       *connect.Client[JoinGroupRequest, JoinGroupResponse]
	getGroup        *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups      *connect.Client[ListGroupsRequest, ListGroupsResponse]
	getGroupMembers *connect.Client[GetGroupMembersRequest, GetGroupMembersResponse]
	getNetBalance   *connect.Client[GetNetBalanceRequest, GetNetBalanceResponse]
	getDebt         *connect.Client[GetDebtRequest, GetDebtResponse]
	getBalances     *connect.Client[GetBalancesRequest, GetBalancesResponse]
	recordExpense   *connect.Client[RecordExpenseRequest, RecordExpenseResponse]
	settleDebt      *connect.Client[SettleDebtRequest, SettleDebtResponse]
	simplifyDebts   *connect.Client[SimplifyDebtsRequest, SimplifyDebtsResponse]
}

// NewLedgerClient constructs a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewLedgerClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &LedgerClient{
		createGroup:     connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+CreateGroupProcedure, opts...),
		joinGroup:       connect.NewClient[JoinGroupRequest, JoinGroupResponse](httpClient, baseURL+JoinGroupProcedure, opts...),
		getGroup:        connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GetGroupProcedure, opts...),
		listGroups:      connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+ListGroupsProcedure, opts...),
		getGroupMembers: connect.NewClient[GetGroupMembersRequest, GetGroupMembersResponse](httpClient, baseURL+GetGroupMembersProcedure, opts...),
		getNetBalance:   connect.NewClient[GetNetBalanceRequest, GetNetBalanceResponse](httpClient, baseURL+GetNetBalanceProcedure, opts...),
		getDebt:         connect.NewClient[GetDebtRequest, GetDebtResponse](httpClient, baseURL+GetDebtProcedure, opts...),
		getBalances:     connect.NewClient[GetBalancesRequest, GetBalancesResponse](httpClient, baseURL+GetBalancesProcedure, opts...),
		recordExpense:   connect.NewClient[RecordExpenseRequest, RecordExpenseResponse](httpClient, baseURL+RecordExpenseProcedure, opts...),
		settleDebt:      connect.NewClient[SettleDebtRequest, SettleDebtResponse](httpClient, baseURL+SettleDebtProcedure, opts...),
		simplifyDebts:   connect.NewClient[SimplifyDebtsRequest, SimplifyDebtsResponse](httpClient, baseURL+SimplifyDebtsProcedure, opts...),
	}
}

func (c *LedgerClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *LedgerClient) JoinGroup(ctx context.Context, req *connect.Request[JoinGroupRequest]) (*connect.Response[JoinGroupResponse], error) {
	return c.joinGroup.CallUnary(ctx, req)
}

func (c *LedgerClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *LedgerClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *LedgerClient) GetGroupMembers(ctx context.Context, req *connect.Request[GetGroupMembersRequest]) (*connect.Response[GetGroupMembersResponse], error) {
	return c.getGroupMembers.CallUnary(ctx, req)
}

func (c *LedgerClient) GetNetBalance(ctx context.Context, req *connect.Request[GetNetBalanceRequest]) (*connect.Response[GetNetBalanceResponse], error) {
	return c.getNetBalance.CallUnary(ctx, req)
}

func (c *LedgerClient) GetDebt(ctx context.Context, req *connect.Request[GetDebtRequest]) (*connect.Response[GetDebtResponse], error) {
	return c.getDebt.CallUnary(ctx, req)
}

func (c *LedgerClient) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *LedgerClient) RecordExpense(ctx context.Context, req *connect.Request[RecordExpenseRequest]) (*connect.Response[RecordExpenseResponse], error) {
	return c.recordExpense.CallUnary(ctx, req)
}

func (c *LedgerClient) SettleDebt(ctx context.Context, req *connect.Request[SettleDebtRequest]) (*connect.Response[SettleDebtResponse], error) {
	return c.settleDebt.CallUnary(ctx, req)
}

func (c *LedgerClient) SimplifyDebts(ctx context.Context, req *connect.Request[SimplifyDebtsRequest]) (*connect.Response[SimplifyDebtsResponse], error) {
	return c.simplifyDebts.CallUnary(ctx, req)
}
