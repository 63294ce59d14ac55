package service

import "github.com/mmynk/splitledger/internal/models"

const (
	// ServiceName is the fully-qualified name of the ledger service.
	ServiceName = "splitledger.v1.LedgerService"

	CreateGroupProcedure     = "/" + ServiceName + "/CreateGroup"
	JoinGroupProcedure       = "/" + ServiceName + "/JoinGroup"
	GetGroupProcedure        = "/" + ServiceName + "/GetGroup"
	ListGroupsProcedure      = "/" + ServiceName + "/ListGroups"
	GetGroupMembersProcedure = "/" + ServiceName + "/GetGroupMembers"
	GetNetBalanceProcedure   = "/" + ServiceName + "/GetNetBalance"
	GetDebtProcedure         = "/" + ServiceName + "/GetDebt"
	GetBalancesProcedure     = "/" + ServiceName + "/GetBalances"
	RecordExpenseProcedure   = "/" + ServiceName + "/RecordExpense"
	SettleDebtProcedure      = "/" + ServiceName + "/SettleDebt"
	SimplifyDebtsProcedure   = "/" + ServiceName + "/SimplifyDebts"
)

// Group is the wire form of a group.
type Group struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"createdAt"`
}

// Debt is one edge of the debt graph.
type Debt struct {
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
	Amount   int64  `json:"amount"`
}

// Balance is a member's net position.
type Balance struct {
	Member     string `json:"member"`
	NetBalance int64  `json:"netBalance"`
}

// Settlement is the receipt of a settled payment.
type Settlement struct {
	Reference string `json:"reference"`
	GroupID   int64  `json:"groupId"`
	Debtor    string `json:"debtor"`
	Creditor  string `json:"creditor"`
	Amount    int64  `json:"amount"`
	Remaining int64  `json:"remaining"`
	SettledAt int64  `json:"settledAt"`
}

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type JoinGroupRequest struct {
	GroupID int64 `json:"groupId"`
}

type JoinGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID int64 `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type GetGroupMembersRequest struct {
	GroupID int64 `json:"groupId"`
}

type GetGroupMembersResponse struct {
	Members []string `json:"members"`
}

// GetNetBalanceRequest asks for a member's balance; an empty Member means the
// caller.
type GetNetBalanceRequest struct {
	GroupID int64  `json:"groupId"`
	Member  string `json:"member,omitempty"`
}

type GetNetBalanceResponse struct {
	NetBalance int64 `json:"netBalance"`
}

type GetDebtRequest struct {
	GroupID  int64  `json:"groupId"`
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
}

type GetDebtResponse struct {
	Amount int64 `json:"amount"`
}

type GetBalancesRequest struct {
	GroupID int64 `json:"groupId"`
}

type GetBalancesResponse struct {
	Balances []Balance `json:"balances"`
	Debts    []Debt    `json:"debts"`
}

// RecordExpenseRequest records an expense. Policy is one of "equal", "exact"
// or "percentage"; AuxData holds exact amounts or basis points accordingly.
type RecordExpenseRequest struct {
	GroupID      int64    `json:"groupId"`
	TotalAmount  int64    `json:"totalAmount"`
	Payer        string   `json:"payer"`
	Participants []string `json:"participants"`
	Policy       string   `json:"policy"`
	AuxData      []int64  `json:"auxData,omitempty"`
	Description  string   `json:"description,omitempty"`
}

type RecordExpenseResponse struct{}

// SettleDebtRequest pays down the caller's debt to Creditor.
type SettleDebtRequest struct {
	GroupID  int64  `json:"groupId"`
	Creditor string `json:"creditor"`
	Amount   int64  `json:"amount"`
}

type SettleDebtResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type SimplifyDebtsRequest struct {
	GroupID int64 `json:"groupId"`
}

type SimplifyDebtsResponse struct {
	Debts []Debt `json:"debts"`
}

func toGroup(g *models.Group) *Group {
	return &Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   g.Members,
		CreatedAt: g.CreatedAt,
	}
}

func toDebts(edges []models.DebtEdge) []Debt {
	debts := make([]Debt, len(edges))
	for i, e := range edges {
		debts[i] = Debt{Debtor: e.Debtor, Creditor: e.Creditor, Amount: e.Amount}
	}
	return debts
}

func toBalances(balances []models.MemberBalance) []Balance {
	out := make([]Balance, len(balances))
	for i, b := range balances {
		out[i] = Balance{Member: b.Member, NetBalance: b.NetBalance}
	}
	return out
}
