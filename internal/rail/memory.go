package rail

import (
	"context"
	"sync"
)

// Memory is a concurrency-safe in-memory rail holding one balance per account.
type Memory struct {
	mu        sync.Mutex
	overdraft bool
	balances  map[string]int64
	done      map[string]Transfer
}

// MemoryOption configures a Memory rail.
type MemoryOption func(*Memory)

// WithOverdraft lets accounts go negative and opens accounts on first use.
// Useful for development, where nobody funds accounts up front.
func WithOverdraft() MemoryOption {
	return func(m *Memory) { m.overdraft = true }
}

// NewMemory creates an empty in-memory rail.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		balances: make(map[string]int64),
		done:     make(map[string]Transfer),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Deposit credits amount to account, opening it if needed.
func (m *Memory) Deposit(account string, amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[account] += amount
}

// Balance returns the balance of account and whether it exists.
func (m *Memory) Balance(account string) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[account]
	return b, ok
}

// Transfer moves t.Amount from t.From to t.To.
func (m *Memory) Transfer(_ context.Context, t Transfer) error {
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if t.Reference != "" {
		if _, exists := m.done[t.Reference]; exists {
			return ErrDuplicateTransfer
		}
	}

	fromBalance, ok := m.balances[t.From]
	if !ok && !m.overdraft {
		return ErrInsufficientFunds
	}
	toBalance, ok := m.balances[t.To]
	if !ok && !m.overdraft {
		return ErrInsufficientFunds
	}

	if fromBalance < t.Amount && !m.overdraft {
		return ErrInsufficientFunds
	}

	m.balances[t.From] = fromBalance - t.Amount
	m.balances[t.To] = toBalance + t.Amount

	if t.Reference != "" {
		m.done[t.Reference] = t
	}
	return nil
}
