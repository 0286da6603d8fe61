package domain

import (
	"sync"
	"time"

	"github.com/iho/bookkeeper/internal/money"
)

// Account is a leaf node of the chart of accounts holding a mutable balance.
//
// The stored balance uses the raw debit-positive convention: Debit adds,
// Credit subtracts, regardless of the account's normal side. DebitNormal
// only affects presentation (NormalBalance) and classification.
//
// Balance access is guarded by the account's own lock, so a single
// account is always read consistently. Observing a posting's two legs
// atomically requires the ledger-level snapshot (Ledger.Balances).
type Account struct {
	ID          ID
	Number      string // optional chart-of-accounts label, uniqueness not enforced
	Name        string
	DebitNormal bool
	CreatedAt   time.Time

	mu        sync.RWMutex
	balance   money.Money
	updatedAt time.Time
}

// NewAccount creates an account with an opening balance. The balance's
// currency is fixed for the lifetime of the account.
func NewAccount(number, name string, debitNormal bool, opening money.Money) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:          NewID(),
		Number:      number,
		Name:        name,
		DebitNormal: debitNormal,
		CreatedAt:   now,
		balance:     opening,
		updatedAt:   now,
	}
}

// Balance returns the current stored balance.
func (a *Account) Balance() money.Money {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

// UpdatedAt returns when the balance last changed.
func (a *Account) UpdatedAt() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.updatedAt
}

// NormalBalance returns the balance as presented on reports: the stored
// balance for debit-normal accounts, its negation for credit-normal ones.
func (a *Account) NormalBalance() money.Money {
	b := a.Balance()
	if a.DebitNormal {
		return b
	}
	return b.Neg()
}

// Debit adds amount to the stored balance. Accepts any amount, including
// negative and zero; fails only on a currency mismatch, leaving the
// balance unchanged.
func (a *Account) Debit(amount money.Money) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, err := a.balance.Add(amount)
	if err != nil {
		return err
	}
	a.balance = b
	a.updatedAt = time.Now().UTC()
	return nil
}

// Credit subtracts amount from the stored balance.
func (a *Account) Credit(amount money.Money) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, err := a.balance.Sub(amount)
	if err != nil {
		return err
	}
	a.balance = b
	a.updatedAt = time.Now().UTC()
	return nil
}
