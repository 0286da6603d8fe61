package domain

import (
	"fmt"
	"slices"
	"sync"

	"github.com/iho/bookkeeper/internal/money"
)

// Ledger is the top-level registry: a flat collection of accounts keyed
// by identity and an append-only log of posted entries. It is the only
// component that accepts new entries.
//
// A single mutex guards all mutation so the two-account debit/credit pair
// of a posting is applied atomically. Readers that must never observe a
// half-applied posting take the same lock through Balances; reading a
// single account directly is individually consistent but may interleave
// with the other leg of an in-flight posting.
type Ledger struct {
	ID ID

	mu       sync.Mutex
	settings settings
	accounts map[ID]*Account
	entries  []Entry
}

// NewLedger creates an empty ledger.
func NewLedger(opts ...Option) *Ledger {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &Ledger{
		ID:       NewID(),
		settings: s,
		accounts: make(map[ID]*Account),
	}
}

// RegisterAccount adds an account to the registry. Duplicate identities
// are handled per the duplicate policy; the original registration wins.
func (l *Ledger) RegisterAccount(a *Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registerLocked(a)
}

// RegisterGroup registers every leaf account reachable from a group.
// Under DuplicateError the whole traversal is validated before anything
// is registered, so a rejected group leaves the registry untouched.
func (l *Ledger) RegisterGroup(g *Group) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.settings.policy == DuplicateError {
		seen := make(map[ID]bool)
		for a := range Walk(g) {
			if seen[a.ID] {
				return fmt.Errorf("%w: %s", ErrDuplicateAccount, a.ID)
			}
			if _, ok := l.accounts[a.ID]; ok {
				return fmt.Errorf("%w: %s", ErrDuplicateAccount, a.ID)
			}
			seen[a.ID] = true
		}
	}

	for a := range Walk(g) {
		if err := l.registerLocked(a); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) registerLocked(a *Account) error {
	if _, ok := l.accounts[a.ID]; ok {
		switch l.settings.policy {
		case DuplicateError:
			return fmt.Errorf("%w: %s", ErrDuplicateAccount, a.ID)
		case DuplicateWarn:
			l.settings.logger.Warn().
				Str("id", string(a.ID)).
				Str("number", a.Number).
				Msg("duplicate account registration ignored, keeping original")
		}
		return nil
	}
	l.accounts[a.ID] = a
	return nil
}

// PostEntry validates that both referenced accounts are registered, then
// debits the debit account, credits the credit account and appends the
// entry to the log. Validation precedes all mutation: on any failure the
// balances and the log are untouched.
//
// Duplicate submissions of the same Entry value are not detected; posting
// twice applies the movement twice.
func (l *Ledger) PostEntry(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	debit, ok := l.accounts[e.DebitAccountID]
	if !ok {
		return fmt.Errorf("%w: debit account %s", ErrUnknownAccount, e.DebitAccountID)
	}
	credit, ok := l.accounts[e.CreditAccountID]
	if !ok {
		return fmt.Errorf("%w: credit account %s", ErrUnknownAccount, e.CreditAccountID)
	}

	// Currency compatibility is checked for both sides up front so the
	// posting never half-applies.
	if !debit.Balance().CanCombine(e.Amount) {
		return fmt.Errorf("debit account %s: %w", debit.ID, mismatch(debit, e))
	}
	if !credit.Balance().CanCombine(e.Amount) {
		return fmt.Errorf("credit account %s: %w", credit.ID, mismatch(credit, e))
	}

	if err := debit.Debit(e.Amount); err != nil {
		return err
	}
	if err := credit.Credit(e.Amount); err != nil {
		return err
	}

	l.entries = append(l.entries, e)
	return nil
}

func mismatch(a *Account, e Entry) error {
	_, err := a.Balance().Add(e.Amount)
	return err
}

// Lookup returns the registered account for id.
func (l *Ledger) Lookup(id ID) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	return a, nil
}

// Accounts returns the registered accounts sorted by identity. ULIDs sort
// chronologically, so this is also registration order for generated ids.
func (l *Ledger) Accounts() []*Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b *Account) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Balances returns a copy of every registered account's stored balance,
// taken under the posting lock: the snapshot never contains a
// half-applied posting.
func (l *Ledger) Balances() map[ID]money.Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[ID]money.Money, len(l.accounts))
	for id, a := range l.accounts {
		out[id] = a.Balance()
	}
	return out
}

// Entries returns a copy of the append-only entry log in posting order.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}
