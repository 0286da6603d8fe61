package domain

import (
	"time"

	"github.com/iho/bookkeeper/internal/money"
)

// Entry is an immutable record of a single double-entry posting: an
// amount moved onto the debit account and off the credit account. It
// references accounts by identity only; account state is never copied in.
type Entry struct {
	ID              ID
	DebitAccountID  ID
	CreditAccountID ID
	Amount          money.Money
	CreatedAt       time.Time
}

// NewEntry creates an entry ready for posting. The ledger validates the
// referenced accounts at posting time, not here.
func NewEntry(debit, credit ID, amount money.Money) Entry {
	return Entry{
		ID:              NewID(),
		DebitAccountID:  debit,
		CreditAccountID: credit,
		Amount:          amount,
		CreatedAt:       time.Now().UTC(),
	}
}
