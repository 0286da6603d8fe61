package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
)

// AccountResponse represents an account in API responses. balance is the
// raw stored balance (debit-positive); normal_balance is the presented
// balance on the account's normal side.
type AccountResponse struct {
	ID            string          `json:"id"`
	Number        string          `json:"number,omitempty"`
	Name          string          `json:"name"`
	Currency      string          `json:"currency"`
	DebitNormal   bool            `json:"debit_normal"`
	Balance       decimal.Decimal `json:"balance"`
	NormalBalance decimal.Decimal `json:"normal_balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            string(a.ID),
		Number:        a.Number,
		Name:          a.Name,
		Currency:      a.Balance().Currency(),
		DebitNormal:   a.DebitNormal,
		Balance:       a.Balance().Amount(),
		NormalBalance: a.NormalBalance().Amount(),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt(),
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// EntryResponse represents a posted entry in API responses.
type EntryResponse struct {
	ID              string          `json:"id"`
	DebitAccountID  string          `json:"debit_account_id"`
	CreditAccountID string          `json:"credit_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:              string(e.ID),
		DebitAccountID:  string(e.DebitAccountID),
		CreditAccountID: string(e.CreditAccountID),
		Amount:          e.Amount.Amount(),
		Currency:        e.Amount.Currency(),
		CreatedAt:       e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// ConsistencyResponse reports the ledger-wide balance check.
type ConsistencyResponse struct {
	Consistent bool   `json:"consistent"`
	Status     string `json:"status"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
