package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Number      string `json:"number"`
	Name        string `json:"name"`
	Currency    string `json:"currency"`
	DebitNormal bool   `json:"debit_normal"`
}

// ToServiceInput converts to service input.
func (r *CreateAccountRequest) ToServiceInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Number:      r.Number,
		Name:        r.Name,
		Currency:    r.Currency,
		DebitNormal: r.DebitNormal,
	}
}

// PostEntryRequest represents a request to post a double-entry posting.
type PostEntryRequest struct {
	DebitAccountID  string          `json:"debit_account_id"`
	CreditAccountID string          `json:"credit_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
}

// ToServiceInput converts to service input.
func (r *PostEntryRequest) ToServiceInput() usecase.PostEntryInput {
	return usecase.PostEntryInput{
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
		Amount:          r.Amount,
		Currency:        r.Currency,
	}
}
