// Package money provides the monetary position type used by the ledger:
// a decimal amount tagged with a currency code.
package money

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrCurrencyMismatch is returned when amounts of different currencies are combined.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is a monetary amount tagged with a currency code.
// The zero value is the zero amount of the empty currency; the empty
// currency is weak and adopts the other operand's currency in arithmetic.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// New creates a Money from a decimal amount and a currency code.
func New(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount, currency: currency}
}

// Zero returns the zero amount of the given currency.
func Zero(currency string) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// FromString parses a decimal string into a Money of the given currency.
func FromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return Money{amount: d, currency: currency}, nil
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency returns the currency code.
func (m Money) Currency() string { return m.currency }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// IsNegative reports whether the amount is negative.
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Equal reports whether both amount and currency are equal.
func (m Money) Equal(n Money) bool {
	return m.currency == n.currency && m.amount.Equal(n.amount)
}

// Neg returns the negated amount in the same currency.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg(), currency: m.currency}
}

// CanCombine reports whether arithmetic between m and n would succeed.
func (m Money) CanCombine(n Money) bool {
	return m.currency == "" || n.currency == "" || m.currency == n.currency
}

// Add returns m + n, or ErrCurrencyMismatch for incompatible currencies.
func (m Money) Add(n Money) (Money, error) {
	cur, err := combine(m, n)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(n.amount), currency: cur}, nil
}

// Sub returns m - n, or ErrCurrencyMismatch for incompatible currencies.
func (m Money) Sub(n Money) (Money, error) {
	cur, err := combine(m, n)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(n.amount), currency: cur}, nil
}

func combine(m, n Money) (string, error) {
	switch {
	case m.currency == "":
		return n.currency, nil
	case n.currency == "" || m.currency == n.currency:
		return m.currency, nil
	default:
		return "", fmt.Errorf("%w: %s != %s", ErrCurrencyMismatch, m.currency, n.currency)
	}
}

// String formats the amount followed by the currency code, e.g. "10 USD".
func (m Money) String() string {
	if m.currency == "" {
		return m.amount.String()
	}
	return m.amount.String() + " " + m.currency
}

type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// MarshalJSON encodes the money as {"amount":"10","currency":"USD"}.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount, Currency: m.currency})
}

// UnmarshalJSON decodes the {"amount","currency"} form.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.amount = raw.Amount
	m.currency = raw.Currency
	return nil
}
