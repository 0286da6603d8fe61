package money

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_Add(t *testing.T) {
	tests := []struct {
		name      string
		a         Money
		b         Money
		want      Money
		expectErr bool
	}{
		{
			name: "same currency",
			a:    New(decimal.NewFromInt(10), "USD"),
			b:    New(decimal.NewFromInt(5), "USD"),
			want: New(decimal.NewFromInt(15), "USD"),
		},
		{
			name: "weak empty left operand adopts currency",
			a:    Money{},
			b:    New(decimal.NewFromInt(5), "EUR"),
			want: New(decimal.NewFromInt(5), "EUR"),
		},
		{
			name: "weak empty right operand",
			a:    New(decimal.NewFromInt(5), "EUR"),
			b:    Money{},
			want: New(decimal.NewFromInt(5), "EUR"),
		},
		{
			name:      "mismatched currencies",
			a:         New(decimal.NewFromInt(10), "USD"),
			b:         New(decimal.NewFromInt(5), "EUR"),
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Add(tt.b)

			if tt.expectErr {
				if !errors.Is(err, ErrCurrencyMismatch) {
					t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMoney_Sub(t *testing.T) {
	a := New(decimal.NewFromInt(10), "USD")
	b := New(decimal.NewFromInt(15), "USD")

	got, err := a.Sub(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := New(decimal.NewFromInt(-5), "USD")
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}

	if _, err := a.Sub(New(decimal.NewFromInt(1), "JPY")); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestMoney_Neg(t *testing.T) {
	m := New(decimal.NewFromInt(7), "USD")
	if got := m.Neg(); !got.Equal(New(decimal.NewFromInt(-7), "USD")) {
		t.Errorf("got %s", got)
	}
	if !Zero("USD").Neg().IsZero() {
		t.Error("negated zero should be zero")
	}
}

func TestMoney_ZeroValue(t *testing.T) {
	var m Money
	if !m.IsZero() {
		t.Error("zero value should be zero")
	}
	if m.Currency() != "" {
		t.Errorf("zero value currency = %q", m.Currency())
	}
}

func TestMoney_FromString(t *testing.T) {
	m, err := FromString("12.34", "USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.String() != "12.34 USD" {
		t.Errorf("got %s", m)
	}

	if _, err := FromString("not-a-number", "USD"); err == nil {
		t.Error("expected parse error")
	}
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := New(decimal.RequireFromString("10.50"), "EUR")

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Money
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(m) {
		t.Errorf("got %s, want %s", got, m)
	}
}
