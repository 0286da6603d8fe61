package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/money"
	"github.com/iho/bookkeeper/internal/usecase"
)

func newService() (*usecase.LedgerService, *domain.Ledger) {
	ledger := domain.NewLedger()
	return usecase.NewLedgerService(ledger, zerolog.Nop()), ledger
}

func TestLedgerService_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountInput
		expectError error
	}{
		{
			name: "successful account creation",
			input: usecase.CreateAccountInput{
				Number:      "1000",
				Name:        "Cash",
				Currency:    "USD",
				DebitNormal: true,
			},
		},
		{
			name: "lowercase currency is normalized",
			input: usecase.CreateAccountInput{
				Name:     "Cash",
				Currency: "usd",
			},
		},
		{
			name: "empty name rejected",
			input: usecase.CreateAccountInput{
				Name:     "",
				Currency: "USD",
			},
			expectError: domain.ErrInvalidAccountName,
		},
		{
			name: "unknown currency rejected",
			input: usecase.CreateAccountInput{
				Name:     "Cash",
				Currency: "XYZ",
			},
			expectError: domain.ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()
			account, err := svc.CreateAccount(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.Name != tt.input.Name {
				t.Errorf("expected name %q, got %q", tt.input.Name, account.Name)
			}
			if got := account.Balance().Currency(); got != "USD" {
				t.Errorf("expected currency USD, got %q", got)
			}
			if !account.Balance().IsZero() {
				t.Errorf("expected zero opening balance, got %s", account.Balance())
			}
		})
	}
}

func TestLedgerService_GetAccount(t *testing.T) {
	svc, _ := newService()

	created, err := svc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Name:     "Cash",
		Currency: "USD",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetAccount(context.Background(), string(created.ID))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("expected %s, got %s", created.ID, got.ID)
	}

	if _, err := svc.GetAccount(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLedgerService_ListAccounts(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.CreateAccount(ctx, usecase.CreateAccountInput{
			Name:     "Account",
			Currency: "USD",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	tests := []struct {
		name   string
		input  usecase.ListAccountsInput
		expect int
	}{
		{"default page covers all", usecase.ListAccountsInput{}, 5},
		{"limit applied", usecase.ListAccountsInput{Limit: 2}, 2},
		{"offset applied", usecase.ListAccountsInput{Limit: 10, Offset: 3}, 2},
		{"offset past end", usecase.ListAccountsInput{Offset: 100}, 0},
		{"negative offset clamped", usecase.ListAccountsInput{Offset: -3}, 5},
		{"limit capped", usecase.ListAccountsInput{Limit: 10_000}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts, total, err := svc.ListAccounts(ctx, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(accounts) != tt.expect {
				t.Errorf("expected %d accounts, got %d", tt.expect, len(accounts))
			}
			// The total counts the whole registry, not the page.
			if total != 5 {
				t.Errorf("expected total 5, got %d", total)
			}
		})
	}
}

func TestLedgerService_PostEntry(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	cash, err := svc.CreateAccount(ctx, usecase.CreateAccountInput{
		Name: "Cash", Currency: "USD", DebitNormal: true,
	})
	if err != nil {
		t.Fatalf("create cash: %v", err)
	}
	payable, err := svc.CreateAccount(ctx, usecase.CreateAccountInput{
		Name: "Accounts Payable", Currency: "USD",
	})
	if err != nil {
		t.Fatalf("create payable: %v", err)
	}

	entry, err := svc.PostEntry(ctx, usecase.PostEntryInput{
		DebitAccountID:  string(cash.ID),
		CreditAccountID: string(payable.ID),
		Amount:          decimal.NewFromInt(100),
		Currency:        "USD",
	})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if entry.DebitAccountID != cash.ID || entry.CreditAccountID != payable.ID {
		t.Error("entry does not reference the posted accounts")
	}
	if got := cash.Balance().Amount(); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected cash balance 100, got %s", got)
	}
	if got := payable.Balance().Amount(); !got.Equal(decimal.NewFromInt(-100)) {
		t.Errorf("expected payable balance -100, got %s", got)
	}

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.PostEntry(ctx, usecase.PostEntryInput{
			DebitAccountID:  "missing",
			CreditAccountID: string(payable.ID),
			Amount:          decimal.NewFromInt(1),
			Currency:        "USD",
		})
		if !errors.Is(err, domain.ErrUnknownAccount) {
			t.Errorf("expected ErrUnknownAccount, got %v", err)
		}
	})

	t.Run("invalid currency", func(t *testing.T) {
		_, err := svc.PostEntry(ctx, usecase.PostEntryInput{
			DebitAccountID:  string(cash.ID),
			CreditAccountID: string(payable.ID),
			Amount:          decimal.NewFromInt(1),
			Currency:        "ZZZ",
		})
		if !errors.Is(err, domain.ErrInvalidCurrency) {
			t.Errorf("expected ErrInvalidCurrency, got %v", err)
		}
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := svc.PostEntry(ctx, usecase.PostEntryInput{
			DebitAccountID:  string(cash.ID),
			CreditAccountID: string(payable.ID),
			Amount:          decimal.NewFromInt(1),
			Currency:        "EUR",
		})
		if !errors.Is(err, money.ErrCurrencyMismatch) {
			t.Errorf("expected ErrCurrencyMismatch, got %v", err)
		}
	})
}

func TestLedgerService_ListEntries(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	cash, _ := svc.CreateAccount(ctx, usecase.CreateAccountInput{
		Name: "Cash", Currency: "USD", DebitNormal: true,
	})
	payable, _ := svc.CreateAccount(ctx, usecase.CreateAccountInput{
		Name: "Accounts Payable", Currency: "USD",
	})

	for i := 1; i <= 3; i++ {
		if _, err := svc.PostEntry(ctx, usecase.PostEntryInput{
			DebitAccountID:  string(cash.ID),
			CreditAccountID: string(payable.ID),
			Amount:          decimal.NewFromInt(int64(i)),
			Currency:        "USD",
		}); err != nil {
			t.Fatalf("post %d: %v", i, err)
		}
	}

	entries, total, err := svc.ListEntries(ctx, usecase.ListEntriesInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 || total != 3 {
		t.Fatalf("expected 3 entries with total 3, got %d/%d", len(entries), total)
	}
	// Posting order is preserved.
	for i, e := range entries {
		if want := decimal.NewFromInt(int64(i + 1)); !e.Amount.Amount().Equal(want) {
			t.Errorf("entry %d: expected amount %s, got %s", i, want, e.Amount.Amount())
		}
	}

	page, total, err := svc.ListEntries(ctx, usecase.ListEntriesInput{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 1 || !page[0].Amount.Amount().Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected single entry with amount 2, got %v", page)
	}
	// Pagination does not shrink the reported total.
	if total != 3 {
		t.Errorf("expected total 3 for the page, got %d", total)
	}
}

func TestLedgerService_CheckConsistency(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	cash, _ := svc.CreateAccount(ctx, usecase.CreateAccountInput{
		Name: "Cash", Currency: "USD", DebitNormal: true,
	})
	payable, _ := svc.CreateAccount(ctx, usecase.CreateAccountInput{
		Name: "Accounts Payable", Currency: "USD",
	})

	ok, err := svc.CheckConsistency(ctx)
	if err != nil || !ok {
		t.Fatalf("empty ledger should be consistent, got ok=%v err=%v", ok, err)
	}

	if _, err := svc.PostEntry(ctx, usecase.PostEntryInput{
		DebitAccountID:  string(cash.ID),
		CreditAccountID: string(payable.ID),
		Amount:          decimal.NewFromInt(42),
		Currency:        "USD",
	}); err != nil {
		t.Fatalf("post: %v", err)
	}

	ok, err = svc.CheckConsistency(ctx)
	if err != nil || !ok {
		t.Fatalf("balanced ledger should be consistent, got ok=%v err=%v", ok, err)
	}

	// Mutating an account outside the ledger breaks conservation.
	if err := cash.Debit(money.New(decimal.NewFromInt(1), "USD")); err != nil {
		t.Fatalf("debit: %v", err)
	}

	ok, err = svc.CheckConsistency(ctx)
	if ok || !errors.Is(err, usecase.ErrInconsistentLedger) {
		t.Fatalf("expected ErrInconsistentLedger, got ok=%v err=%v", ok, err)
	}
}

func TestLedgerService_CheckConsistencyUnderConcurrentPostings(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	cash, err := svc.CreateAccount(ctx, usecase.CreateAccountInput{
		Name: "Cash", Currency: "USD", DebitNormal: true,
	})
	if err != nil {
		t.Fatalf("create cash: %v", err)
	}
	payable, err := svc.CreateAccount(ctx, usecase.CreateAccountInput{
		Name: "Accounts Payable", Currency: "USD",
	})
	if err != nil {
		t.Fatalf("create payable: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			if _, err := svc.PostEntry(ctx, usecase.PostEntryInput{
				DebitAccountID:  string(cash.ID),
				CreditAccountID: string(payable.ID),
				Amount:          decimal.NewFromInt(1),
				Currency:        "USD",
			}); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	// Every posting moves both legs under the ledger lock, so a check
	// racing the posting loop must never see a half-applied entry.
	for {
		ok, err := svc.CheckConsistency(ctx)
		if err != nil || !ok {
			t.Fatalf("consistency check during postings: ok=%v err=%v", ok, err)
		}
		select {
		case <-done:
			ok, err := svc.CheckConsistency(ctx)
			if err != nil || !ok {
				t.Fatalf("final consistency check: ok=%v err=%v", ok, err)
			}
			return
		default:
		}
	}
}
