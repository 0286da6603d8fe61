package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/metrics"
	"github.com/iho/bookkeeper/internal/money"
)

var (
	// ErrInconsistentLedger is returned when the ledger is not balanced.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)

// LedgerService exposes the in-process ledger to the HTTP surface.
type LedgerService struct {
	ledger *domain.Ledger
	logger zerolog.Logger
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledger *domain.Ledger, logger zerolog.Logger) *LedgerService {
	return &LedgerService{ledger: ledger, logger: logger}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Number      string
	Name        string
	Currency    string
	DebitNormal bool
}

// CreateAccount creates and registers a new account with a zero balance.
func (s *LedgerService) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	account := domain.NewAccount(input.Number, input.Name, input.DebitNormal, money.Zero(currency))

	if err := s.ledger.RegisterAccount(account); err != nil {
		return nil, err
	}

	metrics.AccountsCreated.Inc()
	s.logger.Info().
		Str("id", string(account.ID)).
		Str("number", account.Number).
		Str("currency", currency).
		Msg("account created")

	return account, nil
}

// GetAccount retrieves a registered account by ID.
func (s *LedgerService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.ledger.Lookup(domain.ID(id))
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists registered accounts with pagination, ordered by id.
// The returned total is the full registry size, not the page length.
func (s *LedgerService) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, int, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	accounts := s.ledger.Accounts()
	total := len(accounts)
	if offset >= total {
		return nil, total, nil
	}
	end := min(offset+limit, total)
	return accounts[offset:end], total, nil
}

// PostEntryInput represents input for posting an entry.
type PostEntryInput struct {
	DebitAccountID  string
	CreditAccountID string
	Amount          decimal.Decimal
	Currency        string
}

// PostEntry builds an entry and posts it through the ledger.
func (s *LedgerService) PostEntry(ctx context.Context, input PostEntryInput) (domain.Entry, error) {
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return domain.Entry{}, err
	}

	amount := money.New(input.Amount, strings.ToUpper(strings.TrimSpace(input.Currency)))
	entry := domain.NewEntry(
		domain.ID(input.DebitAccountID),
		domain.ID(input.CreditAccountID),
		amount,
	)

	if err := s.ledger.PostEntry(entry); err != nil {
		metrics.PostingErrors.WithLabelValues(postingErrorReason(err)).Inc()
		return domain.Entry{}, err
	}

	metrics.EntriesPosted.Inc()
	s.logger.Info().
		Str("entry_id", string(entry.ID)).
		Str("debit", input.DebitAccountID).
		Str("credit", input.CreditAccountID).
		Str("amount", amount.String()).
		Msg("entry posted")

	return entry, nil
}

func postingErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownAccount):
		return "unknown_account"
	case errors.Is(err, money.ErrCurrencyMismatch):
		return "currency_mismatch"
	default:
		return "internal"
	}
}

// ListEntriesInput represents input for listing entries.
type ListEntriesInput struct {
	Limit  int
	Offset int
}

// ListEntries lists posted entries in posting order, with pagination.
// The returned total is the full log length, not the page length.
func (s *LedgerService) ListEntries(ctx context.Context, input ListEntriesInput) ([]domain.Entry, int, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	entries := s.ledger.Entries()
	total := len(entries)
	if offset >= total {
		return nil, total, nil
	}
	end := min(offset+limit, total)
	return entries[offset:end], total, nil
}

// CheckConsistency verifies that the ledger is balanced: the stored
// balances of all accounts must sum to zero per currency, because every
// posting moves value between two accounts without creating or
// destroying it. The balances are snapshotted under the posting lock,
// so a concurrent posting is seen with both legs or neither.
func (s *LedgerService) CheckConsistency(ctx context.Context) (bool, error) {
	totals := make(map[string]decimal.Decimal)
	for _, b := range s.ledger.Balances() {
		totals[b.Currency()] = totals[b.Currency()].Add(b.Amount())
	}

	for currency, total := range totals {
		if !total.IsZero() {
			metrics.ConsistencyChecks.WithLabelValues("inconsistent").Inc()
			s.logger.Error().
				Str("currency", currency).
				Str("total", total.String()).
				Msg("ledger inconsistent")
			return false, ErrInconsistentLedger
		}
	}

	metrics.ConsistencyChecks.WithLabelValues("consistent").Inc()
	return true, nil
}
