package domain

import (
	"fmt"

	"github.com/rs/zerolog"
)

// DuplicatePolicy controls how registries react to a second registration
// of an already-known identity. The original registration always wins;
// the policy only decides whether the caller hears about it.
type DuplicatePolicy int

const (
	// DuplicateWarn keeps the original and logs a warning. Default.
	DuplicateWarn DuplicatePolicy = iota
	// DuplicateIgnore keeps the original silently.
	DuplicateIgnore
	// DuplicateError keeps the original and returns ErrDuplicateAccount.
	DuplicateError
)

// ParseDuplicatePolicy parses a policy name ("warn", "ignore", "error").
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "warn", "":
		return DuplicateWarn, nil
	case "ignore":
		return DuplicateIgnore, nil
	case "error":
		return DuplicateError, nil
	default:
		return DuplicateWarn, fmt.Errorf("unknown duplicate policy %q", s)
	}
}

type settings struct {
	policy DuplicatePolicy
	logger zerolog.Logger
}

func defaultSettings() settings {
	return settings{policy: DuplicateWarn, logger: zerolog.Nop()}
}

// Option configures a Group or Ledger at construction time.
type Option func(*settings)

// WithDuplicatePolicy sets the duplicate-registration policy.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(s *settings) { s.policy = p }
}

// WithLogger sets the logger used for duplicate-registration warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}
