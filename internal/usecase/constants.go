package usecase

import "time"

const (
	// DefaultPageSize is used when a list request does not set a limit.
	DefaultPageSize = 20

	// MaxPageSize caps list requests to keep responses bounded.
	MaxPageSize = 100

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
