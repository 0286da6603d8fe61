package usecase

import (
	"context"
	"time"
)

// IdempotencyStore handles idempotency key storage for the HTTP surface.
// The core ledger itself does not deduplicate postings.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
