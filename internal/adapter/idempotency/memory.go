package idempotency

import (
	"context"
	"sync"
	"time"
)

// processingMarker locks a key while the first request is in flight.
const processingMarker = "processing"

// sweepInterval bounds how often expired entries are evicted.
const sweepInterval = time.Minute

type memoryEntry struct {
	response  []byte
	expiresAt time.Time
}

// MemoryStore implements usecase.IdempotencyStore in process memory.
// Suitable for a single-instance deployment; state does not survive
// restarts. Expired entries are evicted on write, at most once per
// sweep interval, so the map stays bounded under unique keys.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	nextSweep time.Time
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// CheckAndSet atomically checks if key exists, sets if not.
func (s *MemoryStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.sweepLocked(now)

	if e, ok := s.entries[key]; ok {
		if now.Before(e.expiresAt) {
			return true, e.response, nil
		}
		delete(s.entries, key)
	}

	value := response
	if value == nil {
		value = []byte(processingMarker)
	}
	s.entries[key] = memoryEntry{response: value, expiresAt: now.Add(ttl)}
	return false, nil, nil
}

// Update updates an existing key with the final response.
func (s *MemoryStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.sweepLocked(now)
	s.entries[key] = memoryEntry{response: response, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	if now.Before(s.nextSweep) {
		return
	}
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.nextSweep = now.Add(sweepInterval)
}
