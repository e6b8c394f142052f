package usecase

import (
	"context"
	"time"

	"github.com/iho/saku/internal/domain"
)

// LedgerStore provides serialized access to per-session ledgers. A ledger
// performs no locking of its own, so the store is the single place where
// concurrent callers are ordered.
type LedgerStore interface {
	Create(ctx context.Context, session domain.Session) error
	Drop(ctx context.Context, id string) error
	// Update runs fn on the session's ledger under its write lock.
	Update(ctx context.Context, id string, fn func(*domain.Ledger) error) error
	// View runs fn on the session's ledger under its read lock.
	View(ctx context.Context, id string, fn func(*domain.Ledger) error) error
}

// EventPublisher delivers ledger mutation events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.Event) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
