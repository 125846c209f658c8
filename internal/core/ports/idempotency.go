package ports

import (
	"context"
	"time"
)

// IdempotencyStore remembers which resource a client-supplied
// Idempotency-Key produced so that retries replay instead of duplicating.
//
// A key moves through three states: absent, reserved (a create is in
// flight, no resource id yet) and completed.
type IdempotencyStore interface {
	// Reserve atomically claims an absent key for ttl and reports
	// reserved=true. When the key is already held it reports false together
	// with the stored resource id, which is empty while the first create is
	// still in flight.
	Reserve(ctx context.Context, key string, ttl time.Duration) (resourceID string, reserved bool, err error)
	// Complete records resourceID under a key for ttl.
	Complete(ctx context.Context, key, resourceID string, ttl time.Duration) error
	// Release drops a key whose create failed so a retry can run.
	Release(ctx context.Context, key string) error
}
