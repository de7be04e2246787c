// Package cache provides the key -> (value, expiry) store backing the
// content snapshot. Entries are JSON-encoded and expire after a fixed
// revalidation window.
package cache

import (
	"context"
	"time"
)

// Store is the minimal cache contract the service depends on. A miss is
// reported via the boolean, not an error; errors are reserved for transport
// failures.
type Store interface {
	// GetJSON unmarshals the cached value for key into dest.
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	// SetJSON marshals value and stores it under key for ttl.
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
