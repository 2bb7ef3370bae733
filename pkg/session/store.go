package session

import (
	"context"
	"time"
)

// Store owns the session lifecycle: absent, active, then expired or
// destroyed. Implementations must be safe for concurrent use.
type Store interface {
	// Create generates a fresh token for userID and records it together
	// with the creation time. It fails with ErrInvalidUserID for
	// non-positive user ids.
	Create(ctx context.Context, userID int64) (string, error)

	// Resolve returns the user id behind token. Unknown and empty tokens
	// yield ErrSessionNotFound. A non-positive ttl disables the expiry
	// check; otherwise a record older than ttl yields ErrSessionExpired.
	// Expiration is evaluated lazily: Resolve never purges the record.
	Resolve(ctx context.Context, token string, ttl time.Duration) (int64, error)

	// Destroy removes every session owned by userID. Destroying a user
	// with no sessions is a no-op.
	Destroy(ctx context.Context, userID int64) error
}
