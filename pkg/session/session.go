package session

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// Session maps an opaque token to its owning user. Records are owned by the
// Store that created them.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// tokenLength is the number of random bytes behind each session token.
const tokenLength = 32

// generateToken returns a fresh unguessable session token.
func generateToken() (string, error) {
	buf := make([]byte, tokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", ErrTokenGeneration
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// expired reports whether a session created at createdAt has outlived ttl at
// instant now. A non-positive ttl disables expiration entirely. The boundary
// is strict: a session checked exactly at its expiry instant is still valid.
func expired(createdAt time.Time, ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return now.After(createdAt.Add(ttl))
}
