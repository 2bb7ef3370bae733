package auth

import (
	"context"
	"time"
)

// User is an account row in the user store. Email uniquely identifies at
// most one user. SessionID and ResetToken are empty when the corresponding
// column is NULL; each non-empty value identifies at most one user.
type User struct {
	ID             int64
	Email          string
	HashedPassword []byte
	SessionID      string
	ResetToken     string
	CreatedAt      time.Time
}

// UserUpdate describes a partial update to a user row. Nil fields are left
// unchanged; a pointer to the empty string clears the column to NULL.
type UserUpdate struct {
	HashedPassword []byte
	SessionID      *string
	ResetToken     *string
}

// UserStore is the persistence boundary the auth layer depends on. Lookup
// misses are reported as ErrUserNotFound; Insert reports a duplicate email
// as ErrEmailAlreadyExists (backed by a uniqueness constraint, so two
// concurrent registrations cannot both succeed).
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindBySessionID(ctx context.Context, sessionID string) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)
	Insert(ctx context.Context, email string, hashedPassword []byte) (*User, error)
	Update(ctx context.Context, id int64, update UserUpdate) error
}
