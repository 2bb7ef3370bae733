package session

import "errors"

var (
	// ErrSessionNotFound indicates no record exists for the token.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired indicates the record exists but has outlived its ttl.
	ErrSessionExpired = errors.New("session.expired")

	// ErrInvalidUserID indicates a session was requested for an invalid user.
	ErrInvalidUserID = errors.New("session.invalid_user_id")

	// ErrTokenGeneration indicates the random token source failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")
)
