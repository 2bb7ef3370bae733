package auth

import "errors"

// General authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Session and reset-token errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTokenInvalid    = errors.New("invalid reset token")
)

// Request parsing errors, treated as simple denials rather than hard failures
var (
	ErrMalformedHeader = errors.New("malformed authorization header")
	ErrNoSessionCookie = errors.New("no session cookie")
)
