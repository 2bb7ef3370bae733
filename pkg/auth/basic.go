package auth

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/dmitrymomot/authkit/pkg/password"
)

// basicScheme is the exact header prefix: scheme token, single space.
const basicScheme = "Basic "

// BasicAuth authenticates requests carrying HTTP Basic credentials in the
// Authorization header.
type BasicAuth struct {
	users  UserStore
	hasher *password.Hasher
}

// NewBasicAuth creates a Basic authentication strategy over the user store.
func NewBasicAuth(users UserStore) *BasicAuth {
	return &BasicAuth{
		users:  users,
		hasher: password.New(),
	}
}

func (b *BasicAuth) RequireAuth(path string, excludedPaths []string) bool {
	return requireAuth(path, excludedPaths)
}

// ExtractCredentials splits a Basic authorization header into the email and
// password it carries. The scheme prefix is case-sensitive; anything that
// is not "Basic ", valid base64 and a colon-separated pair fails with
// ErrMalformedHeader.
func ExtractCredentials(header string) (email, plainPassword string, err error) {
	if !strings.HasPrefix(header, basicScheme) {
		return "", "", ErrMalformedHeader
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, basicScheme))
	if err != nil {
		return "", "", ErrMalformedHeader
	}

	email, plainPassword, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", ErrMalformedHeader
	}
	return email, plainPassword, nil
}

// CurrentUser extracts Basic credentials and checks them against the user
// store. An unmatched email yields ErrUserNotFound while a wrong password
// yields ErrInvalidCredentials, preserving the API's historical 404/401
// split. Unexpected store failures fold into ErrUserNotFound.
func (b *BasicAuth) CurrentUser(ctx context.Context, r *http.Request) (*User, error) {
	if r == nil {
		return nil, ErrUnauthorized
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrUnauthorized
	}

	email, plainPassword, err := ExtractCredentials(header)
	if err != nil {
		return nil, err
	}

	user, err := b.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, ErrUserNotFound
	}

	if !b.hasher.Verify(user.HashedPassword, plainPassword) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
