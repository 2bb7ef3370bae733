package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/authkit/pkg/session"
)

// SessionAuth authenticates requests by the opaque session id carried in a
// named cookie. The session store answers whether the id is live; the user
// store remains the source of truth for the id-to-user mapping.
type SessionAuth struct {
	users      UserStore
	sessions   session.Store
	cookieName string
}

// NewSessionAuth creates a session strategy without expiration.
func NewSessionAuth(users UserStore, sessions session.Store, cookieName string) *SessionAuth {
	return &SessionAuth{
		users:      users,
		sessions:   sessions,
		cookieName: cookieName,
	}
}

func (a *SessionAuth) RequireAuth(path string, excludedPaths []string) bool {
	return requireAuth(path, excludedPaths)
}

func (a *SessionAuth) CurrentUser(ctx context.Context, r *http.Request) (*User, error) {
	return a.currentUser(ctx, r, 0)
}

// sessionCookie returns the raw session id from the request cookie.
func (a *SessionAuth) sessionCookie(r *http.Request) (string, error) {
	if r == nil {
		return "", ErrNoSessionCookie
	}
	cookie, err := r.Cookie(a.cookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSessionCookie
	}
	return cookie.Value, nil
}

func (a *SessionAuth) currentUser(ctx context.Context, r *http.Request, ttl time.Duration) (*User, error) {
	token, err := a.sessionCookie(r)
	if err != nil {
		return nil, err
	}

	userID, err := a.sessions.Resolve(ctx, token, ttl)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) || errors.Is(err, session.ErrSessionExpired) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("auth: resolve session: %w", err)
	}

	user, err := a.users.FindBySessionID(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("auth: load session user: %w", err)
	}
	if user.ID != userID {
		return nil, ErrSessionNotFound
	}
	return user, nil
}

// SessionExpAuth wraps SessionAuth with a session lifetime: the lazy ttl
// check runs before the id resolves to a user.
type SessionExpAuth struct {
	inner *SessionAuth
	ttl   time.Duration
}

// NewSessionExpAuth creates an expiring session strategy from the session
// config. A config with no usable duration degrades to "never expires".
func NewSessionExpAuth(users UserStore, sessions session.Store, cfg session.Config) *SessionExpAuth {
	return &SessionExpAuth{
		inner: NewSessionAuth(users, sessions, cfg.CookieName),
		ttl:   cfg.TTL(),
	}
}

func (a *SessionExpAuth) RequireAuth(path string, excludedPaths []string) bool {
	return a.inner.RequireAuth(path, excludedPaths)
}

func (a *SessionExpAuth) CurrentUser(ctx context.Context, r *http.Request) (*User, error) {
	return a.inner.currentUser(ctx, r, a.ttl)
}
