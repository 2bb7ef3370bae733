package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/session"
)

const testCookie = "_session_id"

func requestWithCookie(token string) *http.Request {
	req, _ := http.NewRequest(http.MethodGet, "/profile", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	return req
}

func TestSessionAuth_CurrentUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	setup := func(t *testing.T) (*SessionAuth, *Service, *User, string) {
		t.Helper()
		users := newMemUserStore()
		sessions := session.NewMemoryStore()
		svc := New(users, sessions, WithHasher(fastHasher()))

		user, err := svc.Register(ctx, "a@b.com", "pw1")
		require.NoError(t, err)
		sid, err := svc.Login(ctx, "a@b.com", "pw1")
		require.NoError(t, err)

		return NewSessionAuth(users, sessions, testCookie), svc, user, sid
	}

	t.Run("resolves a live session", func(t *testing.T) {
		t.Parallel()

		strategy, _, want, sid := setup(t)
		user, err := strategy.CurrentUser(ctx, requestWithCookie(sid))
		require.NoError(t, err)
		assert.Equal(t, want.ID, user.ID)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		strategy, _, _, _ := setup(t)
		_, err := strategy.CurrentUser(ctx, requestWithCookie(""))
		assert.ErrorIs(t, err, ErrNoSessionCookie)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()

		strategy, _, _, _ := setup(t)
		_, err := strategy.CurrentUser(ctx, requestWithCookie("bogus"))
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("destroyed session", func(t *testing.T) {
		t.Parallel()

		strategy, svc, user, sid := setup(t)
		require.NoError(t, svc.Logout(ctx, user.ID))

		_, err := strategy.CurrentUser(ctx, requestWithCookie(sid))
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("nil request", func(t *testing.T) {
		t.Parallel()

		strategy, _, _, _ := setup(t)
		_, err := strategy.CurrentUser(ctx, nil)
		assert.ErrorIs(t, err, ErrNoSessionCookie)
	})
}

func TestSessionExpAuth_CurrentUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("applies the configured ttl", func(t *testing.T) {
		t.Parallel()

		users := &MockUserStore{}
		sessions := &MockSessionStore{}
		strategy := NewSessionExpAuth(users, sessions, session.Config{
			CookieName: testCookie,
			Duration:   "60",
		})

		sessions.On("Resolve", mock.Anything, "sid-1", time.Minute).
			Return(int64(0), session.ErrSessionExpired)

		_, err := strategy.CurrentUser(ctx, requestWithCookie("sid-1"))
		assert.ErrorIs(t, err, ErrSessionNotFound)
		sessions.AssertExpectations(t)
	})

	t.Run("malformed duration disables expiration", func(t *testing.T) {
		t.Parallel()

		users := &MockUserStore{}
		sessions := &MockSessionStore{}
		strategy := NewSessionExpAuth(users, sessions, session.Config{
			CookieName: testCookie,
			Duration:   "not-a-number",
		})

		sessions.On("Resolve", mock.Anything, "sid-1", time.Duration(0)).
			Return(int64(3), nil)
		users.On("FindBySessionID", mock.Anything, "sid-1").
			Return(&User{ID: 3, Email: "a@b.com", SessionID: "sid-1"}, nil)

		user, err := strategy.CurrentUser(ctx, requestWithCookie("sid-1"))
		require.NoError(t, err)
		assert.Equal(t, int64(3), user.ID)
	})

	t.Run("rejects a session whose user row disagrees", func(t *testing.T) {
		t.Parallel()

		users := &MockUserStore{}
		sessions := &MockSessionStore{}
		strategy := NewSessionExpAuth(users, sessions, session.Config{CookieName: testCookie})

		sessions.On("Resolve", mock.Anything, "sid-1", time.Duration(0)).
			Return(int64(3), nil)
		users.On("FindBySessionID", mock.Anything, "sid-1").
			Return(&User{ID: 4, Email: "b@b.com", SessionID: "sid-1"}, nil)

		_, err := strategy.CurrentUser(ctx, requestWithCookie("sid-1"))
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
