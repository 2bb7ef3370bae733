package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/password"
	"github.com/dmitrymomot/authkit/pkg/session"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// newCookieClient returns an HTTP client that keeps cookies between
// requests, like a browser would.
func newCookieClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// fakeUserStore is a map-backed auth.UserStore for end-to-end router tests.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*auth.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*auth.User)}
}

func (s *fakeUserStore) findBy(match func(*auth.User) bool) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findBy(func(u *auth.User) bool { return u.Email == email })
}

func (s *fakeUserStore) FindBySessionID(ctx context.Context, sessionID string) (*auth.User, error) {
	if sessionID == "" {
		return nil, auth.ErrUserNotFound
	}
	return s.findBy(func(u *auth.User) bool { return u.SessionID == sessionID })
}

func (s *fakeUserStore) FindByResetToken(ctx context.Context, token string) (*auth.User, error) {
	if token == "" {
		return nil, auth.ErrUserNotFound
	}
	return s.findBy(func(u *auth.User) bool { return u.ResetToken == token })
}

func (s *fakeUserStore) Insert(ctx context.Context, email string, hashedPassword []byte) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return nil, auth.ErrEmailAlreadyExists
		}
	}
	s.nextID++
	u := &auth.User{ID: s.nextID, Email: email, HashedPassword: hashedPassword, CreatedAt: time.Now()}
	s.users[u.ID] = u
	clone := *u
	return &clone, nil
}

func (s *fakeUserStore) Update(ctx context.Context, id int64, update auth.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	if update.HashedPassword != nil {
		u.HashedPassword = update.HashedPassword
	}
	if update.SessionID != nil {
		u.SessionID = *update.SessionID
	}
	if update.ResetToken != nil {
		u.ResetToken = *update.ResetToken
	}
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	users := newFakeUserStore()
	sessions := session.NewMemoryStore()
	svc := auth.New(users, sessions, auth.WithHasher(password.New(password.WithCost(bcrypt.MinCost))))

	sessionCfg := session.Config{CookieName: "session_id", Duration: "0"}
	cfg := Config{
		AuthType:      "session_exp_auth",
		ExcludedPaths: []string{"/", "/status", "/users", "/sessions", "/reset_password"},
	}

	strategy := BuildStrategy(cfg, users, sessions, sessionCfg, newTestLogger())
	handler := NewHandler(svc, sessionCfg.CookieName, newTestLogger())

	ts := httptest.NewServer(Router(handler, strategy, cfg))
	t.Cleanup(ts.Close)
	return ts
}

func postForm(t *testing.T, client *http.Client, rawURL string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(rawURL, form)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	defer resp.Body.Close()
	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func TestRouter_PublicEndpoints(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bienvenue", decodeJSON(t, resp)["message"])

	resp, err = http.Get(ts.URL + "/status")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", decodeJSON(t, resp)["status"])
}

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	form := url.Values{"email": {"a@b.com"}, "password": {"pw1"}}

	resp := postForm(t, http.DefaultClient, ts.URL+"/users", form)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	payload := decodeJSON(t, resp)
	assert.Equal(t, "a@b.com", payload["email"])
	assert.Equal(t, "user created", payload["message"])

	resp = postForm(t, http.DefaultClient, ts.URL+"/users", form)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email already registered", decodeJSON(t, resp)["message"])
}

func TestRouter_SessionLifecycle(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	client := newCookieClient(t)

	resp := postForm(t, client, ts.URL+"/users", url.Values{"email": {"a@b.com"}, "password": {"pw1"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Wrong password is rejected before any cookie is issued.
	resp = postForm(t, client, ts.URL+"/sessions", url.Values{"email": {"a@b.com"}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Profile without a session is unauthorized: the middleware rejects the
	// request before the handler runs.
	resp, err := client.Get(ts.URL + "/profile")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postForm(t, client, ts.URL+"/sessions", url.Values{"email": {"a@b.com"}, "password": {"pw1"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "logged in", decodeJSON(t, resp)["message"])

	resp, err = client.Get(ts.URL + "/profile")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a@b.com", decodeJSON(t, resp)["email"])

	// Logout redirects home and invalidates the session.
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/sessions", nil)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode) // after following the redirect
	resp.Body.Close()

	resp, err = client.Get(ts.URL + "/profile")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Logging out again without a session is forbidden.
	req, err = http.NewRequest(http.MethodDelete, ts.URL+"/sessions", nil)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_PasswordReset(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	resp := postForm(t, http.DefaultClient, ts.URL+"/users", url.Values{"email": {"a@b.com"}, "password": {"pw1"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Unknown email is forbidden.
	resp = postForm(t, http.DefaultClient, ts.URL+"/reset_password", url.Values{"email": {"ghost@b.com"}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = postForm(t, http.DefaultClient, ts.URL+"/reset_password", url.Values{"email": {"a@b.com"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	payload := decodeJSON(t, resp)
	token := payload["reset_token"]
	require.NotEmpty(t, token)

	update := url.Values{
		"email":        {"a@b.com"},
		"reset_token":  {token},
		"new_password": {"pw2"},
	}
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/reset_password", strings.NewReader(update.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Password updated", decodeJSON(t, resp)["message"])

	// The old password no longer logs in, the new one does.
	resp = postForm(t, http.DefaultClient, ts.URL+"/sessions", url.Values{"email": {"a@b.com"}, "password": {"pw1"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postForm(t, http.DefaultClient, ts.URL+"/sessions", url.Values{"email": {"a@b.com"}, "password": {"pw2"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Tokens are single use.
	req, err = http.NewRequest(http.MethodPut, ts.URL+"/reset_password", strings.NewReader(update.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestBuildStrategy(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	sessions := session.NewMemoryStore()
	sessionCfg := session.Config{CookieName: "session_id"}
	log := newTestLogger()

	tests := []struct {
		authType string
		want     any
	}{
		{"none", auth.NoAuth{}},
		{"basic_auth", &auth.BasicAuth{}},
		{"session_auth", &auth.SessionAuth{}},
		{"session_exp_auth", &auth.SessionExpAuth{}},
		{"bogus", &auth.SessionExpAuth{}},
	}
	for _, tt := range tests {
		t.Run(tt.authType, func(t *testing.T) {
			t.Parallel()
			got := BuildStrategy(Config{AuthType: tt.authType}, users, sessions, sessionCfg, log)
			assert.IsType(t, tt.want, got)
		})
	}
}
