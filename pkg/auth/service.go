package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/password"
	"github.com/dmitrymomot/authkit/pkg/session"
)

// Service is the facade every route handler talks to. It orchestrates
// registration, login, session resolution and the password-reset flow over
// a UserStore and a session.Store.
type Service struct {
	users    UserStore
	sessions session.Store
	hasher   *password.Hasher
	log      *slog.Logger
}

// Option configures a Service during construction.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithHasher overrides the password hasher, mainly to lower the bcrypt cost
// in tests.
func WithHasher(hasher *password.Hasher) Option {
	return func(s *Service) {
		s.hasher = hasher
	}
}

// New creates an auth service over the given stores.
func New(users UserStore, sessions session.Store, opts ...Option) *Service {
	s := &Service{
		users:    users,
		sessions: sessions,
		hasher:   password.New(),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account for email, failing with ErrEmailAlreadyExists
// when the address is taken. The store's uniqueness constraint backs the
// lookup, so concurrent registrations of the same email cannot both win.
func (s *Service) Register(ctx context.Context, email, plainPassword string) (*User, error) {
	email = normalizeEmail(email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("auth: check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	user, err := s.users.Insert(ctx, email, hash)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("auth: create user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		logger.UserID(user.ID),
		logger.Component("auth"),
	)
	return user, nil
}

// ValidateLogin reports whether email and password form a valid credential
// pair. Store failures fold into false; it never returns an error.
func (s *Service) ValidateLogin(ctx context.Context, email, plainPassword string) bool {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false
	}
	return s.hasher.Verify(user.HashedPassword, plainPassword)
}

// Login validates the credentials, creates a fresh session superseding any
// prior one, persists the session id on the user row and returns it.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !s.hasher.Verify(user.HashedPassword, plainPassword) {
		return "", ErrInvalidCredentials
	}

	if err := s.sessions.Destroy(ctx, user.ID); err != nil {
		return "", fmt.Errorf("auth: supersede session: %w", err)
	}

	sessionID, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("auth: create session: %w", err)
	}

	if err := s.users.Update(ctx, user.ID, UserUpdate{SessionID: &sessionID}); err != nil {
		_ = s.sessions.Destroy(ctx, user.ID)
		return "", fmt.Errorf("auth: persist session: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		logger.UserID(user.ID),
		logger.Component("auth"),
	)
	return sessionID, nil
}

// Logout clears the user's session. Logging out an already logged-out user
// is a no-op, not an error.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	if err := s.sessions.Destroy(ctx, userID); err != nil {
		return fmt.Errorf("auth: destroy session: %w", err)
	}

	cleared := ""
	if err := s.users.Update(ctx, userID, UserUpdate{SessionID: &cleared}); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("auth: clear session id: %w", err)
	}
	return nil
}

// ResolveSession returns the user owning sessionID, or ErrSessionNotFound
// when the id is empty or unmatched.
func (s *Service) ResolveSession(ctx context.Context, sessionID string) (*User, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	user, err := s.users.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("auth: resolve session: %w", err)
	}
	return user, nil
}

// RequestPasswordReset issues a fresh reset token for the account behind
// email, overwriting any prior token. It fails with ErrUserNotFound when
// the email is unmatched.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("auth: find user: %w", err)
	}

	token := uuid.NewString()
	if err := s.users.Update(ctx, user.ID, UserUpdate{ResetToken: &token}); err != nil {
		return "", fmt.Errorf("auth: persist reset token: %w", err)
	}

	s.log.InfoContext(ctx, "password reset requested",
		logger.UserID(user.ID),
		logger.Component("auth"),
	)
	return token, nil
}

// CompletePasswordReset consumes resetToken: the password is re-hashed and
// stored, and the token is cleared so it cannot be used twice. Unknown or
// already consumed tokens fail with ErrTokenInvalid.
func (s *Service) CompletePasswordReset(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" {
		return ErrTokenInvalid
	}

	user, err := s.users.FindByResetToken(ctx, resetToken)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("auth: find reset token: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}

	cleared := ""
	if err := s.users.Update(ctx, user.ID, UserUpdate{HashedPassword: hash, ResetToken: &cleared}); err != nil {
		return fmt.Errorf("auth: update password: %w", err)
	}

	s.log.InfoContext(ctx, "password reset completed",
		logger.UserID(user.ID),
		logger.Component("auth"),
	)
	return nil
}

// normalizeEmail canonicalizes an address for lookups and storage.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
