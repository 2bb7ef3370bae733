package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/pg"
)

// UserStore persists accounts in the users table. Nullable text columns
// (session_id, reset_token) map to empty strings on the domain type; writing
// an empty string stores NULL so the unique indexes ignore cleared values.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

const userColumns = `id, email, hashed_password, COALESCE(session_id, ''), COALESCE(reset_token, ''), created_at`

func (s *UserStore) scanUser(ctx context.Context, query string, arg any) (*auth.User, error) {
	var user auth.User
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.SessionID,
		&user.ResetToken,
		&user.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres: query user: %w", err)
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *UserStore) FindBySessionID(ctx context.Context, sessionID string) (*auth.User, error) {
	if sessionID == "" {
		return nil, auth.ErrUserNotFound
	}
	return s.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE session_id = $1`, sessionID)
}

func (s *UserStore) FindByResetToken(ctx context.Context, token string) (*auth.User, error) {
	if token == "" {
		return nil, auth.ErrUserNotFound
	}
	return s.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE reset_token = $1`, token)
}

func (s *UserStore) Insert(ctx context.Context, email string, hashedPassword []byte) (*auth.User, error) {
	var user auth.User
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, hashed_password)
		 VALUES ($1, $2)
		 RETURNING `+userColumns,
		email, hashedPassword,
	).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.SessionID,
		&user.ResetToken,
		&user.CreatedAt,
	)
	if err != nil {
		if pg.IsUniqueViolationError(err) {
			return nil, auth.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("postgres: insert user: %w", err)
	}
	return &user, nil
}

func (s *UserStore) Update(ctx context.Context, id int64, update auth.UserUpdate) error {
	set := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if update.HashedPassword != nil {
		args = append(args, update.HashedPassword)
		set = append(set, fmt.Sprintf("hashed_password = $%d", len(args)))
	}
	if update.SessionID != nil {
		args = append(args, *update.SessionID)
		set = append(set, fmt.Sprintf("session_id = NULLIF($%d, '')", len(args)))
	}
	if update.ResetToken != nil {
		args = append(args, *update.ResetToken)
		set = append(set, fmt.Sprintf("reset_token = NULLIF($%d, '')", len(args)))
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("postgres: update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}
