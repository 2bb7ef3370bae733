package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of Redis so sessions survive process
// restarts. Each session is stored twice: under its token for Resolve and
// under its user id for Destroy, which keeps both operations O(1).
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed session store using the "session:"
// key prefix.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
		now:    time.Now,
	}
}

func (r *RedisStore) tokenKey(token string) string {
	return r.prefix + "token:" + token
}

func (r *RedisStore) userKey(userID int64) string {
	return fmt.Sprintf("%suser:%d", r.prefix, userID)
}

// Create generates a token and records the session. Any prior session the
// user holds is deleted along with its token key, so a superseded token can
// never resolve again and stale keys cannot accumulate.
func (r *RedisStore) Create(ctx context.Context, userID int64) (string, error) {
	if userID <= 0 {
		return "", ErrInvalidUserID
	}

	token, err := generateToken()
	if err != nil {
		return "", err
	}

	record, err := json.Marshal(Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: r.now(),
	})
	if err != nil {
		return "", fmt.Errorf("session: marshal record: %w", err)
	}

	prev, err := r.client.Get(ctx, r.userKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("session: fetch user index: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if prev != "" {
			pipe.Del(ctx, r.tokenKey(prev))
		}
		pipe.Set(ctx, r.tokenKey(token), record, 0)
		pipe.Set(ctx, r.userKey(userID), token, 0)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("session: store record: %w", err)
	}

	return token, nil
}

// Resolve returns the user id behind token, applying the lazy ttl check.
func (r *RedisStore) Resolve(ctx context.Context, token string, ttl time.Duration) (int64, error) {
	if token == "" {
		return 0, ErrSessionNotFound
	}

	raw, err := r.client.Get(ctx, r.tokenKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("session: fetch record: %w", err)
	}

	var record Session
	if err := json.Unmarshal(raw, &record); err != nil {
		return 0, fmt.Errorf("session: decode record: %w", err)
	}

	if expired(record.CreatedAt, ttl, r.now()) {
		return 0, ErrSessionExpired
	}
	return record.UserID, nil
}

// Destroy removes the user's session and its token reference.
func (r *RedisStore) Destroy(ctx context.Context, userID int64) error {
	token, err := r.client.Get(ctx, r.userKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("session: fetch user index: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.tokenKey(token))
		pipe.Del(ctx, r.userKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("session: delete record: %w", err)
	}
	return nil
}
