package auth

import (
	"context"
	"sync"
	"time"
)

// memUserStore is a map-backed UserStore used by the flow tests. It
// enforces the same uniqueness rules a real store would.
type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*User)}
}

func (s *memUserStore) findBy(match func(*User) bool) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *memUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findBy(func(u *User) bool { return u.Email == email })
}

func (s *memUserStore) FindBySessionID(ctx context.Context, sessionID string) (*User, error) {
	if sessionID == "" {
		return nil, ErrUserNotFound
	}
	return s.findBy(func(u *User) bool { return u.SessionID == sessionID })
}

func (s *memUserStore) FindByResetToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrUserNotFound
	}
	return s.findBy(func(u *User) bool { return u.ResetToken == token })
}

func (s *memUserStore) Insert(ctx context.Context, email string, hashedPassword []byte) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return nil, ErrEmailAlreadyExists
		}
	}

	s.nextID++
	user := &User{
		ID:             s.nextID,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now(),
	}
	s.users[user.ID] = user

	clone := *user
	return &clone, nil
}

func (s *memUserStore) Update(ctx context.Context, id int64, update UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if update.HashedPassword != nil {
		user.HashedPassword = update.HashedPassword
	}
	if update.SessionID != nil {
		user.SessionID = *update.SessionID
	}
	if update.ResetToken != nil {
		user.ResetToken = *update.ResetToken
	}
	return nil
}
