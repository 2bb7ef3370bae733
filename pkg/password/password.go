package password

import "golang.org/x/crypto/bcrypt"

// Hasher derives and verifies salted password hashes.
type Hasher struct {
	cost int
}

// Option configures a Hasher during construction.
type Option func(*Hasher)

// WithCost sets the bcrypt cost factor. Values outside the range bcrypt
// accepts are clamped by the library itself.
func WithCost(cost int) Option {
	return func(h *Hasher) {
		h.cost = cost
	}
}

// New creates a Hasher with the library default cost.
func New(opts ...Option) *Hasher {
	h := &Hasher{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash returns a salted bcrypt hash of password. A fresh salt is generated
// on every call, so hashing the same password twice yields different hashes.
func (h *Hasher) Hash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), h.cost)
}

// Verify reports whether password matches hash. The comparison is constant
// time; malformed hashes verify as false rather than returning an error.
func (h *Hasher) Verify(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
