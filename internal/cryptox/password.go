// Package cryptox holds the password hashing primitives used by the server.
//
// Hashes are produced with bcrypt. The work factor is chosen at construction
// and is encoded inside every hash, so raising it later does not invalidate
// hashes that are already stored.
package cryptox

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords with a fixed bcrypt cost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher for the given work factor. Values outside
// bcrypt's accepted range are clamped to it.
func NewPasswordHasher(workFactor int) *PasswordHasher {
	switch {
	case workFactor < bcrypt.MinCost:
		workFactor = bcrypt.MinCost
	case workFactor > bcrypt.MaxCost:
		workFactor = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: workFactor}
}

// WorkFactor reports the cost new hashes are created with.
func (h *PasswordHasher) WorkFactor() int {
	return h.cost
}

// Hash returns the bcrypt hash of password. The salt is generated internally,
// so hashing the same password twice yields different strings.
func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether password matches hash. A malformed hash is treated
// as a mismatch.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Cost returns the work factor embedded in a stored hash.
func Cost(hash string) (int, error) {
	return bcrypt.Cost([]byte(hash))
}
