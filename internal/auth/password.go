package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords with a slow adaptive hash
type PasswordHasher interface {
	// Hash returns the encoded hash of plain
	Hash(plain string) (string, error)
	// Verify reports whether plain matches the encoded hash
	Verify(hash, plain string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with a fixed bcrypt work factor
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("password hashing failed: %w", err)
	}
	return string(hashed), nil
}

func (h *bcryptHasher) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
