package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Cost 12 makes the hash slow enough to resist offline brute force.
// Each request runs on its own goroutine, so hashing does not block
// unrelated request handling.
const defaultHashCost = 12

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(raw string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = defaultHashCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare is constant-time with respect to the stored hash.
func (h BcryptHasher) Compare(hash, raw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
}
