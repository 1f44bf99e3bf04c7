package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when PasswordHasher is built with cost 0.
const DefaultBcryptCost = 10

// ErrPasswordTooLong is returned by Hash for passwords bcrypt cannot take
// (more than 72 bytes). It is a client fault, not a hashing failure.
var ErrPasswordTooLong = errors.New("password too long")

// PasswordHasher produces and checks salted bcrypt hashes. The hash string
// carries its own salt and cost, so nothing else needs to be stored.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given bcrypt cost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// Verify compares plaintext with hash.
//
// It has three outcomes: (true, nil) on match, (false, nil) on mismatch and
// (false, err) when hash is not a usable bcrypt hash. A wrong password is
// never an error.
func (h *PasswordHasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("bcrypt: %w", err)
	}
}
