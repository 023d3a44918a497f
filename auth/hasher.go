package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher wraps bcrypt with a configured cost. Stateless and safe
// for concurrent use.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// GenerateHash returns a salted bcrypt hash of the plaintext. It fails only
// on input bcrypt cannot encode: null bytes or more than 72 bytes.
func (h *PasswordHasher) GenerateHash(plaintext string) (string, error) {
	if strings.ContainsRune(plaintext, 0) {
		return "", fmt.Errorf("%w: null byte in password", ErrPasswordEncoding)
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPasswordEncoding, err)
	}
	return string(bytes), nil
}

// VerifyHash reports whether plaintext matches the stored hash. A mismatch
// returns (false, nil); a hash that is not a bcrypt string at all returns
// ErrMalformedHash so callers can log the corrupt record.
func (h *PasswordHasher) VerifyHash(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
}
