package auth

import (
	"errors"
	"strings"
	"testing"
)

// TestPasswordHasher_GenerateAndVerify ensures hashing and verification work
// for matching and non-matching passwords.
func TestPasswordHasher_GenerateAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(4) // minimum cost keeps the test fast
	password := "mySecretPassword123"

	hash, err := hasher.GenerateHash(password)
	if err != nil {
		t.Fatalf("GenerateHash() returned an unexpected error: %v", err)
	}
	if hash == password {
		t.Errorf("Hash should not equal the original password.")
	}

	match, err := hasher.VerifyHash(password, hash)
	if err != nil {
		t.Fatalf("VerifyHash() returned an unexpected error: %v", err)
	}
	if !match {
		t.Errorf("VerifyHash() should have returned true for a matching password.")
	}

	match, err = hasher.VerifyHash("notMyPassword", hash)
	if err != nil {
		t.Fatalf("VerifyHash() returned an unexpected error: %v", err)
	}
	if match {
		t.Errorf("VerifyHash() should have returned false for a non-matching password.")
	}
}

func TestPasswordHasher_RejectsOversizedInput(t *testing.T) {
	hasher := NewPasswordHasher(4)

	// bcrypt cannot encode more than 72 bytes.
	_, err := hasher.GenerateHash(strings.Repeat("a", 100))
	if !errors.Is(err, ErrPasswordEncoding) {
		t.Errorf("expected ErrPasswordEncoding for oversized input, got %v", err)
	}
}

func TestPasswordHasher_RejectsNullBytes(t *testing.T) {
	hasher := NewPasswordHasher(4)

	_, err := hasher.GenerateHash("pass\x00word")
	if !errors.Is(err, ErrPasswordEncoding) {
		t.Errorf("expected ErrPasswordEncoding for null byte input, got %v", err)
	}
}

// TestPasswordHasher_MalformedStoredHash ensures a corrupt stored hash is a
// distinct, detectable condition rather than a silent "wrong password".
func TestPasswordHasher_MalformedStoredHash(t *testing.T) {
	hasher := NewPasswordHasher(4)

	_, err := hasher.VerifyHash("whatever", "not-a-bcrypt-hash")
	if !errors.Is(err, ErrMalformedHash) {
		t.Errorf("expected ErrMalformedHash for a corrupt stored hash, got %v", err)
	}
}
