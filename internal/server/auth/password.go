// Package auth implements the credential codec (bcrypt password digests)
// and the bearer-token protocol (HS256 JWTs bound to a user email).
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mindwell/journal/internal/common"
)

// HashPassword produces a randomly-salted bcrypt digest. The same plaintext
// yields a different digest on every call. A cost of 0 falls back to
// bcrypt.DefaultCost.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrHashing, err)
	}

	return string(digest), nil
}

// VerifyPassword recomputes the digest using the salt embedded in it.
// A mismatch is (false, nil); a malformed digest is a distinct failure
// and returns common.ErrHashing.
func VerifyPassword(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, fmt.Errorf("%w: %v", common.ErrHashing, err)
}
