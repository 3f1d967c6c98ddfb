package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mindwell/journal/internal/common"
)

func TestHashAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("correct horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := VerifyPassword("correct horse", digest)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatalf("expected matching plaintext to verify")
	}

	ok, err = VerifyPassword("battery staple", digest)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatching plaintext to fail verification")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("pw", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	b, err := HashPassword("pw", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct digests for the same plaintext")
	}
}

func TestHashPassword_DefaultCost(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("pw", 0)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("bcrypt.Cost error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("cost: got %d want %d", cost, bcrypt.DefaultCost)
	}
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	_, err := VerifyPassword("pw", "not-a-bcrypt-digest")
	if !errors.Is(err, common.ErrHashing) {
		t.Fatalf("expected common.ErrHashing for malformed digest, got %v", err)
	}
}
