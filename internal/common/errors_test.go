package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError_MatchesSentinel(t *testing.T) {
	t.Parallel()

	err := NewNotFoundError("u-42")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected NotFoundError to match ErrNotFound, got %v", err)
	}

	wrapped := fmt.Errorf("service error: %w", err)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("expected wrapped NotFoundError to match ErrNotFound")
	}
}

func TestNotFoundError_CarriesKey(t *testing.T) {
	t.Parallel()

	err := NewNotFoundError("a@x.com")

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if nf.Key != "a@x.com" {
		t.Fatalf("unexpected key: %q", nf.Key)
	}
}

func TestNotFoundError_DoesNotMatchOtherSentinels(t *testing.T) {
	t.Parallel()

	err := NewNotFoundError("x")
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) {
		t.Fatalf("NotFoundError must only match ErrNotFound")
	}
}
