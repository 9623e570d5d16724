package clierr

import (
	"errors"
	"testing"
)

func TestError_MessageAndUnwrap(t *testing.T) {
	underlying := errors.New("connection refused")
	e := New(Network, "Could not reach the store.", underlying)

	if e.Type != Network {
		t.Fatalf("type mismatch: %v", e.Type)
	}
	if e.Error() != "Could not reach the store." {
		t.Fatalf("unexpected message: %q", e.Error())
	}
	if !errors.Is(e, underlying) {
		t.Fatal("unwrap failed")
	}
}

func TestError_NilUnderlying(t *testing.T) {
	e := New(Validation, "Invalid product ID", nil)
	if errors.Unwrap(e) != nil {
		t.Fatal("expected nil underlying error")
	}
}
