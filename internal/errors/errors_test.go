package errors

import (
	"fmt"
	"testing"
)

func TestCertupErrorError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := &CertupError{Code: ErrCodeConfig, Message: "DOMAIN is not set"}
		if err.Error() != "DOMAIN is not set" {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})

	t.Run("with domain", func(t *testing.T) {
		err := &CertupError{Code: ErrCodeCertbot, Message: "issuance failed", Domain: "example.com"}
		if err.Error() != "example.com: issuance failed" {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})

	t.Run("with wrapped error", func(t *testing.T) {
		inner := New("exit status 1")
		err := &CertupError{Code: ErrCodeCompose, Message: "compose up failed", Err: inner}
		want := "compose up failed: exit status 1"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("with domain and wrapped error", func(t *testing.T) {
		inner := New("rate limited")
		err := &CertupError{Code: ErrCodeCertbot, Message: "issuance failed", Domain: "example.com", Err: inner}
		want := "example.com: issuance failed: rate limited"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})
}

func TestIsMatchesByCode(t *testing.T) {
	err := WrapDomain(ErrCodeConfig, "", "DOMAIN is not set", nil)
	if !Is(err, ErrDomainRequired) {
		t.Error("errors with the same code should match")
	}
	if Is(err, ErrComposeNotFound) {
		t.Error("errors with different codes should not match")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("issue: %w", ErrEmailRequired)
	if !Is(err, ErrEmailRequired) {
		t.Error("sentinel should match through fmt.Errorf wrapping")
	}
}

func TestUnwrap(t *testing.T) {
	inner := New("boom")
	err := Wrap(ErrCodeProxy, "reload failed", inner)
	if !Is(err, inner) {
		t.Error("wrapped error should be reachable via Is")
	}

	var cerr *CertupError
	if !As(err, &cerr) {
		t.Fatal("As should find CertupError")
	}
	if cerr.Code != ErrCodeProxy {
		t.Errorf("expected PROXY code, got %s", cerr.Code)
	}
	if cerr.Unwrap() != inner {
		t.Error("Unwrap should return the inner error")
	}
}

func TestValidation(t *testing.T) {
	err := Validation("domain cannot contain spaces")
	var cerr *CertupError
	if !As(err, &cerr) {
		t.Fatal("expected CertupError")
	}
	if cerr.Code != ErrCodeValidation {
		t.Errorf("expected VALIDATION code, got %s", cerr.Code)
	}
	if !Is(err, ErrInvalidDomain) {
		t.Error("validation errors should share the VALIDATION code")
	}
}
