package auth

import (
	"errors"
	"testing"
	"time"

	"chirp/internal/models"
)

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	tokens := NewTokenManager("unit-test-secret", time.Hour)
	user := &models.User{ID: 42, Username: "alice"}

	signed, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	identity, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if identity.UserID != 42 || identity.Username != "alice" {
		t.Errorf("identity = %+v, want user 42 / alice", identity)
	}
}

func TestVerifyEmptyToken(t *testing.T) {
	tokens := NewTokenManager("unit-test-secret", time.Hour)
	if _, err := tokens.Verify(""); !errors.Is(err, ErrTokenMissing) {
		t.Errorf("Verify(\"\") = %v, want ErrTokenMissing", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	signed, err := issuer.Issue(&models.User{ID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Verify(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("cross-secret Verify = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	tokens := NewTokenManager("unit-test-secret", time.Hour)
	if _, err := tokens.Verify("not.a.jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("garbage Verify = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	tokens := NewTokenManager("unit-test-secret", -time.Minute)

	signed, err := tokens.Issue(&models.User{ID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := tokens.Verify(signed); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expired Verify = %v, want ErrTokenExpired", err)
	}
}
