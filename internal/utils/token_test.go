package utils

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, "a@x.com", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token string")
	}

	wantExp := time.Now().UTC().Add(60 * time.Minute)
	if d := tok.Exp.Sub(wantExp); d < -5*time.Second || d > 5*time.Second {
		t.Errorf("expiry: got %v, want about %v", tok.Exp, wantExp)
	}

	claims, err := ParseAccessToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id: got %d, want 42", claims.UserID)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("email: got %q, want a@x.com", claims.Email)
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	// A negative TTL yields a token whose exp is already in the past.
	tok, err := NewAccessToken(testSecret, 1, "a@x.com", -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	_, err = ParseAccessToken(testSecret, tok.Token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expired token: got %v, want ErrTokenExpired", err)
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 1, "a@x.com", 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	_, err = ParseAccessToken("other-secret", tok.Token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("wrong secret: got %v, want ErrTokenInvalid", err)
	}
}

func TestParseAccessTokenMalformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		if _, err := ParseAccessToken(testSecret, raw); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("ParseAccessToken(%q): got %v, want ErrTokenInvalid", raw, err)
		}
	}
}
