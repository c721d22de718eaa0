package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func TestHMACStrategyRoundTrip(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})

	token, err := strategy.IssueToken(42, "admin")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	userID, role, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
	if role != "admin" {
		t.Fatalf("expected role admin, got %q", role)
	}
}

func TestHMACStrategyRejectsRoleWithSeparator(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if _, err := strategy.IssueToken(1, "ad:min"); err == nil {
		t.Fatal("expected error for role containing separator")
	}
}

func TestHMACStrategyInvalidTokens(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})

	cases := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"wrong parts", base64.StdEncoding.EncodeToString([]byte("1:2"))},
		{"bad signature", base64.StdEncoding.EncodeToString([]byte("1:user:9999999999:bogus"))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := strategy.ParseToken(tc.token); err != ErrInvalidToken {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestHMACStrategyRejectsForeignSecret(t *testing.T) {
	token, err := NewHMACStrategy("one", Options{}).IssueToken(7, "user")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	if _, _, err := NewHMACStrategy("two", Options{}).ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken with different secret, got %v", err)
	}
}

func TestHMACStrategyExpiry(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: -time.Minute})
	token, err := strategy.IssueToken(1, "user")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	if _, _, err := strategy.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestHMACStrategyName(t *testing.T) {
	if name := NewHMACStrategy("secret", Options{}).Name(); !strings.EqualFold(name, "hmac") {
		t.Fatalf("unexpected strategy name %q", name)
	}
}
