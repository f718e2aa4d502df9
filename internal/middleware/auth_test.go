package middleware

import (
	"testing"
	"time"

	"github.com/deepjyoti31/spec10x/internal/pkg/jwt"
)

func TestNormalizeToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"abc123", "abc123"},
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"  Bearer   abc123  ", "abc123"},
	}
	for _, tc := range cases {
		if got := NormalizeToken(tc.in); got != tc.want {
			t.Errorf("NormalizeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateTokenRoundTrip(t *testing.T) {
	token, err := jwt.Sign("user-1", time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	userID, err := ValidateToken("Bearer " + token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("userID = %q, want user-1", userID)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken(""); err == nil {
		t.Error("empty token should be rejected")
	}
	if _, err := ValidateToken("not-a-jwt"); err == nil {
		t.Error("malformed token should be rejected")
	}
}
