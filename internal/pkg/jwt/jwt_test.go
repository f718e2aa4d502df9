package jwt

import (
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

func TestSignParseRoundTrip(t *testing.T) {
	token, err := Sign("user-42", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Fatalf("user id = %q, want user-42", claims.UserID)
	}
	if claims.Subject != "user-42" {
		t.Fatalf("subject = %q, want user-42", claims.Subject)
	}
	if claims.ID == "" {
		t.Fatal("expected a token id claim")
	}
}

func TestSignRejectsEmptyUserID(t *testing.T) {
	if _, err := Sign("", time.Hour); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := Sign("user-42", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	claims := jwtlib.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "user-42",
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := Parse(token); err == nil {
		t.Fatal("expected wrong issuer to be rejected")
	}
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	claims := jwtlib.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "user-42",
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := Parse(token); err == nil {
		t.Fatal("expected unsigned token to be rejected")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("not.a.token"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Parse(strings.Repeat("a", 64)); err == nil {
		t.Fatal("expected parse error")
	}
}
