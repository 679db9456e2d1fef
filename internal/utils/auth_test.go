package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashAdminPassword("desk-password-2025")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "desk-password-2025" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword(hash, "desk-password-2025") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestNewAccessTokenClaims(t *testing.T) {
	const secret = "token_secret"
	tok, err := NewAccessToken(secret, "admin@cache2k25.in", "ADMIN", 30)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if remaining := time.Until(tok.Exp); remaining < 29*time.Minute || remaining > 31*time.Minute {
		t.Errorf("expiry %v not ~30m out", remaining)
	}

	parsed, err := jwt.Parse(tok.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != "admin@cache2k25.in" {
		t.Errorf("sub claim %v", claims["sub"])
	}
	if claims["role"] != "ADMIN" {
		t.Errorf("role claim %v", claims["role"])
	}
}

func TestNewAccessTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("right_secret", "admin@cache2k25.in", "ADMIN", 30)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	parsed, err := jwt.Parse(tok.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong_secret"), nil
	})
	if err == nil && parsed.Valid {
		t.Fatal("token verified under the wrong secret")
	}
}
