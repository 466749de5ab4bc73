package utils

import (
	"errors"
	"os"
	"testing"

	"redbook-go/internal/config"
)

func TestMain(m *testing.M) {
	config.Set(&config.Config{
		App: config.AppConfig{Name: "redbook-go-test"},
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
	})
	os.Exit(m.Run())
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal plaintext")
	}
	if !VerifyPassword("secret123", hash) {
		t.Fatal("expected correct password to verify")
	}
	if VerifyPassword("wrongpass", hash) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user 42, got %d", claims.UserID)
	}
	if claims.ID == "" {
		t.Fatal("expected a JTI for the denylist")
	}
}

func TestTokensHaveUniqueJTI(t *testing.T) {
	t1, err := GenerateToken(1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	t2, err := GenerateToken(1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	c1, _ := ParseToken(t1)
	c2, _ := ParseToken(t2)
	if c1.ID == c2.ID {
		t.Fatal("two tokens must not share a JTI")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseTokenRejectsTamperedSignature(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
