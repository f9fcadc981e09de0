package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewJWTManager("secret", 1)

	tok, err := m.GenerateToken("admin", "ADMIN")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := m.VerifyToken(tok)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Username != "admin" || claims.Role != "ADMIN" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	tok, _ := NewJWTManager("secret", 1).GenerateToken("admin", "ADMIN")
	if _, err := NewJWTManager("other", 1).VerifyToken(tok); err == nil {
		t.Fatalf("expected signature mismatch")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", 1)
	claims := CustomClaims{
		Username: "admin",
		Role:     "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.VerifyToken(tok); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := NewJWTManager("secret", 1).VerifyToken("not-a-token"); err == nil {
		t.Fatalf("expected parse error")
	}
}
