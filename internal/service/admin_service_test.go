package service

import (
	"context"
	"testing"

	"faq-support-go/internal/apperr"
	"faq-support-go/internal/config"
	"faq-support-go/pkg/hash"
	"faq-support-go/pkg/token"
)

func newTestAdminService(t *testing.T) (AdminService, *token.JWTManager) {
	t.Helper()
	h, err := hash.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	jwtCfg := config.JWTConfig{Secret: "test-secret", AccessTokenExpireHours: 2}
	m := token.NewJWTManager(jwtCfg.Secret, jwtCfg.AccessTokenExpireHours)
	return NewAdminService(config.AdminConfig{Username: "ops", PasswordHash: h}, jwtCfg, m), m
}

func TestAdminLoginIssuesAdminToken(t *testing.T) {
	svc, m := newTestAdminService(t)

	res, err := svc.Login(context.Background(), "ops", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.ExpiresIn != 7200 {
		t.Fatalf("expiresIn = %d", res.ExpiresIn)
	}
	claims, err := m.VerifyToken(res.Token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Username != "ops" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestAdminLoginRejects(t *testing.T) {
	svc, _ := newTestAdminService(t)
	cases := []struct {
		user, pass string
		code       apperr.Code
	}{
		{"ops", "wrong", apperr.CodeUnauthorized},
		{"someone", "correct horse", apperr.CodeUnauthorized},
		{"", "x", apperr.CodeInvalidArgument},
		{"ops", "", apperr.CodeInvalidArgument},
	}
	for _, tc := range cases {
		if _, err := svc.Login(context.Background(), tc.user, tc.pass); !apperr.IsCode(err, tc.code) {
			t.Fatalf("Login(%q, %q) = %v, want %s", tc.user, tc.pass, err, tc.code)
		}
	}
}
