package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestParseValidToken(t *testing.T) {
	parser := NewParser("test-secret")
	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 42,
		"org_id":  7,
		"role":    "manager",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	principal, err := parser.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if principal.UserID != 42 || principal.OrganizationID != 7 || principal.Role != "manager" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestParseRejectsBadTokens(t *testing.T) {
	parser := NewParser("test-secret")

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", signToken(t, "other-secret", jwt.MapClaims{
			"user_id": 42,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})},
		{"expired", signToken(t, "test-secret", jwt.MapClaims{
			"user_id": 42,
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})},
		{"missing user_id", signToken(t, "test-secret", jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parser.Parse(tt.token); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
