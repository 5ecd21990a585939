package token

import (
	"testing"
	"time"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	m := NewJWTManager("test-secret-123", 7)

	tokenString, err := m.GenerateToken("user-1", "alex@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.VerifyToken(tokenString)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "alex@example.com" {
		t.Errorf("claims = %+v", claims)
	}

	// 7 天有效期（允许少量时钟偏差）
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 6*24*time.Hour || remaining > 7*24*time.Hour {
		t.Errorf("token validity = %v, want about 7 days", remaining)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-a", 7)
	other := NewJWTManager("secret-b", 7)

	tokenString, err := m.GenerateToken("user-1", "alex@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := other.VerifyToken(tokenString); err == nil {
		t.Error("token verified with the wrong secret")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	m := NewJWTManager("test-secret-123", 7)
	for _, in := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.VerifyToken(in); err == nil {
			t.Errorf("VerifyToken(%q) succeeded", in)
		}
	}
}
