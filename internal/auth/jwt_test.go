package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate("alice")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Member != "alice" {
		t.Errorf("expected member alice, got %q", claims.Member)
	}
	if claims.Subject != "alice" {
		t.Errorf("expected subject alice, got %q", claims.Subject)
	}
}

func TestGenerateRequiresMember(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	if _, err := m.Generate(""); err == nil {
		t.Fatal("expected error for empty member")
	}
}

func TestValidateRejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	good, _ := m.Generate("alice")

	expired := NewJWTManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := expired.Generate("alice")

	other, _ := NewJWTManager("other-secret", time.Hour).Generate("alice")

	noMember, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{}).SignedString([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"tampered", good + "x"},
		{"wrong secret", other},
		{"expired", old},
		{"missing member", noMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Validate(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
