package jwt

import (
	"errors"
	"testing"
	"time"

	"recipehub/domain"
)

func newTestJWTService(secret string) JWTService {
	return &jwtService{secretKey: secret, issuer: "RECIPEHUB"}
}

func TestUserTokenRoundTrip(t *testing.T) {
	service := newTestJWTService("test-secret")

	token := service.GenerateTokenUser("user-123", domain.RoleUser)
	if token == "" {
		t.Fatal("expected a signed token")
	}

	userID, role, err := service.GetUserIDByToken(token)
	if err != nil {
		t.Fatalf("validation failed: %v", err)
	}
	if userID != "user-123" || role != domain.RoleUser {
		t.Errorf("unexpected claims: %q %q", userID, role)
	}
}

func TestUserTokenWrongSecret(t *testing.T) {
	token := newTestJWTService("test-secret").GenerateTokenUser("user-123", domain.RoleUser)

	if _, _, err := newTestJWTService("other-secret").GetUserIDByToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestEmailVerifyTokenRoundTrip(t *testing.T) {
	service := newTestJWTService("test-secret")

	token, err := service.GenerateTokenEmailVerify("chef@example.com", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	email, err := service.ValidateTokenEmailVerify(token)
	if err != nil {
		t.Fatalf("validation failed: %v", err)
	}
	if email != "chef@example.com" {
		t.Errorf("unexpected email claim: %q", email)
	}
}

func TestEmailVerifyTokenExpired(t *testing.T) {
	service := newTestJWTService("test-secret")

	token, err := service.GenerateTokenEmailVerify("chef@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := service.ValidateTokenEmailVerify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
