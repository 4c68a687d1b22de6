package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"limocontrol/internal/domain"
	"limocontrol/internal/domain/models"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, "u_1", models.RoleAdmin)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	ident, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if ident.UserID != "u_1" {
		t.Fatalf("unexpected user id %q", ident.UserID)
	}
	if !ident.IsAdmin() {
		t.Fatal("expected admin identity")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "u_1", models.RoleUser)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	_, err = ParseToken([]byte("other-secret"), token)
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestParseTokenExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  "u_1",
		"role": "user",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	_, err = ParseToken(testSecret, token)
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestParseTokenRoleDefaultsToUser(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "u_1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	ident, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if ident.Role != models.RoleUser {
		t.Fatalf("expected default role user, got %q", ident.Role)
	}
	if ident.IsAdmin() {
		t.Fatal("missing role must not grant admin")
	}
}

func TestParseTokenMissingSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := ParseToken(testSecret, token); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}
