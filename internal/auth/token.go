package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"limocontrol/internal/domain"
	"limocontrol/internal/domain/models"
)

// TokenTTL is the bearer-credential lifetime.
const TokenTTL = 8 * time.Hour

// Identity is what a verified credential resolves to.
type Identity struct {
	UserID string
	Role   models.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// GenerateToken mints a signed HS256 credential embedding the subject
// and role claims.
func GenerateToken(secret []byte, userID string, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and derives the identity.
// Any failure maps to an UnauthorizedError. A missing role claim
// defaults to "user".
func ParseToken(secret []byte, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Identity{}, domain.UnauthorizedError{Msg: "invalid or expired token", Err: err}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, domain.UnauthorizedError{Msg: "invalid token claims"}
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, domain.UnauthorizedError{Msg: "invalid token"}
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = string(models.RoleUser)
	}
	return Identity{UserID: sub, Role: models.Role(role)}, nil
}
