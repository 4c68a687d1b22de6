package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Cost matches the hashes already in production databases.
const bcryptCost = 8

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks password against the stored credential.
// needsUpgrade is true when the match succeeded via the legacy
// plaintext path; the caller should then rehash and store, but a
// failure to do so must not fail the login.
func VerifyPassword(password, stored string) (ok, needsUpgrade bool) {
	if stored == "" {
		return false, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err == nil {
		return true, false
	}
	// Some old rows hold the raw password instead of a hash.
	if !looksLikeBcrypt(stored) && subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1 {
		return true, true
	}
	return false, false
}

func looksLikeBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
