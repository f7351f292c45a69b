package password

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for new credentials.
const DefaultCost = 10

// Hash derives a bcrypt hash from a plaintext password.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("generate bcrypt hash: %w", err)
	}

	return string(hash), nil
}

// IsHashed reports whether a stored credential is a bcrypt hash. Data files
// written before hashing was introduced carry plaintext passwords.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

// Verify checks a plaintext password against a stored credential. Bcrypt
// hashes are compared with bcrypt; legacy plaintext records fall back to
// exact string equality.
func Verify(plaintext, stored string) bool {
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
	}

	return plaintext == stored
}
