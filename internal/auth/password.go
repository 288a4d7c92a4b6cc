package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// PasswordHasher hashes and verifies passwords using bcrypt.
type PasswordHasher struct{}

// NewPasswordHasher creates a new password hasher.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{}
}

// Hash produces a salted bcrypt digest of the plaintext. Each call embeds a
// fresh salt, so two hashes of the same password differ.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether hashed was produced from plaintext. Comparison is
// constant-time; a malformed or foreign-format digest yields false, never a
// panic or an error surfaced to the caller.
func (h *PasswordHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
