package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for stored credentials.
const BcryptCost = 12

// HashPassword returns the bcrypt hash of a plaintext password.
// Raw secrets are never persisted; only the hash is stored.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
