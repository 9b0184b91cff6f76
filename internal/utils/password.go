package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// CheckPassword verifies a basic-auth password against the configured
// bcrypt hash.
func CheckPassword(hashedPassword string, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
