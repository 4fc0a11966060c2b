package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatchedPassword is returned by VerifyPassword when the cleartext
// password does not match the stored hash.
var ErrMismatchedPassword = errors.New("password does not match hash")

// HashPassword generates a bcrypt hash for the given cleartext password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}

// VerifyPassword validates the given cleartext password against the stored
// bcrypt hash. Returns ErrMismatchedPassword on mismatch so callers can
// match with errors.Is without importing bcrypt.
func VerifyPassword(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedPassword
		}
		return err
	}
	return nil
}
