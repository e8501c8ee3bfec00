package util

import (
	"errors"
	"regexp"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost        = 12
	MinPasswordLength = 8
	MaxUsernameLength = 150
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidUsername  = errors.New("username may contain only letters, digits and @/./+/-/_")

	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

// HashPassword hashes a plain text password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword checks if a plain text password matches a hashed password
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func ValidateUsername(username string) error {
	if username == "" || utf8.RuneCountInString(username) > MaxUsernameLength || !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}
