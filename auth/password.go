package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash stored on the profile.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// A symbol is anything that is not a letter, digit or whitespace.
func isSymbol(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}

// ValidatePassword returns one message per violated rule, empty when
// the password is acceptable.
func ValidatePassword(password string) []string {
	var errors []string

	if len(password) < 8 {
		errors = append(errors, "Password must be at least 8 characters.")
	}
	if len(password) > 50 {
		errors = append(errors, "Password must not exceed 50 characters.")
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		errors = append(errors, "Password must contain at least one uppercase letter.")
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		errors = append(errors, "Password must contain at least one lowercase letter.")
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		errors = append(errors, "Password must contain at least one digit.")
	}
	if strings.ContainsFunc(password, unicode.IsSpace) {
		errors = append(errors, "Password must not contain spaces.")
	}
	if !strings.ContainsFunc(password, isSymbol) {
		errors = append(errors, "Password must contain at least one symbol.")
	}

	return errors
}
