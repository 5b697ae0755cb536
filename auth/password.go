package auth

import (
	"net/mail"
	"unicode"

	"github.com/natakamm/My-Art-Gallery-BE/errs"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a salted bcrypt hash of the plaintext. The plaintext
// is never persisted.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidatePassword enforces the strength policy: at least 8 characters with
// one upper case letter, one digit and one symbol.
func ValidatePassword(plain string) error {
	var hasUpper, hasDigit, hasSymbol bool
	length := 0
	for _, r := range plain {
		length++
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if length < 8 || !hasUpper || !hasDigit || !hasSymbol {
		return errs.ValidationField("password",
			"Make sure to use at least 8 characters, one upper case letter, a number and a symbol.")
	}
	return nil
}

// ValidateEmail checks that addr is a well-formed address on its own
// (display names and comments are not accepted).
func ValidateEmail(addr string) error {
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return errs.ValidationField("email", "Email is not valid.")
	}
	return nil
}
