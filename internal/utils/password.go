package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password sign-up accepts.
const MinPasswordLength = 6

// ErrPasswordTooShort is returned by HashPassword for passwords shorter
// than MinPasswordLength.
var ErrPasswordTooShort = errors.New("password too short")

// HashPassword returns a bcrypt hash of plain.  Costs outside bcrypt's
// accepted range are clamped rather than rejected, so a misconfigured
// BCRYPT_COST cannot break sign-up.
func HashPassword(plain string, cost int) (string, error) {
	if len(plain) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt hash with a plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
