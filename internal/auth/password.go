package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("empty password")

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// dummyHash is compared against when the account does not exist so that
// unknown emails cost the same as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("studygo-dummy-password"), bcrypt.DefaultCost)

func HashPassword(p string) (string, error) {
	if p == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	return string(b), err
}

// VerifyPassword reports whether plain matches hash. A wrong password is
// (false, nil); only a malformed stored hash returns an error.
func VerifyPassword(plain, hash string) (bool, error) {
	if len(plain) > MaxPasswordBytes {
		// could never have been hashed
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

// BurnVerify spends one bcrypt comparison and discards the result.
func BurnVerify(plain string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
}
