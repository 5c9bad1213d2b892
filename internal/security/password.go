package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password does not match")

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

// Hash password hashes a plain text password with bcrypt.
func HashPassword(plain string) (string, error) {
	return NewBcrypt(bcrypt.DefaultCost).Hash(plain)
}

// Bcrypt is the password hasher handed to the HTTP handlers.
type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordBytes(plain), b.cost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Compare returns ErrPasswordMismatch for a wrong password and the raw bcrypt
// error for anything else, e.g. a malformed stored hash.
func (b *Bcrypt) Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(plain))

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}

	return err
}

// passwordBytes truncates to what bcrypt reads instead of rejecting long passwords,
// so hashes stay compatible with bcrypt implementations that truncate silently.
func passwordBytes(plain string) []byte {
	b := []byte(plain)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
