// Package admin holds the privileged inventory operations and the
// credential check guarding them.
package admin

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrUnauthorized = errors.New("invalid admin token")

// Verifier checks a caller-supplied admin credential. Kept as an
// interface so the static shared secret can be swapped for stronger
// auth without touching the handlers.
type Verifier interface {
	Verify(token string) error
}

// StaticToken compares against a plaintext shared secret.
type StaticToken struct {
	secret string
}

func NewStaticToken(secret string) *StaticToken {
	return &StaticToken{secret: secret}
}

func (v *StaticToken) Verify(token string) error {
	if subtle.ConstantTimeCompare([]byte(token), []byte(v.secret)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// BcryptToken compares against a bcrypt hash of the shared secret, so
// the plaintext never has to live in the environment.
type BcryptToken struct {
	hash []byte
}

func NewBcryptToken(hash string) *BcryptToken {
	return &BcryptToken{hash: []byte(hash)}
}

func (v *BcryptToken) Verify(token string) error {
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(token)); err != nil {
		return ErrUnauthorized
	}
	return nil
}

// NewVerifier picks the bcrypt check when a hash is configured,
// otherwise the plain shared-secret compare.
func NewVerifier(secret, hash string) Verifier {
	if hash != "" {
		return NewBcryptToken(hash)
	}
	return NewStaticToken(secret)
}
