// Package cryptox wraps the password hashing primitive used for stored
// credentials.
package cryptox

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// PasswordHasher produces and checks salted one-way digests.
type PasswordHasher interface {
	Hash(plaintext []byte) (string, error)
	Verify(plaintext []byte, digest string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. The salt is embedded
// in the digest.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

// Hash returns the bcrypt digest of plaintext. Inputs longer than 72 bytes
// are rejected by bcrypt.
func (h *BcryptHasher) Hash(plaintext []byte) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(plaintext, h.Cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Malformed digests never match.
func (h *BcryptHasher) Verify(plaintext []byte, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), plaintext) == nil
}
