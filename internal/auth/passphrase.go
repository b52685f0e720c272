package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks admin passphrase attempts. The passphrase is configured
// either in the clear or as a bcrypt hash; when both are set the hash wins.
type Verifier struct {
	plain string
	hash  []byte
}

// NewVerifier builds a verifier from the configured passphrase and/or its
// bcrypt hash.
func NewVerifier(plain, bcryptHash string) *Verifier {
	return &Verifier{plain: plain, hash: []byte(bcryptHash)}
}

// Verify reports whether code matches the configured passphrase.
func (v *Verifier) Verify(code string) bool {
	if code == "" {
		return false
	}
	if len(v.hash) > 0 {
		return bcrypt.CompareHashAndPassword(v.hash, []byte(code)) == nil
	}
	if v.plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v.plain), []byte(code)) == 1
}

// HashPassphrase generates a bcrypt hash suitable for the admin_pass_hash
// config field.
func HashPassphrase(passphrase string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
