package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier abstracts how a stored credential token is produced and
// compared, so a hashed scheme can replace byte-exact comparison without
// touching the gate's control flow.
type CredentialVerifier interface {
	Verify(stored, supplied string) bool
	Hash(plain string) (string, error)
}

// PlainVerifier compares credentials byte-exact and stores them as-is,
// matching the source system.
type PlainVerifier struct{}

func (PlainVerifier) Verify(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

func (PlainVerifier) Hash(plain string) (string, error) { return plain, nil }

// BcryptVerifier stores bcrypt hashes.
type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

func (v BcryptVerifier) Hash(plain string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifierForScheme picks the verifier named in config: "plain" or "bcrypt".
func VerifierForScheme(scheme string) (CredentialVerifier, error) {
	switch scheme {
	case "plain":
		return PlainVerifier{}, nil
	case "bcrypt":
		return BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("unsupported auth scheme: %s", scheme)
	}
}
