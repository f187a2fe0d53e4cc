package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"webinarregistration/internal/domain"
)

type bcryptVerifier struct {
	hash []byte
}

type plainVerifier struct {
	sum [sha256.Size]byte
}

// NewSecretVerifier returns a SecretVerifier for the admin password. A bcrypt
// hash takes precedence over a plain password. Plain passwords are compared in
// constant time over their SHA-256 digests so the length does not leak.
func NewSecretVerifier(plain, bcryptHash string) (domain.SecretVerifier, error) {
	if bcryptHash = strings.TrimSpace(bcryptHash); bcryptHash != "" {
		if _, err := bcrypt.Cost([]byte(bcryptHash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		return &bcryptVerifier{hash: []byte(bcryptHash)}, nil
	}
	if plain == "" {
		return nil, fmt.Errorf("admin password is not configured: %w", domain.ErrUnauthorized)
	}
	return &plainVerifier{sum: sha256.Sum256([]byte(plain))}, nil
}

func (v *bcryptVerifier) Verify(presented string) bool {
	if presented == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(presented)) == nil
}

func (v *plainVerifier) Verify(presented string) bool {
	if presented == "" {
		return false
	}
	sum := sha256.Sum256([]byte(presented))
	return subtle.ConstantTimeCompare(v.sum[:], sum[:]) == 1
}

// HashSecret returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashSecret(secret string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hash), nil
}
