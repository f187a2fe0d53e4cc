package domain

import (
	"context"
	"time"
)

// SecretVerifier checks a presented secret against the configured one.
type SecretVerifier interface {
	Verify(presented string) bool
}

// TokenIssuer issues admin session tokens.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AdminService gates the registrant list behind the shared admin secret.
type AdminService interface {
	// Login checks the password and returns a session token and all registrants. Returns ErrUnauthorized on mismatch.
	Login(ctx context.Context, password string) (token string, registrants []*Registrant, err error)
	ListRegistrants(ctx context.Context) ([]*Registrant, error)
}
