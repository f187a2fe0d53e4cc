package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"webinarregistration/internal/domain"
)

const adminRole = "admin"

type jwtClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// JWTIssuer signs and verifies admin session tokens with HS256.
type JWTIssuer struct {
	secret []byte
	now    func() time.Time
}

var (
	_ domain.TokenIssuer   = (*JWTIssuer)(nil)
	_ domain.TokenVerifier = (*JWTIssuer)(nil)
)

// NewJWTIssuer returns a JWTIssuer using the given secret.
func NewJWTIssuer(secret string) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), now: time.Now}
}

func (i *JWTIssuer) Issue(subject string, expiry time.Duration) (string, error) {
	now := i.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Role: adminRole,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature, expiry and role and returns the subject.
func (i *JWTIssuer) Verify(tokenString string) (string, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if claims.Role != adminRole {
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthorized, errors.New("token is not an admin token"))
	}
	return claims.Subject, nil
}
