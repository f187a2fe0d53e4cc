package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webinarregistration/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, adminRole, claims.Role)
}

func TestJWTIssuer_Verify(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	token, err := issuer.Issue("admin", time.Hour)
	require.NoError(t, err)

	subject, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)

	tests := []struct {
		name  string
		token func() string
	}{
		{"wrong secret", func() string {
			tok, _ := NewJWTIssuer("other-secret").Issue("admin", time.Hour)
			return tok
		}},
		{"expired", func() string {
			old := NewJWTIssuer("test-secret")
			old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
			tok, _ := old.Issue("admin", time.Hour)
			return tok
		}},
		{"not admin role", func() string {
			claims := jwtClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "admin",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}}
			tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
			return tok
		}},
		{"garbage", func() string { return "not.a.token" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token())
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrUnauthorized))
		})
	}
}
