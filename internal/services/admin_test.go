package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webinarregistration/internal/domain"
)

type fakeVerifier struct{ secret string }

func (f fakeVerifier) Verify(presented string) bool { return presented == f.secret }

type fakeIssuer struct {
	subject string
	expiry  time.Duration
	err     error
}

func (f *fakeIssuer) Issue(subject string, expiry time.Duration) (string, error) {
	f.subject, f.expiry = subject, expiry
	if f.err != nil {
		return "", f.err
	}
	return "token-" + subject, nil
}

func TestAdminService_Login(t *testing.T) {
	ctx := context.Background()
	repo := &memRepository{}
	require.NoError(t, repo.Create(ctx, domain.NewRegistrant("Jane Doe", "jane@x.org", "", "", "")))
	issuer := &fakeIssuer{}
	svc := NewAdminService(fakeVerifier{secret: "pw"}, issuer, repo, 15*time.Minute, discardLogger())

	token, regs, err := svc.Login(ctx, "pw")
	require.NoError(t, err)
	assert.Equal(t, "token-admin", token)
	assert.Equal(t, AdminSubject, issuer.subject)
	assert.Equal(t, 15*time.Minute, issuer.expiry)
	require.Len(t, regs, 1)
	assert.Equal(t, "jane@x.org", regs[0].Email)

	_, _, err = svc.Login(ctx, "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = svc.Login(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAdminService_Failures(t *testing.T) {
	ctx := context.Background()

	svc := NewAdminService(fakeVerifier{secret: "pw"}, &fakeIssuer{}, &memRepository{listErr: errors.New("db down")}, time.Minute, discardLogger())
	_, _, err := svc.Login(ctx, "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)

	svc = NewAdminService(fakeVerifier{secret: "pw"}, &fakeIssuer{err: errors.New("sign failed")}, &memRepository{}, time.Minute, discardLogger())
	_, _, err = svc.Login(ctx, "pw")
	require.Error(t, err)

	regs, err := svc.ListRegistrants(ctx)
	require.NoError(t, err)
	assert.Empty(t, regs)
}
