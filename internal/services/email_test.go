package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webinarregistration/internal/domain"
)

func TestEmailService_Send(t *testing.T) {
	ctx := context.Background()
	mailer := &fakeMailer{fail: map[string]bool{"down@x.org": true}}
	svc := NewEmailService(mailer, newTestComposer(&fakeEncoder{data: []byte("ics")}), testEvent(), discardLogger())

	r := &domain.Registrant{ID: "reg-1", Name: "Jane Doe", Email: "jane@x.org"}
	require.NoError(t, svc.SendConfirmation(ctx, r))
	require.NoError(t, svc.SendReminder(ctx, domain.TierDay, r))

	sent := mailer.messages()
	require.Len(t, sent, 2)
	assert.Len(t, sent[0].Attachments, 1)
	assert.Contains(t, sent[1].Subject, "Tomorrow")

	err := svc.SendReminder(ctx, domain.ReminderTier("month"), r)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = svc.SendConfirmation(ctx, &domain.Registrant{Name: "Down", Email: "down@x.org"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send confirmation email")

	require.Error(t, svc.SendConfirmation(ctx, nil))
}
