package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"webinarregistration/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	composer domain.MessageComposer
	event    *domain.EventDetails
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that composes messages for event and hands them to mailer.
func NewEmailService(mailer domain.Mailer, composer domain.MessageComposer, event *domain.EventDetails, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, composer: composer, event: event, logger: logger}
}

// SendConfirmation sends the registration confirmation with the calendar attached.
func (s *emailService) SendConfirmation(ctx context.Context, r *domain.Registrant) error {
	if r == nil {
		return errors.New("registrant is nil")
	}
	return s.send(ctx, domain.MessageConfirmation, r)
}

// SendReminder sends the reminder for tier.
func (s *emailService) SendReminder(ctx context.Context, tier domain.ReminderTier, r *domain.Registrant) error {
	if r == nil {
		return errors.New("registrant is nil")
	}
	if !tier.Valid() {
		return fmt.Errorf("%w: unknown reminder tier %q", domain.ErrValidation, tier)
	}
	return s.send(ctx, tier.MessageKind(), r)
}

func (s *emailService) send(ctx context.Context, kind domain.MessageKind, r *domain.Registrant) error {
	msg, err := s.composer.Compose(kind, r, s.event)
	if err != nil {
		return fmt.Errorf("failed to compose %s email: %w", kind, err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}
	s.logger.DebugContext(ctx, "email sent", "kind", kind, "registrant_id", r.ID)
	return nil
}
