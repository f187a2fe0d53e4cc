package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"webinarregistration/internal/domain"
)

type registrationService struct {
	repo   domain.RegistrantRepository
	emails domain.EmailService
	logger *slog.Logger
}

// NewRegistrationService returns a RegistrationService that stores registrants and sends confirmations.
func NewRegistrationService(repo domain.RegistrantRepository, emails domain.EmailService, logger *slog.Logger) domain.RegistrationService {
	return &registrationService{repo: repo, emails: emails, logger: logger}
}

// Register stores a new registrant and sends the confirmation email. A failed
// email does not undo the registration.
func (s *registrationService) Register(ctx context.Context, in domain.RegistrationInput) (*domain.Registrant, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}

	reg := domain.NewRegistrant(name, email,
		strings.TrimSpace(in.Organization),
		strings.TrimSpace(in.City),
		strings.TrimSpace(in.Country),
	)
	if err := s.repo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to store registration: %w", err)
	}

	if err := s.emails.SendConfirmation(ctx, reg); err != nil {
		s.logger.ErrorContext(ctx, "confirmation email failed", "registrant_id", reg.ID, "err", err)
	}
	return reg, nil
}
