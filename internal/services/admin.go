package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"webinarregistration/internal/domain"
)

// AdminSubject is the token subject of admin sessions.
const AdminSubject = "admin"

type adminService struct {
	verifier domain.SecretVerifier
	issuer   domain.TokenIssuer
	repo     domain.RegistrantRepository
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewAdminService returns an AdminService gated by verifier.
func NewAdminService(verifier domain.SecretVerifier, issuer domain.TokenIssuer, repo domain.RegistrantRepository, tokenTTL time.Duration, logger *slog.Logger) domain.AdminService {
	return &adminService{verifier: verifier, issuer: issuer, repo: repo, tokenTTL: tokenTTL, logger: logger}
}

func (s *adminService) Login(ctx context.Context, password string) (string, []*domain.Registrant, error) {
	if !s.verifier.Verify(password) {
		s.logger.WarnContext(ctx, "admin login rejected")
		return "", nil, domain.ErrUnauthorized
	}
	regs, err := s.ListRegistrants(ctx)
	if err != nil {
		return "", nil, err
	}
	token, err := s.issuer.Issue(AdminSubject, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue admin token: %w", err)
	}
	return token, regs, nil
}

func (s *adminService) ListRegistrants(ctx context.Context) ([]*domain.Registrant, error) {
	regs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrants: %w", err)
	}
	return regs, nil
}
