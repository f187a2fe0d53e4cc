package services

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"webinarregistration/internal/domain"
)

type reminderService struct {
	repo        domain.RegistrantRepository
	emails      domain.EmailService
	event       *domain.EventDetails
	concurrency int
	logger      *slog.Logger
}

// NewReminderService returns a ReminderService sending at most concurrency emails at a time.
func NewReminderService(repo domain.RegistrantRepository, emails domain.EmailService, event *domain.EventDetails, concurrency int, logger *slog.Logger) domain.ReminderService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &reminderService{
		repo:        repo,
		emails:      emails,
		event:       event,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ProcessReminders sends each due tier to the registrants whose marker for
// that tier is unset. Store and transport failures are logged, never returned;
// the only error is ctx.Err() after cancellation.
func (s *reminderService) ProcessReminders(ctx context.Context, now time.Time) (domain.ReminderCounts, error) {
	var counts domain.ReminderCounts
	tiers := domain.DueTiers(s.event.StartTime, now)
	if len(tiers) == 0 {
		s.logger.DebugContext(ctx, "no reminder window open", "now", now)
		return counts, nil
	}

	for _, tier := range tiers {
		if err := ctx.Err(); err != nil {
			return counts, err
		}
		counts.Add(tier, s.processTier(ctx, tier))
	}
	s.logger.InfoContext(ctx, "reminder pass finished",
		"week", counts.Week,
		"day", counts.Day,
		"hour", counts.Hour,
	)
	return counts, ctx.Err()
}

func (s *reminderService) processTier(ctx context.Context, tier domain.ReminderTier) int {
	pending, err := s.repo.ListPendingReminder(ctx, tier)
	if err != nil {
		s.logger.ErrorContext(ctx, "list pending reminders failed", "tier", tier, "err", err)
		return 0
	}

	var sent atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for _, r := range pending {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if s.sendOne(ctx, tier, r) {
				sent.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()
	return int(sent.Load())
}

// sendOne claims the marker before sending so overlapping passes cannot
// deliver the same tier twice. A failed send releases the claim.
func (s *reminderService) sendOne(ctx context.Context, tier domain.ReminderTier, r *domain.Registrant) bool {
	log := s.logger.With("tier", tier, "registrant_id", r.ID)

	claimed, err := s.repo.ClaimReminder(ctx, r.ID, tier)
	if err != nil {
		log.ErrorContext(ctx, "claim reminder failed", "err", err)
		return false
	}
	if !claimed {
		return false
	}

	if err := s.emails.SendReminder(ctx, tier, r); err != nil {
		log.ErrorContext(ctx, "send reminder failed", "err", err)
		// The claim is released on a fresh context so cancellation does not strand it.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.repo.ReleaseReminder(releaseCtx, r.ID, tier); err != nil {
			log.ErrorContext(ctx, "release reminder failed", "err", err)
		}
		return false
	}
	return true
}
