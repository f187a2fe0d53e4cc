package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"webinarregistration/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

var testStart = time.Date(2025, 5, 20, 14, 0, 0, 0, time.UTC)

func testEvent() *domain.EventDetails {
	ev := domain.NewEventDetails(
		"REFLECTIONS ON THE AFRICA JOBS SCENARIOS REPORT",
		"DIALOGUE FOR ACTION",
		testStart,
		"Online",
		"https://meet.example/join/abc",
	)
	ev.TimeZone = "Africa/Lagos"
	ev.TimeLabel = "WAT"
	ev.Organizer = "The AFLI Events Team"
	ev.Slug = "afli-report"
	return ev
}

// memRepository is an in-memory RegistrantRepository.
type memRepository struct {
	mu           sync.Mutex
	regs         []*domain.Registrant
	createErr    error
	listErr      error
	pendingErr   map[domain.ReminderTier]error
	claimErr     error
	pendingCalls int
	releases     int
}

func (m *memRepository) Create(_ context.Context, r *domain.Registrant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.regs {
		if strings.EqualFold(existing.Email, r.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	r.ID = fmt.Sprintf("reg-%d", len(m.regs)+1)
	r.CreatedAt = time.Now().UTC()
	cp := *r
	m.regs = append(m.regs, &cp)
	return nil
}

func (m *memRepository) byEmail(email string) *domain.Registrant {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.regs {
		if strings.EqualFold(r.Email, email) {
			cp := *r
			return &cp
		}
	}
	return nil
}

func (m *memRepository) List(_ context.Context) ([]*domain.Registrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*domain.Registrant, 0, len(m.regs))
	for _, r := range m.regs {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memRepository) ListPendingReminder(_ context.Context, tier domain.ReminderTier) ([]*domain.Registrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingCalls++
	if err := m.pendingErr[tier]; err != nil {
		return nil, err
	}
	var out []*domain.Registrant
	for _, r := range m.regs {
		if !r.ReminderSent(tier) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memRepository) setSent(id string, tier domain.ReminderTier, v bool) (changed bool) {
	for _, r := range m.regs {
		if r.ID != id {
			continue
		}
		var field *bool
		switch tier {
		case domain.TierWeek:
			field = &r.ReminderWeekSent
		case domain.TierDay:
			field = &r.ReminderDaySent
		case domain.TierHour:
			field = &r.ReminderHourSent
		default:
			return false
		}
		changed = *field != v
		*field = v
		return changed
	}
	return false
}

func (m *memRepository) ClaimReminder(_ context.Context, id string, tier domain.ReminderTier) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimErr != nil {
		return false, m.claimErr
	}
	return m.setSent(id, tier, true), nil
}

func (m *memRepository) ReleaseReminder(_ context.Context, id string, tier domain.ReminderTier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releases++
	m.setSent(id, tier, false)
	return nil
}

// fakeMailer records sent messages and fails for addresses in fail.
type fakeMailer struct {
	mu   sync.Mutex
	sent []*domain.OutboundMessage
	fail map[string]bool
}

func (f *fakeMailer) Send(_ context.Context, msg *domain.OutboundMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[msg.To] {
		return errors.New("smtp: 550 mailbox unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) messages() []*domain.OutboundMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.OutboundMessage(nil), f.sent...)
}

// fakeEncoder returns fixed calendar bytes or an error.
type fakeEncoder struct {
	data []byte
	err  error
}

func (f *fakeEncoder) Encode(_ *domain.EventDetails) ([]byte, error) {
	return f.data, f.err
}
