package controllers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"webinarregistration/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	err       error
	calls     int
	lastInput domain.RegistrationInput
}

func (f *fakeRegistrationService) Register(_ context.Context, in domain.RegistrationInput) (*domain.Registrant, error) {
	f.calls++
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	r := domain.NewRegistrant(in.Name, in.Email, in.Organization, in.City, in.Country)
	r.ID = "reg-1"
	return r, nil
}

// fakeAdminService implements domain.AdminService for handler tests.
type fakeAdminService struct {
	password     string
	token        string
	registrants  []*domain.Registrant
	listErr      error
	lastPassword string
}

func (f *fakeAdminService) Login(ctx context.Context, password string) (string, []*domain.Registrant, error) {
	f.lastPassword = password
	if password != f.password {
		return "", nil, domain.ErrUnauthorized
	}
	regs, err := f.ListRegistrants(ctx)
	if err != nil {
		return "", nil, err
	}
	return f.token, regs, nil
}

func (f *fakeAdminService) ListRegistrants(_ context.Context) ([]*domain.Registrant, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.registrants, nil
}

// fakeReminderService implements domain.ReminderService for handler tests.
type fakeReminderService struct {
	counts  domain.ReminderCounts
	err     error
	lastNow time.Time
}

func (f *fakeReminderService) ProcessReminders(_ context.Context, now time.Time) (domain.ReminderCounts, error) {
	f.lastNow = now
	return f.counts, f.err
}

// fakeEncoder implements domain.CalendarEncoder for handler tests.
type fakeEncoder struct {
	body []byte
	err  error
}

func (f *fakeEncoder) Encode(_ *domain.EventDetails) ([]byte, error) {
	return f.body, f.err
}

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(context.Context) error { return f.err }

func testEvent() *domain.EventDetails {
	ev := domain.NewEventDetails("Launch", "Launch event", time.Date(2025, 5, 20, 14, 0, 0, 0, time.UTC), "Online", "https://meet.example/launch")
	ev.Slug = "launch"
	return ev
}
