package domain

import (
	"context"
	"time"
)

// Registrant is a person registered for the event.
// swagger:model Registrant
type Registrant struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Organization     string    `json:"organization,omitempty"`
	City             string    `json:"city,omitempty"`
	Country          string    `json:"country,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	ReminderWeekSent bool      `json:"reminder_week_sent"`
	ReminderDaySent  bool      `json:"reminder_day_sent"`
	ReminderHourSent bool      `json:"reminder_hour_sent"`
}

// NewRegistrant returns a Registrant with the given fields. ID and CreatedAt are set by the repository on create.
func NewRegistrant(name, email, organization, city, country string) *Registrant {
	return &Registrant{
		Name:         name,
		Email:        email,
		Organization: organization,
		City:         city,
		Country:      country,
	}
}

// ReminderSent reports whether the reminder for tier was already delivered.
func (r *Registrant) ReminderSent(tier ReminderTier) bool {
	switch tier {
	case TierWeek:
		return r.ReminderWeekSent
	case TierDay:
		return r.ReminderDaySent
	case TierHour:
		return r.ReminderHourSent
	}
	return false
}

// RegistrationInput is the caller-supplied part of a registration.
type RegistrationInput struct {
	Name         string
	Email        string
	Organization string
	City         string
	Country      string
}

// RegistrantRepository defines storage operations for registrants.
type RegistrantRepository interface {
	// Create inserts the registrant and fills ID and CreatedAt. Returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, r *Registrant) error
	List(ctx context.Context) ([]*Registrant, error)
	// ListPendingReminder returns registrants whose reminder for tier has not been sent.
	ListPendingReminder(ctx context.Context, tier ReminderTier) ([]*Registrant, error)
	// ClaimReminder atomically flips the sent-marker for tier. claimed is false if it was already set.
	ClaimReminder(ctx context.Context, id string, tier ReminderTier) (claimed bool, err error)
	// ReleaseReminder clears the sent-marker so a later pass retries the send.
	ReleaseReminder(ctx context.Context, id string, tier ReminderTier) error
}

// RegistrationService handles new registrations.
type RegistrationService interface {
	Register(ctx context.Context, in RegistrationInput) (*Registrant, error)
}
