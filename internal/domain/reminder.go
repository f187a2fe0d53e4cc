package domain

import (
	"context"
	"time"
)

// ReminderTier is one of the three reminder lead times.
type ReminderTier string

const (
	TierWeek ReminderTier = "week"
	TierDay  ReminderTier = "day"
	TierHour ReminderTier = "hour"
)

// ReminderTiers lists the tiers from the widest lead time to the tightest.
var ReminderTiers = []ReminderTier{TierWeek, TierDay, TierHour}

// Offset is how long before the event start the tier becomes due.
func (t ReminderTier) Offset() time.Duration {
	switch t {
	case TierWeek:
		return 7 * 24 * time.Hour
	case TierDay:
		return 24 * time.Hour
	case TierHour:
		return time.Hour
	}
	return 0
}

// Valid reports whether t is a known tier.
func (t ReminderTier) Valid() bool {
	return t.Offset() > 0
}

// MessageKind is the email template used for the tier.
func (t ReminderTier) MessageKind() MessageKind {
	switch t {
	case TierWeek:
		return MessageWeekReminder
	case TierDay:
		return MessageDayReminder
	default:
		return MessageHourReminder
	}
}

// DueAt is the instant the tier's window opens.
func (t ReminderTier) DueAt(start time.Time) time.Time {
	return start.Add(-t.Offset())
}

// Window returns the half-open due window [from, to) of the tier. Each
// window closes where the next tighter tier opens; the hour window closes at start.
func (t ReminderTier) Window(start time.Time) (from, to time.Time) {
	from = t.DueAt(start)
	switch t {
	case TierWeek:
		to = TierDay.DueAt(start)
	case TierDay:
		to = TierHour.DueAt(start)
	default:
		to = start
	}
	return from, to
}

// InWindow reports whether now falls inside the tier's due window.
func (t ReminderTier) InWindow(start, now time.Time) bool {
	from, to := t.Window(start)
	return !now.Before(from) && now.Before(to)
}

// DueTiers returns the tiers whose window contains now, in Week, Day, Hour order.
func DueTiers(start, now time.Time) []ReminderTier {
	var due []ReminderTier
	for _, t := range ReminderTiers {
		if t.InWindow(start, now) {
			due = append(due, t)
		}
	}
	return due
}

// ReminderCounts reports how many reminders of each tier were delivered by one pass.
// swagger:model ReminderCounts
type ReminderCounts struct {
	Week int `json:"week"`
	Day  int `json:"day"`
	Hour int `json:"hour"`
}

// Add increments the counter of tier by n.
func (c *ReminderCounts) Add(tier ReminderTier, n int) {
	switch tier {
	case TierWeek:
		c.Week += n
	case TierDay:
		c.Day += n
	case TierHour:
		c.Hour += n
	}
}

// Total is the sum of all tiers.
func (c ReminderCounts) Total() int {
	return c.Week + c.Day + c.Hour
}

// ReminderService runs reminder passes.
type ReminderService interface {
	// ProcessReminders sends every due tier's reminder to registrants that have not received it yet.
	ProcessReminders(ctx context.Context, now time.Time) (ReminderCounts, error)
}
