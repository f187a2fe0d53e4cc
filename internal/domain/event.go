package domain

import (
	"strings"
	"time"
)

// EventDuration is the fixed length of the event.
const EventDuration = 90 * time.Minute

// EventDetails holds the facts about the single event that emails, the
// calendar file and the reminder windows are derived from.
type EventDetails struct {
	Title         string
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	Location      string
	JoinURL       string
	DurationLabel string
	// TimeZone is the IANA zone dates are displayed in.
	TimeZone string
	// TimeLabel is the zone abbreviation shown next to the time (e.g. "WAT").
	TimeLabel string
	// Organizer signs the emails ("The AFLI Events Team").
	Organizer string
	// Slug names downloaded files ("<slug>.ics").
	Slug string
}

// NewEventDetails returns EventDetails with EndTime derived from start and the fixed duration.
func NewEventDetails(title, description string, start time.Time, location, joinURL string) *EventDetails {
	return &EventDetails{
		Title:         title,
		Description:   description,
		StartTime:     start,
		EndTime:       start.Add(EventDuration),
		Location:      location,
		JoinURL:       joinURL,
		DurationLabel: "90 minutes",
	}
}

// DisplayLocation returns the display time zone, falling back to UTC.
func (e *EventDetails) DisplayLocation() *time.Location {
	if e.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(e.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DateLabel formats the start date, e.g. "Tuesday, May 20, 2025".
func (e *EventDetails) DateLabel() string {
	return e.StartTime.In(e.DisplayLocation()).Format("Monday, January 2, 2006")
}

// StartLabel formats the start time, e.g. "3:00 PM WAT".
func (e *EventDetails) StartLabel() string {
	t := e.StartTime.In(e.DisplayLocation()).Format("3:04 PM")
	if e.TimeLabel != "" {
		return t + " " + e.TimeLabel
	}
	return t + " " + e.StartTime.In(e.DisplayLocation()).Format("MST")
}

// CalendarFilename is the attachment/download name of the calendar file.
func (e *EventDetails) CalendarFilename() string {
	slug := strings.TrimSpace(e.Slug)
	if slug == "" {
		slug = "event"
	}
	return slug + ".ics"
}
