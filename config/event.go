package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"webinarregistration/internal/domain"
)

// Defaults for the event. A YAML file can override any of them.
const (
	DefaultEventTitle       = "REFLECTIONS ON THE AFRICA JOBS SCENARIOS REPORT"
	DefaultEventDescription = "DIALOGUE FOR ACTION:REFLECTIONS ON THE AFRICA JOBS SCENARIOS REPORT"
	DefaultEventStart       = "2025-05-20T14:00:00Z"
	DefaultEventLocation    = "Online"
	DefaultEventJoinURL     = "https://teams.microsoft.com/l/meetup-join/19%3ameeting_M2Y2ODY5ZTktZWZkNi00NTEyLTg5MjYtYzY1MDQyYzJiODJj%40thread.v2/0?context=%7b%22Tid%22%3a%22a7b80bb5-0fc9-41e4-a178-f21263a11de7%22%2c%22Oid%22%3a%22b957d060-9e55-4de3-a3d3-7d5293b33905%22%7d"
	DefaultEventTimeZone    = "Africa/Lagos"
	DefaultEventTimeLabel   = "WAT"
	DefaultEventOrganizer   = "The AFLI Events Team"
	DefaultEventSlug        = "afli-africa-jobs-scenarios-report"
)

// EventFile is the on-disk shape of the event configuration.
type EventFile struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	// Start is an RFC 3339 instant.
	Start     string `yaml:"start"`
	Location  string `yaml:"location"`
	JoinURL   string `yaml:"join_url"`
	TimeZone  string `yaml:"timezone"`
	TimeLabel string `yaml:"time_label"`
	Organizer string `yaml:"organizer"`
	Slug      string `yaml:"slug"`
}

// DefaultEventFile returns the built-in event.
func DefaultEventFile() *EventFile {
	return &EventFile{
		Title:       DefaultEventTitle,
		Description: DefaultEventDescription,
		Start:       DefaultEventStart,
		Location:    DefaultEventLocation,
		JoinURL:     DefaultEventJoinURL,
		TimeZone:    DefaultEventTimeZone,
		TimeLabel:   DefaultEventTimeLabel,
		Organizer:   DefaultEventOrganizer,
		Slug:        DefaultEventSlug,
	}
}

// Normalize fills empty fields from the defaults so partial files still work.
func (f *EventFile) Normalize() {
	d := DefaultEventFile()
	if f.Title == "" {
		f.Title = d.Title
	}
	if f.Description == "" {
		f.Description = d.Description
	}
	if f.Start == "" {
		f.Start = d.Start
	}
	if f.Location == "" {
		f.Location = d.Location
	}
	if f.JoinURL == "" {
		f.JoinURL = d.JoinURL
	}
	if f.TimeZone == "" {
		f.TimeZone = d.TimeZone
	}
	if f.Organizer == "" {
		f.Organizer = d.Organizer
	}
	if f.Slug == "" {
		f.Slug = d.Slug
	}
}

// Details converts the file into immutable event details.
func (f *EventFile) Details() (*domain.EventDetails, error) {
	start, err := time.Parse(time.RFC3339, f.Start)
	if err != nil {
		return nil, fmt.Errorf("event start %q: %w", f.Start, err)
	}
	if _, err := time.LoadLocation(f.TimeZone); err != nil {
		return nil, fmt.Errorf("event timezone %q: %w", f.TimeZone, err)
	}
	ev := domain.NewEventDetails(f.Title, f.Description, start.UTC(), f.Location, f.JoinURL)
	ev.TimeZone = f.TimeZone
	ev.TimeLabel = f.TimeLabel
	ev.Organizer = f.Organizer
	ev.Slug = f.Slug
	return ev, nil
}

// LoadEvent returns the event details. An empty path yields the built-in
// event; otherwise the YAML file at path is read and normalized.
func LoadEvent(path string) (*domain.EventDetails, error) {
	f := DefaultEventFile()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read event config: %w", err)
		}
		f = &EventFile{}
		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("parse event config: %w", err)
		}
		if f.Start == "" {
			return nil, errors.New("event config: start is required")
		}
		f.Normalize()
	}
	return f.Details()
}
