package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"webinarregistration/internal/domain"
)

// ErrInvalidEvent is returned when the event details cannot form a valid VEVENT.
var ErrInvalidEvent = errors.New("invalid event details")

// Defaults used when no override is configured.
const (
	DefaultProductID = "-//AFLI//AFRICA JOBS SCENARIOS REPORT//EN"
	DefaultUIDDomain = "afli.org"
)

type alarm struct {
	trigger     string
	description string
}

// alarms fire one hour, one day and one week before the start.
var alarms = []alarm{
	{trigger: "-PT1H", description: "Reminder: Event starts in 1 hour"},
	{trigger: "-P1D", description: "Reminder: Event starts tomorrow"},
	{trigger: "-P7D", description: "Reminder: Event starts in 1 week"},
}

// Encoder implements domain.CalendarEncoder with RFC 5545 output.
type Encoder struct {
	productID string
	uidDomain string
	now       func() time.Time
}

// NewEncoder returns an Encoder. Empty arguments fall back to the defaults.
func NewEncoder(productID, uidDomain string) *Encoder {
	if productID == "" {
		productID = DefaultProductID
	}
	if uidDomain == "" {
		uidDomain = DefaultUIDDomain
	}
	return &Encoder{productID: productID, uidDomain: uidDomain, now: time.Now}
}

// WithClock replaces the clock used for DTSTAMP and CREATED.
func (e *Encoder) WithClock(now func() time.Time) *Encoder {
	e.now = now
	return e
}

// UID is stable for a given event so re-imports update the same entry.
func (e *Encoder) UID(d *domain.EventDetails) string {
	key := d.Title + "|" + d.StartTime.UTC().Format(time.RFC3339)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String() + "@" + e.uidDomain
}

// Encode renders a single-event VCALENDAR. Any failure wraps domain.ErrEncoding.
func (e *Encoder) Encode(d *domain.EventDetails) ([]byte, error) {
	if err := validate(d); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEncoding, err)
	}

	cal := ical.NewCalendar()
	cal.SetProductId(e.productID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ical.MethodPublish)

	stamp := e.now().UTC()
	ev := cal.AddEvent(e.UID(d))
	ev.SetDtStampTime(stamp)
	ev.SetCreatedTime(stamp)
	ev.SetStartAt(d.StartTime.UTC())
	ev.SetEndAt(d.EndTime.UTC())
	ev.SetSummary(d.Title)
	ev.SetDescription(d.Description)
	if d.Location != "" {
		ev.SetLocation(d.Location)
	}
	if d.JoinURL != "" {
		ev.SetURL(d.JoinURL)
	}
	ev.SetStatus(ical.ObjectStatusConfirmed)

	for _, a := range alarms {
		va := ev.AddAlarm()
		va.SetAction(ical.ActionDisplay)
		va.SetTrigger(a.trigger)
		va.SetProperty(ical.ComponentPropertyDescription, a.description)
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf, ical.WithNewLineWindows); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEncoding, err)
	}
	return buf.Bytes(), nil
}

func validate(d *domain.EventDetails) error {
	switch {
	case d == nil:
		return fmt.Errorf("%w: nil details", ErrInvalidEvent)
	case strings.TrimSpace(d.Title) == "":
		return fmt.Errorf("%w: empty title", ErrInvalidEvent)
	case d.StartTime.IsZero():
		return fmt.Errorf("%w: missing start time", ErrInvalidEvent)
	case !d.EndTime.After(d.StartTime):
		return fmt.Errorf("%w: end must be after start", ErrInvalidEvent)
	}
	return nil
}
