package calendar

import (
	"errors"
	"fmt"
	"io"
	"time"

	goical "github.com/emersion/go-ical"
)

// Decoded is the subset of a calendar file checked after encoding.
type Decoded struct {
	UID         string
	Title       string
	Description string
	URL         string
	Start       time.Time
	End         time.Time
	Triggers    []string
}

// Decode parses an encoded calendar with an independent parser and returns
// its single event. It is used to check the encoder output is readable by
// other clients.
func Decode(r io.Reader) (*Decoded, error) {
	cal, err := goical.NewDecoder(r).Decode()
	if err != nil {
		return nil, fmt.Errorf("decode calendar: %w", err)
	}
	events := cal.Events()
	if len(events) != 1 {
		return nil, fmt.Errorf("expected 1 event, got %d", len(events))
	}
	ev := events[0]

	out := &Decoded{}
	if out.UID, err = ev.Props.Text(goical.PropUID); err != nil {
		return nil, fmt.Errorf("uid: %w", err)
	}
	if out.Title, err = ev.Props.Text(goical.PropSummary); err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	if out.Description, err = ev.Props.Text(goical.PropDescription); err != nil {
		return nil, fmt.Errorf("description: %w", err)
	}
	if p := ev.Props.Get(goical.PropURL); p != nil {
		out.URL = p.Value
	}
	if out.Start, err = ev.DateTimeStart(time.UTC); err != nil {
		return nil, fmt.Errorf("dtstart: %w", err)
	}
	if out.End, err = ev.DateTimeEnd(time.UTC); err != nil {
		return nil, fmt.Errorf("dtend: %w", err)
	}
	for _, child := range ev.Children {
		if child.Name != goical.CompAlarm {
			continue
		}
		if p := child.Props.Get(goical.PropTrigger); p != nil {
			out.Triggers = append(out.Triggers, p.Value)
		}
	}
	if out.UID == "" || out.Title == "" {
		return nil, errors.New("event is missing UID or SUMMARY")
	}
	return out, nil
}
