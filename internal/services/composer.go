package services

import (
	"fmt"
	"log/slog"

	"webinarregistration/internal/domain"
)

const brandColor = "#971c61"

// ComposerConfig holds the links placed in outgoing emails.
type ComposerConfig struct {
	SiteURL    string
	ReportLink string
	FlyerLink  string
	LogoURL    string
}

// EmailData is the template data shared by all message kinds.
type EmailData struct {
	Name        string
	Title       string
	Description string
	Date        string
	Time        string
	Duration    string
	Location    string
	JoinURL     string
	CalendarURL string
	ReportLink  string
	FlyerLink   string
	LogoURL     string
	Organizer   string
	BrandColor  string
	HasCalendar bool
}

type messageComposer struct {
	renderer domain.EmailTemplateRenderer
	calendar domain.CalendarEncoder
	cfg      ComposerConfig
	logger   *slog.Logger
}

// NewMessageComposer returns a MessageComposer rendering the embedded templates.
func NewMessageComposer(renderer domain.EmailTemplateRenderer, calendar domain.CalendarEncoder, cfg ComposerConfig, logger *slog.Logger) domain.MessageComposer {
	return &messageComposer{renderer: renderer, calendar: calendar, cfg: cfg, logger: logger}
}

func (c *messageComposer) Compose(kind domain.MessageKind, r *domain.Registrant, details *domain.EventDetails) (*domain.OutboundMessage, error) {
	if r == nil || details == nil {
		return nil, fmt.Errorf("%w: registrant and event details are required", domain.ErrValidation)
	}
	switch kind {
	case domain.MessageConfirmation, domain.MessageWeekReminder, domain.MessageDayReminder, domain.MessageHourReminder:
	default:
		return nil, fmt.Errorf("%w: unknown message kind %q", domain.ErrValidation, kind)
	}

	data := &EmailData{
		Name:        r.Name,
		Title:       details.Title,
		Description: details.Description,
		Date:        details.DateLabel(),
		Time:        details.StartLabel(),
		Duration:    details.DurationLabel,
		Location:    details.Location,
		JoinURL:     details.JoinURL,
		CalendarURL: c.cfg.SiteURL + "/calendar",
		ReportLink:  c.cfg.ReportLink,
		FlyerLink:   c.cfg.FlyerLink,
		LogoURL:     c.cfg.LogoURL,
		Organizer:   details.Organizer,
		BrandColor:  brandColor,
	}

	msg := &domain.OutboundMessage{To: r.Email, ToName: r.Name}
	if kind == domain.MessageConfirmation {
		ics, err := c.calendar.Encode(details)
		if err != nil {
			// The message still goes out, pointing at the download endpoint instead.
			c.logger.Warn("calendar attachment skipped", "err", err)
		} else {
			data.HasCalendar = true
			msg.Attachments = []domain.Attachment{{
				Filename:    details.CalendarFilename(),
				ContentType: "text/calendar; charset=utf-8; method=PUBLISH",
				Content:     ics,
			}}
		}
	}

	subject, htmlBody, textBody, err := c.renderer.Render(string(kind), data)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s template: %w", kind, err)
	}
	msg.Subject = subject
	msg.HTMLBody = htmlBody
	msg.TextBody = textBody
	return msg, nil
}
