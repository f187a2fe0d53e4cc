package domain

import "context"

// MessageKind selects the email template.
type MessageKind string

const (
	MessageConfirmation MessageKind = "confirmation"
	MessageWeekReminder MessageKind = "reminder_week"
	MessageDayReminder  MessageKind = "reminder_day"
	MessageHourReminder MessageKind = "reminder_hour"
)

// Attachment is a file attached to an outbound message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// OutboundMessage is a fully rendered email ready for a Mailer.
type OutboundMessage struct {
	To          string
	ToName      string
	Subject     string
	HTMLBody    string
	TextBody    string
	Attachments []Attachment
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg *OutboundMessage) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// CalendarEncoder builds the calendar file for the event.
type CalendarEncoder interface {
	Encode(details *EventDetails) ([]byte, error)
}

// MessageComposer builds outbound messages. It performs no I/O.
type MessageComposer interface {
	Compose(kind MessageKind, r *Registrant, details *EventDetails) (*OutboundMessage, error)
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendConfirmation(ctx context.Context, r *Registrant) error
	SendReminder(ctx context.Context, tier ReminderTier, r *Registrant) error
}
