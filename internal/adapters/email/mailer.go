package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"webinarregistration/internal/domain"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SMTP        SMTPConfig
	SES         SESConfig
}

func (c MailerConfig) from() mail.Address {
	return mail.Address{Name: c.FromName, Address: c.FromAddress}
}

// NewMailer creates a mailer from config. Provider "smtp" relays through an SMTP server,
// "ses" uses AWS SES and "noop" or unknown uses a no-op mailer.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch config.Provider {
	case "smtp":
		if config.SMTP.Host == "" {
			return nil, errors.New("smtp mailer: SMTP_HOST is required")
		}
		return &smtpMailer{cfg: config.SMTP, from: config.from(), logger: logger}, nil
	case "ses":
		sesConfig := config.SES
		if sesConfig.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SES; use only in development")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: sesConfig.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg := aws.Config{
			Region: sesConfig.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					sesConfig.AccessKeyID,
					sesConfig.SecretAccessKey,
					"",
				),
			),
			HTTPClient: httpClient,
		}
		return &sesMailer{
			client: ses.NewFromConfig(awsCfg),
			from:   config.from(),
			logger: logger,
		}, nil
	case "noop":
		return &noopMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, using noop", "provider", config.Provider)
		return &noopMailer{logger: logger}, nil
	}
}

// rawSender is the part of the SES client the mailer uses.
type rawSender interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

type sesMailer struct {
	client rawSender
	from   mail.Address
	logger *slog.Logger
}

// Send uses SendRawEmail because SendEmail cannot carry attachments.
func (s *sesMailer) Send(ctx context.Context, msg *domain.OutboundMessage) error {
	raw, err := buildMessage(s.from, msg, time.Now())
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}
	input := &ses.SendRawEmailInput{
		Source:       aws.String(s.from.String()),
		Destinations: []string{msg.To},
		RawMessage:   &types.RawMessage{Data: raw},
	}
	result, err := s.client.SendRawEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}
	s.logger.InfoContext(ctx, "email sent via SES", "message_id", aws.ToString(result.MessageId))
	return nil
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(ctx context.Context, msg *domain.OutboundMessage) error {
	n.logger.InfoContext(ctx, "email would be sent (noop)", "to", msg.To, "subject", msg.Subject, "attachments", len(msg.Attachments))
	return nil
}
