package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"webinarregistration/internal/domain"
)

// APIKeyHeader carries the reminder API key.
const APIKeyHeader = "x-api-key"

// EngineTrigger runs the reminder pass in process.
type EngineTrigger struct {
	Service domain.ReminderService
	Now     func() time.Time
	Logger  *slog.Logger
}

// Run performs one pass and returns the counts.
func (t *EngineTrigger) Run(ctx context.Context) (domain.ReminderCounts, error) {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	return t.Service.ProcessReminders(ctx, now())
}

func (t *EngineTrigger) Trigger(ctx context.Context) error {
	counts, err := t.Run(ctx)
	if err != nil {
		return err
	}
	t.Logger.InfoContext(ctx, "reminders processed", "week", counts.Week, "day", counts.Day, "hour", counts.Hour)
	return nil
}

// HTTPTrigger asks a running server to perform the pass via POST /reminders.
type HTTPTrigger struct {
	URL    string
	APIKey string
	Client *http.Client
	Logger *slog.Logger
}

// NewHTTPTrigger returns an HTTPTrigger targeting <siteURL>/reminders.
func NewHTTPTrigger(siteURL, apiKey string, logger *slog.Logger) *HTTPTrigger {
	return &HTTPTrigger{
		URL:    strings.TrimSuffix(siteURL, "/") + "/reminders",
		APIKey: apiKey,
		Client: &http.Client{Timeout: 5 * time.Minute},
		Logger: logger,
	}
}

type remindersResponse struct {
	Success       bool                  `json:"success"`
	RemindersSent domain.ReminderCounts `json:"reminders_sent"`
	Error         string                `json:"error"`
}

// Run performs one remote pass and returns the counts reported by the server.
func (t *HTTPTrigger) Run(ctx context.Context) (domain.ReminderCounts, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, nil)
	if err != nil {
		return domain.ReminderCounts{}, err
	}
	req.Header.Set(APIKeyHeader, t.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return domain.ReminderCounts{}, fmt.Errorf("reminders request: %w", err)
	}
	defer resp.Body.Close()

	var body remindersResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return domain.ReminderCounts{}, fmt.Errorf("reminders response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !body.Success {
		return domain.ReminderCounts{}, fmt.Errorf("reminders request failed: status %d: %s", resp.StatusCode, body.Error)
	}
	return body.RemindersSent, nil
}

func (t *HTTPTrigger) Trigger(ctx context.Context) error {
	counts, err := t.Run(ctx)
	if err != nil {
		return err
	}
	t.Logger.InfoContext(ctx, "remote reminders processed", "week", counts.Week, "day", counts.Day, "hour", counts.Hour)
	return nil
}
