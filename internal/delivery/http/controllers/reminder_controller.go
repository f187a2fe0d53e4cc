package controllers

import (
	"log/slog"
	"net/http"
	"time"

	h "webinarregistration/internal/delivery/http/helpers"
	"webinarregistration/internal/domain"
)

// RemindersResponse is the response body for POST /reminders
type RemindersResponse struct {
	Success       bool                  `json:"success"`
	RemindersSent domain.ReminderCounts `json:"reminders_sent"`
}

type ReminderController struct {
	Logger  *slog.Logger
	Service domain.ReminderService
	Now     func() time.Time
}

func NewReminderController(logger *slog.Logger, svc domain.ReminderService) *ReminderController {
	return &ReminderController{
		Logger:  logger,
		Service: svc,
		Now:     time.Now,
	}
}

// Send godoc
// @Summary Run a reminder pass
// @Description Sends every due reminder tier to registrants that have not received it. Used by the scheduler and external cron.
// @Tags reminders
// @Produce json
// @Param x-api-key header string true "Reminder API key"
// @Success 200 {object} RemindersResponse
// @Failure 401 {object} helpers.ErrorResponse "Unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "Failed to process reminders"
// @Router /reminders [post]
func (c *ReminderController) Send(w http.ResponseWriter, r *http.Request) {
	counts, err := c.Service.ProcessReminders(r.Context(), c.Now())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err,
			"week", counts.Week, "day", counts.Day, "hour", counts.Hour)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "Failed to process reminders")
		return
	}
	c.Logger.InfoContext(r.Context(), "reminders processed", "week", counts.Week, "day", counts.Day, "hour", counts.Hour)

	h.WriteJSON(w, http.StatusOK, RemindersResponse{Success: true, RemindersSent: counts})
}
