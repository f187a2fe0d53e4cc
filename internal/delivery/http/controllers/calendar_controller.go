package controllers

import (
	"html/template"
	"log/slog"
	"net/http"

	"webinarregistration/internal/domain"
)

var calendarErrorPage = template.Must(template.New("calendar_error").Parse(`<!DOCTYPE html>
<html>
  <head>
    <title>Error Generating Calendar</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
      body { font-family: Arial, sans-serif; max-width: 600px; margin: 50px auto; padding: 20px; }
      h1 { color: #971c61; }
      .error { background-color: #f8d7da; border: 1px solid #f5c6cb; padding: 15px; border-radius: 4px; }
      .button { display: inline-block; background-color: #971c61; color: white; padding: 10px 20px; text-decoration: none; border-radius: 4px; margin-top: 20px; }
    </style>
  </head>
  <body>
    <h1>Calendar Download Failed</h1>
    <div class="error">
      <p>Sorry, we couldn't generate the calendar file. Please try again later.</p>
      <p>Error details: {{.}}</p>
    </div>
    <a href="/" class="button">Return to Home</a>
  </body>
</html>
`))

type CalendarController struct {
	Logger  *slog.Logger
	Encoder domain.CalendarEncoder
	Event   *domain.EventDetails
}

func NewCalendarController(logger *slog.Logger, encoder domain.CalendarEncoder, event *domain.EventDetails) *CalendarController {
	return &CalendarController{
		Logger:  logger,
		Encoder: encoder,
		Event:   event,
	}
}

// Download godoc
// @Summary Download the calendar invite
// @Description Returns the event as an iCalendar file. On failure an HTML error page is returned, since the link is opened directly in a browser.
// @Tags calendar
// @Produce text/calendar
// @Produce html
// @Success 200 {file} file "event .ics"
// @Failure 500 {string} string "HTML error page"
// @Router /calendar [get]
func (c *CalendarController) Download(w http.ResponseWriter, r *http.Request) {
	body, err := c.Encoder.Encode(c.Event)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusInternalServerError)
		_ = calendarErrorPage.Execute(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+c.Event.CalendarFilename()+`"`)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
