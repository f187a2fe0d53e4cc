package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarController_Download(t *testing.T) {
	body := []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	ctrl := NewCalendarController(testLogger, &fakeEncoder{body: body}, testEvent())

	rr := httptest.NewRecorder()
	ctrl.Download(rr, httptest.NewRequest(http.MethodGet, "/calendar", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="launch.ics"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.Equal(t, body, rr.Body.Bytes())
}

func TestCalendarController_DownloadFailure(t *testing.T) {
	ctrl := NewCalendarController(testLogger, &fakeEncoder{err: errors.New("bad <start>")}, testEvent())

	rr := httptest.NewRecorder()
	ctrl.Download(rr, httptest.NewRequest(http.MethodGet, "/calendar", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "Calendar Download Failed")
	assert.Contains(t, rr.Body.String(), "bad &lt;start&gt;")
	assert.Empty(t, rr.Header().Get("Content-Disposition"))
}
