package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"webinarregistration/internal/delivery/http/helpers"
	"webinarregistration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistrants(n int) []*domain.Registrant {
	regs := make([]*domain.Registrant, n)
	for i := range regs {
		regs[i] = domain.NewRegistrant(fmt.Sprintf("Person %d", i), fmt.Sprintf("p%d@example.com", i), "", "", "")
		regs[i].ID = fmt.Sprintf("id-%d", i)
	}
	return regs
}

func TestAdminController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeAdminService
		wantStatus int
		wantError  string
		wantCount  int
	}{
		{
			name:       "correct password",
			body:       `{"password":"letmein"}`,
			svc:        &fakeAdminService{password: "letmein", token: "tok", registrants: sampleRegistrants(2)},
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name:       "empty store returns empty list",
			body:       `{"password":"letmein"}`,
			svc:        &fakeAdminService{password: "letmein", token: "tok"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       `{"password":"guess"}`,
			svc:        &fakeAdminService{password: "letmein"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid password",
		},
		{
			name:       "malformed body",
			body:       `password=letmein`,
			svc:        &fakeAdminService{password: "letmein"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
		{
			name:       "store failure",
			body:       `{"password":"letmein"}`,
			svc:        &fakeAdminService{password: "letmein", listErr: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to fetch registrations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAdminController(testLogger, tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/admin", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				var body helpers.ErrorResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, tt.wantError, body.Error)
				return
			}
			var raw map[string]json.RawMessage
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
			assert.JSONEq(t, `"tok"`, string(raw["token"]))
			var regs []*domain.Registrant
			require.NoError(t, json.Unmarshal(raw["registrations"], &regs))
			require.NotNil(t, regs)
			assert.Len(t, regs, tt.wantCount)
		})
	}
}

func TestAdminController_Registrations(t *testing.T) {
	svc := &fakeAdminService{registrants: sampleRegistrants(5)}
	ctrl := NewAdminController(testLogger, svc)

	t.Run("full list", func(t *testing.T) {
		rr := httptest.NewRecorder()
		ctrl.Registrations(rr, httptest.NewRequest(http.MethodGet, "/admin/registrations", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var body RegistrationsResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		require.Len(t, body.Registrations, 5)
		assert.Equal(t, "id-0", body.Registrations[0].ID)
	})

	t.Run("store failure", func(t *testing.T) {
		failing := NewAdminController(testLogger, &fakeAdminService{listErr: errors.New("db down")})
		rr := httptest.NewRecorder()
		failing.Registrations(rr, httptest.NewRequest(http.MethodGet, "/admin/registrations", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
