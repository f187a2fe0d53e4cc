package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantCreds   string
		wantHeaders string
	}{
		{
			name:        "preflight from allowed origin",
			allowed:     []string{"https://afli.org/"},
			method:      http.MethodOptions,
			origin:      "https://afli.org",
			wantStatus:  http.StatusNoContent,
			wantOrigin:  "https://afli.org",
			wantCreds:   "true",
			wantHeaders: corsAllowHeaders,
		},
		{
			name:       "preflight from unknown origin",
			allowed:    []string{"https://afli.org"},
			method:     http.MethodOptions,
			origin:     "https://evil.example",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "simple request from allowed origin",
			allowed:    []string{"https://afli.org"},
			method:     http.MethodPost,
			origin:     "https://afli.org",
			wantStatus: http.StatusOK,
			wantOrigin: "https://afli.org",
			wantCreds:  "true",
		},
		{
			name:       "wildcard allows any origin without credentials",
			allowed:    []string{"*"},
			method:     http.MethodGet,
			origin:     "https://partner.example",
			wantStatus: http.StatusOK,
			wantOrigin: "https://partner.example",
		},
		{
			name:       "no origin header",
			allowed:    []string{"*"},
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/register", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()

			CORS(tt.allowed, ok).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCreds, rr.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, tt.wantHeaders, rr.Header().Get("Access-Control-Allow-Headers"))
		})
	}
}
