package middleware

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	h "webinarregistration/internal/delivery/http/helpers"
	"webinarregistration/internal/domain"
)

type contextKey string

const subjectKey contextKey = "subject"

// APIKeyHeader carries the shared key of machine-to-machine endpoints.
const APIKeyHeader = "x-api-key"

// SetSubject returns a context with the authenticated subject set. Used by auth middleware.
func SetSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// SubjectFromContext returns the authenticated subject from the context, if present.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the subject in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
// A nil verifier rejects every request.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Unauthorized")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Unauthorized")
				return
			}
			if verifier == nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Unauthorized")
				return
			}
			subject, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Unauthorized")
				return
			}
			next(w, r.WithContext(SetSubject(r.Context(), subject)))
		}
	}
}

// RequireAPIKey returns a wrapper that admits requests whose x-api-key header
// equals key. An empty key rejects every request.
func RequireAPIKey(key string, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	want := sha256.Sum256([]byte(key))
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			got := sha256.Sum256([]byte(r.Header.Get(APIKeyHeader)))
			if key == "" || subtle.ConstantTimeCompare(got[:], want[:]) != 1 {
				logger.WarnContext(r.Context(), "api key rejected", "path", r.URL.Path, "remote", r.RemoteAddr)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "Unauthorized")
				return
			}
			next(w, r)
		}
	}
}
