package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"webinarregistration/internal/delivery/http/controllers"
	"webinarregistration/internal/delivery/http/middleware"
	"webinarregistration/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Registration *controllers.RegistrationController
	Calendar     *controllers.CalendarController
	Admin        *controllers.AdminController
	Reminder     *controllers.ReminderController
	Health       *controllers.HealthController
}

// RouterConfig holds the access settings of the router.
type RouterConfig struct {
	AllowedOrigins []string
	ReminderAPIKey string
	AdminTokens    domain.TokenVerifier
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, cfg RouterConfig, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	requireAdmin := middleware.RequireAuth(cfg.AdminTokens, logger)
	requireAPIKey := middleware.RequireAPIKey(cfg.ReminderAPIKey, logger)

	mux.HandleFunc("POST /register", c.Registration.Register)
	mux.HandleFunc("GET /calendar", c.Calendar.Download)

	// Admin
	mux.HandleFunc("POST /admin", c.Admin.Login)
	mux.HandleFunc("GET /admin/registrations", requireAdmin(c.Admin.Registrations))

	// Scheduler and external cron
	mux.HandleFunc("POST /reminders", requireAPIKey(c.Reminder.Send))

	mux.HandleFunc("GET /health", c.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	return middleware.Recover(logger, handler)
}
