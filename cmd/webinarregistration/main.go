package main

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"

	_ "webinarregistration/docs"

	"webinarregistration/config"
	"webinarregistration/internal/adapters/auth"
	"webinarregistration/internal/adapters/calendar"
	"webinarregistration/internal/adapters/email"
	httpdelivery "webinarregistration/internal/delivery/http"
	"webinarregistration/internal/delivery/http/controllers"
	"webinarregistration/internal/domain"
	"webinarregistration/internal/repository/postgres"
	"webinarregistration/internal/scheduler"
	"webinarregistration/internal/services"
)

// @title Webinar Registration API
// @version 1.0
// @description Event registration, calendar invites and tiered email reminders.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 30 * time.Second

func main() {
	app := &cli.App{
		Name:  "webinarregistration",
		Usage: "Event registration server with calendar invites and email reminders.",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			remindCommand(),
			calendarCommand(),
			hashPasswordCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

// runtime holds what every command needs.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	event  *domain.EventDetails
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := config.NewLogger()
	event, err := config.LoadEvent(cfg.EventConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return &runtime{cfg: cfg, logger: logger, event: event}, nil
}

func (rt *runtime) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := postgres.Open(ctx, rt.cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (rt *runtime) emailService(encoder domain.CalendarEncoder) (domain.EmailService, error) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    rt.cfg.Mail.Provider,
		FromAddress: rt.cfg.Mail.FromAddress,
		FromName:    rt.cfg.Mail.FromName,
		SMTP: email.SMTPConfig{
			Host:     rt.cfg.Mail.SMTPHost,
			Port:     rt.cfg.Mail.SMTPPort,
			Username: rt.cfg.Mail.SMTPUser,
			Password: rt.cfg.Mail.SMTPPass,
		},
		SES: email.SESConfig{
			Region:             rt.cfg.Mail.SESRegion,
			AccessKeyID:        rt.cfg.Mail.SESAccessKeyID,
			SecretAccessKey:    rt.cfg.Mail.SESSecretAccessKey,
			InsecureSkipVerify: rt.cfg.Mail.SESInsecureSkipVerify,
		},
	}, rt.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}
	composer := services.NewMessageComposer(email.NewTemplateRenderer(), encoder, services.ComposerConfig{
		SiteURL:    rt.cfg.SiteURL,
		ReportLink: rt.cfg.ReportLink,
		FlyerLink:  rt.cfg.FlyerLink,
		LogoURL:    rt.cfg.LogoURL,
	}, rt.logger)
	return services.NewEmailService(mailer, composer, rt.event, rt.logger), nil
}

func (rt *runtime) reminderService(repo domain.RegistrantRepository, emails domain.EmailService) domain.ReminderService {
	return services.NewReminderService(repo, emails, rt.event, rt.cfg.ReminderConcurrency, rt.logger)
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server and the reminder scheduler.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "migrate", Value: true, Usage: "Apply pending database migrations before serving."},
		},
		Action: func(c *cli.Context) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return rt.serve(ctx, c.Bool("migrate"))
		},
	}
}

func (rt *runtime) serve(ctx context.Context, migrate bool) error {
	logger := rt.logger
	db, err := rt.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	if migrate {
		if err := postgres.Migrate(ctx, db, logger); err != nil {
			return err
		}
	}

	repo := postgres.NewRegistrantRepository(db)
	encoder := calendar.NewEncoder("", "")
	emails, err := rt.emailService(encoder)
	if err != nil {
		return err
	}
	verifier, err := auth.NewSecretVerifier(rt.cfg.AdminPassword, rt.cfg.AdminPasswordHash)
	if err != nil {
		// The rest of the site keeps working; every admin login is rejected.
		logger.Warn("admin password not configured", "err", err)
		verifier = denyAll{}
	}
	tokens := auth.NewJWTIssuer(rt.cfg.AdminTokenSecret)
	var adminTokens domain.TokenVerifier
	if rt.cfg.HasAdminCredential() {
		adminTokens = tokens
	}
	reminders := rt.reminderService(repo, emails)

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Registration: controllers.NewRegistrationController(logger, services.NewRegistrationService(repo, emails, logger)),
		Calendar:     controllers.NewCalendarController(logger, encoder, rt.event),
		Admin:        controllers.NewAdminController(logger, services.NewAdminService(verifier, tokens, repo, rt.cfg.AdminTokenTTL, logger)),
		Reminder:     controllers.NewReminderController(logger, reminders),
		Health:       controllers.NewHealthController(logger, db),
	}, httpdelivery.RouterConfig{
		AllowedOrigins: rt.cfg.AllowedOrigins,
		ReminderAPIKey: rt.cfg.ReminderAPIKey,
		AdminTokens:    adminTokens,
	}, logger)

	var sched *scheduler.Handle
	if trigger := rt.trigger(reminders); trigger != nil {
		sched, err = scheduler.Start(scheduler.Config{
			EventStart: rt.event.StartTime,
			SweepSpec:  rt.cfg.ReminderSweepCron,
		}, trigger, logger)
		if err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	} else {
		logger.Info("scheduler disabled", "mode", rt.cfg.SchedulerMode)
	}

	srv := &http.Server{
		Addr:              ":" + rt.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", rt.cfg.Port, "env", rt.cfg.Environment, "event", rt.event.Title, "start", rt.event.StartTime)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "err", err)
	}
	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			logger.Error("scheduler stop timed out", "err", err)
		}
	}
	return nil
}

func (rt *runtime) trigger(reminders domain.ReminderService) scheduler.Trigger {
	switch rt.cfg.SchedulerMode {
	case config.SchedulerInProcess:
		return &scheduler.EngineTrigger{Service: reminders, Logger: rt.logger}
	case config.SchedulerHTTP:
		return scheduler.NewHTTPTrigger(rt.cfg.SiteURL, rt.cfg.ReminderAPIKey, rt.logger)
	}
	return nil
}

type denyAll struct{}

func (denyAll) Verify(string) bool { return false }

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations.",
		Action: func(c *cli.Context) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			db, err := rt.openDB(c.Context)
			if err != nil {
				return err
			}
			defer db.Close()
			return postgres.Migrate(c.Context, db, rt.logger)
		},
	}
}

func remindCommand() *cli.Command {
	return &cli.Command{
		Name:  "remind",
		Usage: "Run one reminder pass and print the counts.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "remote", Usage: "Ask the running server (SITE_URL) to run the pass via POST /reminders."},
		},
		Action: func(c *cli.Context) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			var counts domain.ReminderCounts
			if c.Bool("remote") {
				counts, err = scheduler.NewHTTPTrigger(rt.cfg.SiteURL, rt.cfg.ReminderAPIKey, rt.logger).Run(c.Context)
			} else {
				counts, err = rt.remindLocal(c.Context)
			}
			if err != nil {
				return fmt.Errorf("reminder pass failed: %w", err)
			}
			return json.NewEncoder(c.App.Writer).Encode(map[string]any{"success": true, "reminders_sent": counts})
		},
	}
}

func (rt *runtime) remindLocal(ctx context.Context) (domain.ReminderCounts, error) {
	db, err := rt.openDB(ctx)
	if err != nil {
		return domain.ReminderCounts{}, err
	}
	defer db.Close()
	emails, err := rt.emailService(calendar.NewEncoder("", ""))
	if err != nil {
		return domain.ReminderCounts{}, err
	}
	trigger := &scheduler.EngineTrigger{Service: rt.reminderService(postgres.NewRegistrantRepository(db), emails), Logger: rt.logger}
	return trigger.Run(ctx)
}

func calendarCommand() *cli.Command {
	return &cli.Command{
		Name:  "calendar",
		Usage: "Print the event calendar file.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write to this file instead of stdout."},
			&cli.BoolFlag{Name: "check", Usage: "Decode the generated file and print its summary instead."},
		},
		Action: func(c *cli.Context) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			body, err := calendar.NewEncoder("", "").Encode(rt.event)
			if err != nil {
				return err
			}
			if c.Bool("check") {
				decoded, err := calendar.Decode(bytes.NewReader(body))
				if err != nil {
					return fmt.Errorf("generated calendar does not parse: %w", err)
				}
				_, err = fmt.Fprintf(c.App.Writer, "uid: %s\ntitle: %s\nstart: %s\nend: %s\nalarms: %s\n",
					decoded.UID, decoded.Title, decoded.Start.Format(time.RFC3339), decoded.End.Format(time.RFC3339), strings.Join(decoded.Triggers, ", "))
				return err
			}
			if out := c.String("out"); out != "" {
				return os.WriteFile(out, body, 0o644)
			}
			_, err = c.App.Writer.Write(body)
			return err
		},
	}
}

func hashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:  "hash-password",
		Usage: "Read a password from stdin and print a bcrypt hash for ADMIN_PASSWORD_HASH.",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "cost", Value: bcrypt.DefaultCost, Usage: "bcrypt cost."},
		},
		Action: func(c *cli.Context) error {
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read password: %w", err)
			}
			hash, err := auth.HashSecret(strings.TrimRight(line, "\r\n"), c.Int("cost"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, hash)
			return err
		},
	}
}
