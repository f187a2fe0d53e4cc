// Package scheduler makes sure a reminder pass runs inside every reminder
// window. One-shot entries fire at the exact due instants; a recurring sweep
// catches up after restarts or missed firings.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/robfig/cron/v3"

	"webinarregistration/internal/domain"
)

// DefaultSweepSpec runs the catch-up sweep at the top of every hour. Every
// window is at least an hour wide, so a missed one-shot is still covered.
const DefaultSweepSpec = "0 * * * *"

const defaultFireTimeout = 10 * time.Minute

// Trigger starts one reminder pass.
type Trigger interface {
	Trigger(ctx context.Context) error
}

// Config configures the scheduler.
type Config struct {
	EventStart time.Time
	// SweepSpec is a standard 5-field cron expression.
	SweepSpec string
	// FireTimeout bounds a single firing.
	FireTimeout time.Duration
	Now         func() time.Time
}

// Entry describes one scheduled firing.
type Entry struct {
	Name string
	Next time.Time
}

// Handle owns a running scheduler. It is safe to Stop once.
type Handle struct {
	cron    *cron.Cron
	names   map[cron.EntryID]string
	trigger Trigger
	timeout time.Duration
	logger  *slog.Logger
}

// Start registers the one-shot entries still in the future plus the sweep and starts the cron.
func Start(cfg Config, trigger Trigger, logger *slog.Logger) (*Handle, error) {
	if trigger == nil {
		return nil, errors.New("scheduler: trigger is required")
	}
	if cfg.EventStart.IsZero() {
		return nil, errors.New("scheduler: event start is required")
	}
	if cfg.SweepSpec == "" {
		cfg.SweepSpec = DefaultSweepSpec
	}
	if cfg.FireTimeout <= 0 {
		cfg.FireTimeout = defaultFireTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	h := &Handle{
		cron:    c,
		names:   map[cron.EntryID]string{},
		trigger: trigger,
		timeout: cfg.FireTimeout,
		logger:  logger,
	}

	now := cfg.Now()
	for _, tier := range domain.ReminderTiers {
		at := tier.DueAt(cfg.EventStart)
		if !at.After(now) {
			continue
		}
		name := "reminder_" + string(tier)
		id := c.Schedule(once{at: at}, cron.FuncJob(h.fire(name)))
		h.names[id] = name
	}

	id, err := c.AddFunc(cfg.SweepSpec, h.fire("sweep"))
	if err != nil {
		return nil, fmt.Errorf("scheduler: invalid sweep spec %q: %w", cfg.SweepSpec, err)
	}
	h.names[id] = "sweep"

	c.Start()
	for _, e := range h.Entries() {
		logger.Info("reminder scheduled", "entry", e.Name, "next", e.Next)
	}
	return h, nil
}

// Entries returns the pending firings ordered by next run. One-shots that
// already fired are omitted.
func (h *Handle) Entries() []Entry {
	var out []Entry
	for _, e := range h.cron.Entries() {
		if e.Next.IsZero() {
			continue
		}
		out = append(out, Entry{Name: h.names[e.ID], Next: e.Next})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Next.Before(out[j].Next) })
	return out
}

// Stop prevents new firings and waits for running ones until ctx is done.
func (h *Handle) Stop(ctx context.Context) error {
	done := h.cron.Stop()
	select {
	case <-done.Done():
		h.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Handle) fire(name string) func() {
	return func() {
		// Firings are not tied to Stop: a pass that started is allowed to finish.
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()
		h.logger.Info("reminder firing", "entry", name)
		if err := h.trigger.Trigger(ctx); err != nil {
			h.logger.Error("reminder firing failed", "entry", name, "err", err)
		}
	}
}

// once is a cron.Schedule that fires a single time at at.
type once struct {
	at time.Time
}

func (o once) Next(t time.Time) time.Time {
	if t.Before(o.at) {
		return o.at
	}
	return time.Time{}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}
