package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/mderbes/bookvault/internal/metrics"
	"github.com/robfig/cron/v3"
)

// tokenPurger is the slice of the user repository the janitor needs.
type tokenPurger interface {
	PurgeExpiredTokens(ctx context.Context, now time.Time) (int, error)
}

// Janitor clears expired reset/verification tokens on a cron schedule.
// Expiry is checked at validation time anyway, so the sweep is hygiene,
// not correctness.
type Janitor struct {
	users  tokenPurger
	logger *slog.Logger
	cron   *cron.Cron
}

func New(users tokenPurger, logger *slog.Logger) *Janitor {
	return &Janitor{
		users:  users,
		logger: logger.With("component", "janitor"),
		cron:   cron.New(),
	}
}

// Start registers the sweep under schedule (any robfig/cron spec, e.g.
// "@every 1h") and starts the cron runner.
func (j *Janitor) Start(ctx context.Context, schedule string) error {
	_, err := j.cron.AddFunc(schedule, func() {
		j.Sweep(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("janitor started", "schedule", schedule)
	return nil
}

// Stop halts the cron runner and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("janitor stopped")
}

// Sweep runs one purge pass.
func (j *Janitor) Sweep(ctx context.Context) {
	start := time.Now()

	purged, err := j.users.PurgeExpiredTokens(ctx, time.Now())
	if err != nil {
		j.logger.Error("janitor sweep", "error", err)
		return
	}

	metrics.JanitorPurgedTotal.Add(float64(purged))
	metrics.JanitorSweepDuration.Observe(time.Since(start).Seconds())
	if purged > 0 {
		j.logger.Info("janitor purged expired tokens", "count", purged)
	}
}
