package janitor_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/mderbes/bookvault/internal/janitor"
)

type fakePurger struct {
	purge func(ctx context.Context, now time.Time) (int, error)
}

func (f *fakePurger) PurgeExpiredTokens(ctx context.Context, now time.Time) (int, error) {
	return f.purge(ctx, now)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestSweep_PurgesWithCurrentTime(t *testing.T) {
	var capturedNow time.Time
	p := &fakePurger{
		purge: func(_ context.Context, now time.Time) (int, error) {
			capturedNow = now
			return 3, nil
		},
	}

	before := time.Now()
	janitor.New(p, newTestLogger()).Sweep(context.Background())

	if capturedNow.Before(before) {
		t.Errorf("purge cutoff %v predates sweep start %v", capturedNow, before)
	}
}

func TestSweep_RepoError_DoesNotPanic(t *testing.T) {
	p := &fakePurger{
		purge: func(_ context.Context, _ time.Time) (int, error) {
			return 0, errors.New("db down")
		},
	}

	janitor.New(p, newTestLogger()).Sweep(context.Background())
}

func TestStartStop_BadSchedule_ReturnsError(t *testing.T) {
	p := &fakePurger{
		purge: func(_ context.Context, _ time.Time) (int, error) { return 0, nil },
	}

	j := janitor.New(p, newTestLogger())
	if err := j.Start(context.Background(), "not a cron spec"); err == nil {
		t.Error("expected error for invalid schedule")
	}
}
