package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/neersanchay/internal/store"
)

// Sweeper is the periodic maintenance the scheduler runs.
type Sweeper interface {
	Sweep() store.SweepResult
}

// Scheduler periodically sweeps the session for expired status messages
// and idle timeouts.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	interval  time.Duration
	log       *slog.Logger
}

// New creates a new Scheduler.
func New(sweeper Sweeper, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sweeper:   sweeper,
		interval:  interval,
		log:       logger.With("component", "scheduler"),
	}
}

// Start schedules the sweep and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval < time.Second {
		interval = time.Second
	}

	_, err := s.scheduler.Every(interval).SingletonMode().Do(func() {
		res := s.sweeper.Sweep()
		if res.StatusExpired || res.SessionReset {
			s.log.Debug("sweep completed", "status_expired", res.StatusExpired, "session_reset", res.SessionReset)
		}
	})
	if err != nil {
		return err
	}

	s.log.Info("scheduler started", "interval", interval.String())
	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
