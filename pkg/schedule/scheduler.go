package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the weekly generation job on a cron spec in the service's
// local timezone.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// New creates a scheduler that runs job according to spec, evaluated in the
// given location. The spec uses standard five-field cron syntax.
func New(spec string, location *time.Location, logger *zap.Logger, job func()) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(location))

	entryID, err := c.AddFunc(spec, job)
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	logger.Info("Scheduled generation job",
		zap.String("spec", spec),
		zap.String("timezone", location.String()),
		zap.Int("entry_id", int(entryID)))

	return &Scheduler{cron: c, logger: logger}, nil
}

// Start launches the cron loop in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop halts the cron loop and waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// NextRun reports when the job will next fire
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
