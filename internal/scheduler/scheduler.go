package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"rental-tracker-backend/internal/jobs"
	"rental-tracker-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner. Cron
// expressions carry a seconds field and run in the configured timezone.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(jobRunner.Config().Location()),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.PurgePasswordResets, s.jobs.PurgePasswordResets); err != nil {
		logger.Error("Failed to register PurgePasswordResets job", "schedule", cfg.PurgePasswordResets, "error", err)
		return fmt.Errorf("invalid schedule for %s: %w", jobs.JobPurgePasswordResets, err)
	}

	if _, err := s.cron.AddFunc(cfg.PurgeOrphanAttachments, s.jobs.PurgeOrphanAttachments); err != nil {
		logger.Error("Failed to register PurgeOrphanAttachments job", "schedule", cfg.PurgeOrphanAttachments, "error", err)
		return fmt.Errorf("invalid schedule for %s: %w", jobs.JobPurgeOrphanAttachments, err)
	}

	logger.Info("All cron jobs registered successfully", "count", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
