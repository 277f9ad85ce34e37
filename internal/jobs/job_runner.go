package jobs

import (
	"context"
	"fmt"
	"time"

	"rental-tracker-backend/internal/config"
	"rental-tracker-backend/internal/logger"
	"rental-tracker-backend/internal/metrics"
	"rental-tracker-backend/internal/repository/postgres"
	"rental-tracker-backend/internal/storage"
)

const (
	JobPurgePasswordResets    = "purge-password-resets"
	JobPurgeOrphanAttachments = "purge-orphan-attachments"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store   *postgres.Store
	files   storage.StorageInterface
	metrics *metrics.Metrics
	config  *config.Config
	now     func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, files storage.StorageInterface, m *metrics.Metrics, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:   store,
		files:   files,
		metrics: m,
		config:  cfg,
		now:     time.Now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery and records the
// outcome in metrics.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) (int64, error)) (removed int64, err error) {
	log := logger.WithService("jobs").With("job", jobName)
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
		jr.metrics.JobDone(jobName, start, removed, err)
	}()

	log.Info("Starting job")
	removed, err = jobFunc(context.Background())
	if err != nil {
		log.Error("Job failed", "removed", removed, "error", err)
		return removed, err
	}
	log.Info("Job completed", "removed", removed, "duration_ms", time.Since(start).Milliseconds())
	return removed, nil
}

// PurgePasswordResets deletes reset tokens that expired or were used.
func (jr *JobRunner) PurgePasswordResets() {
	_, _ = jr.runWithRecovery(JobPurgePasswordResets, jr.purgePasswordResets)
}

// PurgeOrphanAttachments deletes stored files no rental points at.
func (jr *JobRunner) PurgeOrphanAttachments() {
	_, _ = jr.runWithRecovery(JobPurgeOrphanAttachments, jr.purgeOrphanAttachments)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.PurgePasswordResets()
	jr.PurgeOrphanAttachments()
}

// RunByName runs one job by its command-line name.
func (jr *JobRunner) RunByName(name string) error {
	switch name {
	case JobPurgePasswordResets:
		jr.PurgePasswordResets()
	case JobPurgeOrphanAttachments:
		jr.PurgeOrphanAttachments()
	case "all":
		jr.RunAll()
	default:
		return fmt.Errorf("unknown job %q", name)
	}
	return nil
}

// JobNames lists the names accepted by RunByName.
func JobNames() []string {
	return []string{JobPurgePasswordResets, JobPurgeOrphanAttachments, "all"}
}
