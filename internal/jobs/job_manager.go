package jobs

import (
	"fmt"
	"log/slog"

	"atelier/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop background work.
type JobManager struct {
	outboxDrainJob *OutboxDrainJob
}

// NewJobManager creates a job manager wired to the command handlers the jobs
// execute.
func NewJobManager(
	drainHandler commands.DrainOutboxCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxDrainJob: NewOutboxDrainJob(drainHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxDrainJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox drain job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxDrainJob.Stop()
}
