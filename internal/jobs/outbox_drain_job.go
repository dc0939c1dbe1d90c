package jobs

import (
	"context"
	"log/slog"
	"time"

	"atelier/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// outboxDrainSchedule runs the drain every fifteen seconds, frequent enough
// that customers see their confirmation mail promptly.
const outboxDrainSchedule = "*/15 * * * * *"

// OutboxDrainJob periodically delivers pending notifications from the outbox.
type OutboxDrainJob struct {
	handler commands.DrainOutboxCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOutboxDrainJob creates the drain job around its command handler.
func NewOutboxDrainJob(handler commands.DrainOutboxCommandHandler, logger *slog.Logger) *OutboxDrainJob {
	return &OutboxDrainJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "outbox_drain_job"),
	}
}

// Start schedules the drain passes.
func (j *OutboxDrainJob) Start() error {
	_, err := j.cron.AddFunc(outboxDrainSchedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewDrainOutboxCommand(time.Now().UTC(), 0)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Outbox drain command rejected", "error", cmdErr)
			return
		}

		result, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Outbox drain pass failed", "error", handleErr)
			return
		}

		if result.Sent > 0 || result.Failed > 0 {
			j.logger.InfoContext(ctx, "Outbox drain pass finished",
				"sent", result.Sent, "failed", result.Failed)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox drain job started")
	return nil
}

// Stop stops the drain job.
func (j *OutboxDrainJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox drain job stopped")
}
