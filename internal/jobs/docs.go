// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// The only job today is OutboxDrainJob: every fifteen seconds it runs one
// DrainOutboxCommand pass, delivering due notification messages through the
// configured notifier. Failed sends are rescheduled with exponential backoff
// by the outbox domain model; messages out of attempts stay in the table for
// inspection.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(drainHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
