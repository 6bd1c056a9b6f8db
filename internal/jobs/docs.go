// Package jobs provides scheduled background tasks, implemented with
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// PaymentExpiryJob cancels orders stuck in PAYMENT_PENDING past the
// configured TTL. Cancellation goes through the regular status-change
// command, so the transition table and concurrency guard apply; a lost
// race against a concurrent verification is silently accepted.
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(uowFactory, changeStatusHandler, ttl, logger)
//	if err := jobManager.StartAll(); err != nil {
//	    log.Fatal().Err(err).Msg("failed to start jobs")
//	}
//	defer jobManager.StopAll()
package jobs
