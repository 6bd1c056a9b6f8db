package jobs

import (
	"fmt"
	"time"

	"resto/internal/core/application/usecases/commands"

	"github.com/rs/zerolog"
)

// JobManager coordinates the scheduled jobs. Provides a unified
// interface to start and stop all background jobs.
type JobManager struct {
	paymentExpiryJob *PaymentExpiryJob
}

// NewJobManager creates a job manager with all required jobs wired to
// their command handlers.
func NewJobManager(
	uowFactory commands.OrderUoWFactory,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	paymentTTL time.Duration,
	logger zerolog.Logger,
) *JobManager {
	return &JobManager{
		paymentExpiryJob: NewPaymentExpiryJob(uowFactory, changeOrderStatusHandler, paymentTTL, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.paymentExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start payment expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.paymentExpiryJob.Stop()
}
