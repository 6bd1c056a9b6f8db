package jobs

import (
	"context"
	"errors"
	"time"

	"resto/internal/core/application/usecases/commands"
	"resto/internal/core/domain/model/order"
	"resto/internal/pkg/errs"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// PaymentExpiryJob cancels PAYMENT_PENDING orders whose payment was never
// verified within the TTL. Runs once a minute; each stale order is
// cancelled through the regular status-change handler as the system
// actor, so the transition table and the optimistic-concurrency guard
// still apply.
type PaymentExpiryJob struct {
	uowFactory commands.OrderUoWFactory
	handler    commands.ChangeOrderStatusCommandHandler
	ttl        time.Duration
	cron       *cron.Cron
	logger     zerolog.Logger
}

// NewPaymentExpiryJob creates the payment expiry job. ttl is how long an
// order may sit in PAYMENT_PENDING before cancellation.
func NewPaymentExpiryJob(
	uowFactory commands.OrderUoWFactory,
	handler commands.ChangeOrderStatusCommandHandler,
	ttl time.Duration,
	logger zerolog.Logger,
) *PaymentExpiryJob {
	return &PaymentExpiryJob{
		uowFactory: uowFactory,
		handler:    handler,
		ttl:        ttl,
		cron:       cron.New(),
		logger:     logger.With().Str("component", "payment_expiry_job").Logger(),
	}
}

// Start schedules the job to run every minute.
func (j *PaymentExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Dur("ttl", j.ttl).Msg("payment expiry job started")
	return nil
}

// Stop stops the job.
func (j *PaymentExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.Info().Msg("payment expiry job stopped")
}

func (j *PaymentExpiryJob) run() {
	ctx := context.Background()
	cutoff := time.Now().Add(-j.ttl)

	stale, err := j.loadStale(ctx, cutoff)
	if err != nil {
		j.logger.Error().Err(err).Msg("failed to load stale payment-pending orders")
		return
	}

	for _, staleOrder := range stale {
		cmd, cmdErr := commands.NewChangeOrderStatusCommand(
			staleOrder.ID(), order.StatusCancelled, commands.NewSystemActor(),
		)
		if cmdErr != nil {
			j.logger.Error().Err(cmdErr).Str("order_id", staleOrder.ID().String()).
				Msg("failed to build cancellation command")
			continue
		}

		if _, handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			// A lost race means someone verified or cancelled the order
			// since we read it. That is the desired outcome, not a failure.
			if errors.Is(handleErr, errs.ErrInvalidTransition) {
				continue
			}
			j.logger.Error().Err(handleErr).Str("order_id", staleOrder.ID().String()).
				Msg("failed to cancel expired order")
			continue
		}

		j.logger.Info().Str("order_id", staleOrder.ID().String()).
			Str("number", staleOrder.Number()).
			Msg("cancelled expired payment-pending order")
	}
}

func (j *PaymentExpiryJob) loadStale(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetStalePaymentPending(ctx, cutoff)
}
