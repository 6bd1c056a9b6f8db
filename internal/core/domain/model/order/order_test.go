package order_test

import (
	"testing"
	"time"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
	"resto/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, delivery order.DeliveryMethod, payment order.PaymentMethod) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), "ORD-0001", kernel.NewUUID(), delivery, payment)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("starts in ordered status", func(t *testing.T) {
		o := newTestOrder(t, order.Diantar, order.Cash)

		assert.Equal(t, order.StatusOrdered, o.Status())
		assert.Nil(t, o.Courier())
		assert.Nil(t, o.CompletedAt())
		assert.Equal(t, "ORD-0001", o.Number())
	})

	t.Run("rejects empty number", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "  ", kernel.NewUUID(), order.Diantar, order.Cash)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects zero id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := order.NewOrder(zero, "ORD-0001", kernel.NewUUID(), order.Diantar, order.Cash)
		require.Error(t, err)
	})

	t.Run("rejects zero customer id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := order.NewOrder(kernel.NewUUID(), "ORD-0001", zero, order.Diantar, order.Cash)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects invalid methods", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD-0001", kernel.NewUUID(), order.DeliveryMethodUnknown, order.Cash)
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), "ORD-0001", kernel.NewUUID(), order.Diantar, order.PaymentMethodUnknown)
		require.Error(t, err)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores full state", func(t *testing.T) {
		id := kernel.NewUUID()
		customerID := kernel.NewUUID()
		courierID := kernel.NewUUID()
		completedAt := time.Now().UTC()

		o, err := order.RestoreOrder(
			id, "ORD-0042", customerID,
			order.Diantar, order.QRIS,
			order.StatusCompleted, &courierID, &completedAt,
		)
		require.NoError(t, err)

		assert.Equal(t, order.StatusCompleted, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, courierID.IsEqual(*o.Courier()))
		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, completedAt, *o.CompletedAt())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-0042", kernel.NewUUID(),
			order.Diantar, order.QRIS,
			order.StatusUnknown, nil, nil,
		)
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	var notConstructed order.Order
	require.ErrorIs(t, notConstructed.Validate(), order.ErrOrderIsNotConstructed)

	o := newTestOrder(t, order.Diantar, order.Cash)
	require.NoError(t, o.Validate())
}

func TestOrder_AssignCourier(t *testing.T) {
	t.Run("assignment does not change status", func(t *testing.T) {
		o := newTestOrder(t, order.Diantar, order.Cash)
		courierID := kernel.NewUUID()

		require.NoError(t, o.AssignCourier(courierID))
		assert.Equal(t, order.StatusOrdered, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, courierID.IsEqual(*o.Courier()))
	})

	t.Run("reassignment replaces the courier", func(t *testing.T) {
		o := newTestOrder(t, order.Diantar, order.Cash)
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		require.NoError(t, o.AssignCourier(first))
		require.NoError(t, o.AssignCourier(second))
		assert.True(t, second.IsEqual(*o.Courier()))
	})

	t.Run("rejects zero courier id", func(t *testing.T) {
		o := newTestOrder(t, order.Diantar, order.Cash)
		var zero kernel.UUID
		require.Error(t, o.AssignCourier(zero))
	})

	t.Run("rejects terminal orders", func(t *testing.T) {
		o := newTestOrder(t, order.Diantar, order.Cash)
		require.NoError(t, o.TransitionTo(order.StatusCancelled, time.Now()))

		err := o.AssignCourier(kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	now := time.Now()

	t.Run("legal transition succeeds", func(t *testing.T) {
		o := newTestOrder(t, order.Diantar, order.Cash)

		require.NoError(t, o.TransitionTo(order.StatusProcessed, now))
		assert.Equal(t, order.StatusProcessed, o.Status())
		assert.Nil(t, o.CompletedAt())
	})

	t.Run("illegal transition fails with invalid transition", func(t *testing.T) {
		o := newTestOrder(t, order.Diantar, order.Cash)

		err := o.TransitionTo(order.StatusCompleted, now)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.StatusOrdered, o.Status())
	})

	t.Run("electronic payment must pass verification", func(t *testing.T) {
		o := newTestOrder(t, order.Diantar, order.QRIS)

		err := o.TransitionTo(order.StatusProcessed, now)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		require.NoError(t, o.TransitionTo(order.StatusPaymentPending, now))
		require.NoError(t, o.TransitionTo(order.StatusProcessed, now))
	})

	t.Run("delivery requires assigned courier", func(t *testing.T) {
		o := newTestOrder(t, order.Diantar, order.Cash)
		require.NoError(t, o.TransitionTo(order.StatusProcessed, now))

		err := o.TransitionTo(order.StatusOnDelivery, now)
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.Equal(t, order.StatusProcessed, o.Status())

		require.NoError(t, o.AssignCourier(kernel.NewUUID()))
		require.NoError(t, o.TransitionTo(order.StatusOnDelivery, now))
		assert.Equal(t, order.StatusOnDelivery, o.Status())
	})

	t.Run("pickup orders skip the courier precondition", func(t *testing.T) {
		o := newTestOrder(t, order.AmbilSendiri, order.Cash)
		require.NoError(t, o.TransitionTo(order.StatusProcessed, now))
		require.NoError(t, o.TransitionTo(order.StatusReady, now))
		assert.Equal(t, order.StatusReady, o.Status())
	})

	t.Run("completion sets completedAt exactly once", func(t *testing.T) {
		o := newTestOrder(t, order.AmbilSendiri, order.Cash)
		require.NoError(t, o.TransitionTo(order.StatusProcessed, now))
		require.NoError(t, o.TransitionTo(order.StatusReady, now))
		assert.Nil(t, o.CompletedAt())

		require.NoError(t, o.TransitionTo(order.StatusCompleted, now))
		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, now.UTC(), *o.CompletedAt())
	})

	t.Run("terminal statuses accept no transitions", func(t *testing.T) {
		o := newTestOrder(t, order.Diantar, order.Cash)
		require.NoError(t, o.TransitionTo(order.StatusCancelled, now))

		for _, target := range order.AllStatuses() {
			err := o.TransitionTo(target, now)
			require.ErrorIs(t, err, errs.ErrInvalidTransition, target.String())
		}
	})

	t.Run("repeating an applied transition is rejected", func(t *testing.T) {
		o := newTestOrder(t, order.Diantar, order.Cash)
		require.NoError(t, o.TransitionTo(order.StatusProcessed, now))

		err := o.TransitionTo(order.StatusProcessed, now)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("invalid target status is a validation error", func(t *testing.T) {
		o := newTestOrder(t, order.Diantar, order.Cash)
		err := o.TransitionTo(order.StatusUnknown, now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
