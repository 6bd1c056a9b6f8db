package ports

import (
	"context"
	"time"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate without any
	// concurrency guard. Used for mutations that do not race on status,
	// such as courier assignment.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateStatusFrom persists the aggregate's status and completion
	// timestamp conditioned on the previously-read status: the row is
	// written only if its current status still equals from. A lost race
	// surfaces as an InvalidTransition error, never a silent overwrite.
	UpdateStatusFrom(ctx context.Context, aggregate *order.Order, from order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its human-readable number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetAllActive retrieves all orders not yet in a terminal status.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetStalePaymentPending retrieves PAYMENT_PENDING orders last touched
	// before the cutoff, for the payment-expiry job.
	GetStalePaymentPending(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
