// Package queries contains the read side of the application layer. Query
// handlers bypass the aggregates and read models directly from the
// database, per CQRS.
package queries

import (
	"errors"
	"time"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
	"resto/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves all orders that have not reached a
// terminal status, for the kitchen and dispatch dashboards.
//
// Example:
//
//	query := NewGetActiveOrdersQuery()
//	handler := NewGetActiveOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("%s %s %s\n", o.Number, o.Status, o.DeliveryMethod)
//	}
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query to retrieve non-terminal orders.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is the order read model. CourierID is nil
// until a courier is assigned; CompletedAt is always nil here because
// completed orders are terminal and excluded.
type GetActiveOrdersQueryResponse struct {
	ID             kernel.UUID
	Number         string
	CustomerID     kernel.UUID
	DeliveryMethod order.DeliveryMethod
	PaymentMethod  order.PaymentMethod
	Status         order.Status
	CourierID      *kernel.UUID
	CreatedAt      time.Time
}
