// Package ports defines the persistence contracts between the core and
// the infrastructure adapters, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"resto/internal/core/domain/model/courier"
	"resto/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAll retrieves every courier, active or not.
	GetAll(ctx context.Context) ([]*courier.Courier, error)
}
