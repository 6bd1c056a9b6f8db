// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database rows.
package orderrepo

import (
	"time"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Status and methods are stored as their wire names so the
// rows are readable and the read-side queries can filter on them
// directly.
type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number         string     `gorm:"uniqueIndex"`
	CustomerID     uuid.UUID  `gorm:"type:uuid;index"`
	DeliveryMethod string     `gorm:"type:varchar(32)"`
	PaymentMethod  string     `gorm:"type:varchar(32)"`
	Status         string     `gorm:"type:varchar(32);index"`
	CourierID      *uuid.UUID `gorm:"type:uuid;index"`
	CompletedAt    *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		Number:         aggregate.Number(),
		CustomerID:     aggregate.CustomerID().Bytes(),
		DeliveryMethod: aggregate.DeliveryMethod().String(),
		PaymentMethod:  aggregate.PaymentMethod().String(),
		Status:         aggregate.Status().String(),
		CourierID:      courierID,
		CompletedAt:    aggregate.CompletedAt(),
	}
}

// toDomain converts a database row to an order aggregate via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	deliveryMethod, err := order.DeliveryMethodFromString(dto.DeliveryMethod)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, dto.Number, customerID,
		deliveryMethod, paymentMethod, status,
		courierID, dto.CompletedAt,
	)
}
