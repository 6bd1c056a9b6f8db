package queries

import (
	"context"
	"database/sql"
	"time"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads non-terminal orders straight from the
// database with raw SQL, skipping aggregate reconstruction.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Results exclude COMPLETED and CANCELLED
// orders and come back oldest first, so the kitchen works the queue in
// arrival order.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_id,
			delivery_method,
			payment_method,
			status,
			courier_id,
			created_at
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at
	`, order.StatusCompleted.String(), order.StatusCancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id, customerID uuid.UUID
		var courierID uuid.NullUUID
		var deliveryMethod, paymentMethod, status string
		var createdAt sql.NullTime

		err = rows.Scan(
			&id,
			&resp.Number,
			&customerID,
			&deliveryMethod,
			&paymentMethod,
			&status,
			&courierID,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if courierID.Valid {
			assigned, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.CourierID = &assigned
		}

		if resp.DeliveryMethod, err = order.DeliveryMethodFromString(deliveryMethod); err != nil {
			return nil, err
		}
		if resp.PaymentMethod, err = order.PaymentMethodFromString(paymentMethod); err != nil {
			return nil, err
		}
		if resp.Status, err = order.StatusFromString(status); err != nil {
			return nil, err
		}

		if createdAt.Valid {
			resp.CreatedAt = createdAt.Time.UTC()
		} else {
			resp.CreatedAt = time.Time{}
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
