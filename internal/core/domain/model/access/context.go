package access

import "resto/internal/core/domain/model/order"

// Context carries the request-scoped facts a conditional rule is evaluated
// against. All fields are optional; a condition whose required field is
// missing fails the check rather than being skipped.
type Context struct {
	// UserID is the requester's identity.
	UserID string

	// ResourceOwnerID is the owner of the resource being accessed.
	ResourceOwnerID string

	// CourierID is the requesting courier's identity.
	CourierID string

	// AssignedCourierID is the courier assigned to the order the resource
	// belongs to.
	AssignedCourierID string

	// Status is the order's current status, when the resource relates to
	// an order.
	Status *order.Status

	// Method is the order's payment method, when relevant.
	Method *order.PaymentMethod
}
