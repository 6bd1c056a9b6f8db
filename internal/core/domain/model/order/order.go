package order

import (
	"errors"
	"strings"
	"time"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNumberIsRequired is returned when attempting to create an order without an order number.
	ErrNumberIsRequired = errs.NewValueIsRequiredError("number")
)

// Order is the aggregate root for the order lifecycle. It owns the status
// state machine and the courier-assignment invariant; every mutation goes
// through AssignCourier or TransitionTo so the invariants cannot be bypassed.
//
// Invariants:
//   - Created in ORDERED status; only reaches other statuses through
//     transitions allowed by ValidNextStatuses.
//   - courierID must be set before the status can become ON_DELIVERY when
//     the delivery method is DIANTAR.
//   - completedAt is set exactly when the status becomes COMPLETED.
//   - Orders are never deleted, only moved to a terminal status.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-readable order number, unique per order
	number string

	// customerID references the customer who placed the order
	customerID kernel.UUID

	// deliveryMethod is how the order reaches the customer
	deliveryMethod DeliveryMethod

	// paymentMethod is how the customer pays
	paymentMethod PaymentMethod

	// courierID is the assigned courier's ID (nil if unassigned)
	courierID *kernel.UUID

	// status is the current lifecycle stage
	status Status

	// completedAt is set when the order reaches COMPLETED (nil otherwise)
	completedAt *time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in ORDERED status. This is the only way to
// create a fresh order; all parameters are validated and partial failures
// are aggregated into a single error.
func NewOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	deliveryMethod DeliveryMethod,
	paymentMethod PaymentMethod,
) (*Order, error) {
	order := &Order{
		status:        StatusOrdered,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setNumber(number),
		order.setCustomerID(customerID),
		order.setDeliveryMethod(deliveryMethod),
		order.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistent storage with its full
// state, including status, courier assignment and completion timestamp.
// Unlike NewOrder it accepts any valid status.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	deliveryMethod DeliveryMethod,
	paymentMethod PaymentMethod,
	status Status,
	courierID *kernel.UUID,
	completedAt *time.Time,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setNumber(number),
		order.setCustomerID(customerID),
		order.setDeliveryMethod(deliveryMethod),
		order.setPaymentMethod(paymentMethod),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		order.courierID = courierID
	}

	order.completedAt = completedAt
	return order, nil
}

// Validate ensures the Order instance was created through a factory method.
// Called when reconstructing orders from persistence to preserve integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// CustomerID returns the ID of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// DeliveryMethod returns how the order reaches the customer.
func (o *Order) DeliveryMethod() DeliveryMethod {
	return o.deliveryMethod
}

// PaymentMethod returns how the customer pays for the order.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// Status returns the current lifecycle stage of the order.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned courier's ID, or nil if unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// CompletedAt returns the completion timestamp, or nil while the order is
// not COMPLETED.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// ValidNextStatuses returns the statuses this order may move to from its
// current state, given its own delivery and payment methods.
func (o *Order) ValidNextStatuses() []Status {
	return ValidNextStatuses(o.status, o.deliveryMethod, o.paymentMethod)
}

// AssignCourier attaches a courier to the order. No status change occurs
// here; dispatching is a separate transition. Assignment is rejected once
// the order reached a terminal status.
//
// Courier activity is not checked here: the aggregate does not own the
// courier, so the caller verifies isActive against the Courier aggregate
// before assigning.
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return errs.NewPreconditionFailedError(
			"cannot assign courier to order in status " + o.status.String(),
		)
	}

	o.courierID = &courierID
	return nil
}

// TransitionTo moves the order to target if the state machine allows it.
//
// Returns InvalidTransition when target is not in the valid-next set for
// the current status, and PreconditionFailed when a DIANTAR order is moved
// to ON_DELIVERY without an assigned courier. On success the status is
// updated and, when target is COMPLETED, completedAt is set to now; the
// caller persists both fields in one atomic update.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if !IsValidTransition(o.status, target, o.deliveryMethod, o.paymentMethod) {
		return errs.NewInvalidTransitionError(o.status.String(), target.String())
	}

	if o.deliveryMethod == Diantar && target == StatusOnDelivery && o.courierID == nil {
		return errs.NewPreconditionFailedError("assign courier first")
	}

	o.status = target
	if target == StatusCompleted {
		completedAt := now.UTC()
		o.completedAt = &completedAt
	}

	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setNumber validates and sets the human-readable order number.
func (o *Order) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return ErrNumberIsRequired
	}
	o.number = number
	return nil
}

// setCustomerID validates and sets the owning customer reference.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = customerID
	return nil
}

// setDeliveryMethod validates and sets the delivery method.
func (o *Order) setDeliveryMethod(method DeliveryMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.deliveryMethod = method
	return nil
}

// setPaymentMethod validates and sets the payment method.
func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

// setStatus validates and sets the status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
