package commands

import (
	"errors"
	"strings"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
	"resto/internal/pkg/errs"
	"resto/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order in ORDERED status on behalf of a
// customer.
type CreateOrderCommand struct {
	orderID        kernel.UUID
	number         string
	customerID     kernel.UUID
	deliveryMethod order.DeliveryMethod
	paymentMethod  order.PaymentMethod
	actor          Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated command to place an order.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	number string,
	customerID kernel.UUID,
	deliveryMethod order.DeliveryMethod,
	paymentMethod order.PaymentMethod,
	actor Actor,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		deliveryMethod.Validate(),
		paymentMethod.Validate(),
		actor.Role().Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	if strings.TrimSpace(number) == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("number")
	}

	return CreateOrderCommand{
		orderID:        orderID,
		number:         number,
		customerID:     customerID,
		deliveryMethod: deliveryMethod,
		paymentMethod:  paymentMethod,
		actor:          actor,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c *CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number returns the human-readable order number.
func (c *CreateOrderCommand) Number() string {
	return c.number
}

// CustomerID returns the ordering customer's identifier.
func (c *CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// DeliveryMethod returns how the order reaches the customer.
func (c *CreateOrderCommand) DeliveryMethod() order.DeliveryMethod {
	return c.deliveryMethod
}

// PaymentMethod returns how the customer pays.
func (c *CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// Actor returns who is executing the command.
func (c *CreateOrderCommand) Actor() Actor {
	return c.actor
}
