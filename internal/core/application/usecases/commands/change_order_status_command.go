package commands

import (
	"errors"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
	"resto/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand moves an order to a new lifecycle status.
type ChangeOrderStatusCommand struct {
	orderID kernel.UUID
	target  order.Status
	actor   Actor

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a validated command to change an
// order's status.
func NewChangeOrderStatusCommand(orderID kernel.UUID, target order.Status, actor Actor) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		target.Validate(),
		actor.Role().Validate(),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		target:  target,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c *ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c *ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// Actor returns who is executing the command.
func (c *ChangeOrderStatusCommand) Actor() Actor {
	return c.actor
}
