package commands

import (
	"errors"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand attaches a courier to an order. Assignment never
// changes the order's status; dispatching is a separate status transition.
type AssignCourierCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID
	actor     Actor

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a validated command to assign a courier.
func NewAssignCourierCommand(orderID, courierID kernel.UUID, actor Actor) (AssignCourierCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		courierID.Validate(),
		actor.Role().Validate(),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return AssignCourierCommand{
		orderID:   orderID,
		courierID: courierID,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c *AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier to assign.
func (c *AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Actor returns who is executing the command.
func (c *AssignCourierCommand) Actor() Actor {
	return c.actor
}
