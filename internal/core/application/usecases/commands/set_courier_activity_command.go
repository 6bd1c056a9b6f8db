package commands

import (
	"errors"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/guard"
)

var ErrSetCourierActivityCommandIsNotConstructed = errors.New(
	"SetCourierActivityCommand must be created via NewSetCourierActivityCommand constructor",
)

// SetCourierActivityCommand activates or deactivates a courier. Deactivation
// does not touch orders the courier is already assigned to; it only removes
// the courier from the pool for future assignments.
type SetCourierActivityCommand struct {
	courierID kernel.UUID
	active    bool
	actor     Actor

	guard guard.ConstructorGuard
}

// NewSetCourierActivityCommand creates a validated command to change a
// courier's availability.
func NewSetCourierActivityCommand(courierID kernel.UUID, active bool, actor Actor) (SetCourierActivityCommand, error) {
	if err := errors.Join(
		courierID.Validate(),
		actor.Role().Validate(),
	); err != nil {
		return SetCourierActivityCommand{}, err
	}

	return SetCourierActivityCommand{
		courierID: courierID,
		active:    active,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *SetCourierActivityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierActivityCommandIsNotConstructed)
}

// CourierID returns the identifier of the courier to change.
func (c *SetCourierActivityCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Active reports the desired availability.
func (c *SetCourierActivityCommand) Active() bool {
	return c.active
}

// Actor returns who is executing the command.
func (c *SetCourierActivityCommand) Actor() Actor {
	return c.actor
}
