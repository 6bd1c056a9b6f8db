package commands

import (
	"errors"
	"strings"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/errs"
	"resto/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand registers a new courier, active by default.
type CreateCourierCommand struct {
	courierID kernel.UUID
	name      string
	actor     Actor

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a validated command to register a courier.
func NewCreateCourierCommand(courierID kernel.UUID, name string, actor Actor) (CreateCourierCommand, error) {
	if err := errors.Join(
		courierID.Validate(),
		actor.Role().Validate(),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	if strings.TrimSpace(name) == "" {
		return CreateCourierCommand{}, errs.NewValueIsRequiredError("name")
	}

	return CreateCourierCommand{
		courierID: courierID,
		name:      name,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the identifier for the new courier.
func (c *CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier's name.
func (c *CreateCourierCommand) Name() string {
	return c.name
}

// Actor returns who is executing the command.
func (c *CreateCourierCommand) Actor() Actor {
	return c.actor
}
