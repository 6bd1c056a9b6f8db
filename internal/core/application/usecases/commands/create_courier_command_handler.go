package commands

import (
	"context"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/courier"
)

// CreateCourierCommandHandler registers new couriers. New couriers start
// active and become assignable immediately.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	gate       PermissionGate
}

// NewCreateCourierCommandHandler creates a handler for courier registration.
func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory, gate PermissionGate) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
	}
}

// Handle validates the command, checks COURIER/CREATE permission, and
// persists the new courier.
func (h CreateCourierCommandHandler) Handle(ctx context.Context, command CreateCourierCommand) (*courier.Courier, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	actor := command.Actor()
	reqCtx := access.Context{UserID: actor.UserID()}
	if err := h.gate.Require(ctx, actor.Role(), access.ResourceCourier, access.ActionCreate, reqCtx); err != nil {
		return nil, err
	}

	newCourier, err := courier.NewCourier(command.CourierID(), command.Name())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CourierRepository().Add(ctx, newCourier); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newCourier, nil
}
