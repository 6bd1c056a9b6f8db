package commands

import (
	"context"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/courier"
)

// SetCourierActivityCommandHandler flips courier availability.
type SetCourierActivityCommandHandler struct {
	uowFactory CourierUoWFactory
	gate       PermissionGate
}

// NewSetCourierActivityCommandHandler creates a handler for courier
// activation and deactivation.
func NewSetCourierActivityCommandHandler(
	uowFactory CourierUoWFactory, gate PermissionGate,
) SetCourierActivityCommandHandler {
	return SetCourierActivityCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
	}
}

// Handle loads the courier, gates the actor, applies the new availability,
// and persists. Setting the same value twice is a no-op, not an error.
func (h SetCourierActivityCommandHandler) Handle(
	ctx context.Context, command SetCourierActivityCommand,
) (*courier.Courier, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	actor := command.Actor()
	reqCtx := access.Context{UserID: actor.UserID()}
	if err := h.gate.Require(ctx, actor.Role(), access.ResourceCourier, access.ActionUpdate, reqCtx); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loadedCourier, err := uow.CourierRepository().Get(ctx, command.CourierID())
	if err != nil {
		return nil, err
	}

	if command.Active() {
		loadedCourier.Activate()
	} else {
		loadedCourier.Deactivate()
	}

	if err = uow.CourierRepository().Update(ctx, loadedCourier); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return loadedCourier, nil
}
