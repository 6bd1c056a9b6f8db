package commands

import (
	"context"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/order"
	"resto/internal/pkg/errs"
)

// AssignCourierCommandHandler attaches couriers to orders within a single
// transaction spanning both aggregates.
//
// Failure kinds:
//   - ObjectNotFound when the order or the courier does not exist
//   - PreconditionFailed when the courier is inactive or the order is terminal
//   - PermissionDenied when the actor may not update the order
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	gate       PermissionGate
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
func NewAssignCourierCommandHandler(uowFactory UoWFactory, gate PermissionGate) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
	}
}

// Handle loads the order and courier, gates the actor, verifies the
// courier is active, and persists the assignment. No status change occurs.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loadedOrder, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	actor := command.Actor()
	if err = h.gate.Require(ctx, actor.Role(), access.ResourceOrder, access.ActionUpdate,
		actor.permissionContext(loadedOrder)); err != nil {
		return nil, err
	}

	assignee, err := uow.CourierRepository().Get(ctx, command.CourierID())
	if err != nil {
		return nil, err
	}

	if !assignee.IsActive() {
		return nil, errs.NewPreconditionFailedError("courier " + assignee.ID().String() + " is inactive")
	}

	if err = loadedOrder.AssignCourier(assignee.ID()); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, loadedOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return loadedOrder, nil
}
