package commands

import (
	"context"
	"time"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler performs the status transition requested
// by a command, in order: permission gate, state-machine check, courier
// precondition, conditional persist.
//
// The persist is a compare-and-swap on the previously-read status, so two
// concurrent transitions on the same order cannot both win: the loser's
// UPDATE matches zero rows and surfaces as InvalidTransition, exactly like
// a stale transition request. The status and completedAt writes are one
// atomic UPDATE.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	gate       PermissionGate
	now        func() time.Time
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, gate PermissionGate) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		now:        time.Now,
	}
}

// NewChangeOrderStatusCommandHandlerWithClock creates a handler with an
// injected clock for deterministic tests.
func NewChangeOrderStatusCommandHandlerWithClock(
	uowFactory OrderUoWFactory,
	gate PermissionGate,
	now func() time.Time,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		now:        now,
	}
}

// Handle executes the transition and returns the updated order.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) (*order.Order, error) {
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

	from := loadedOrder.Status()
	if err = loadedOrder.TransitionTo(command.Target(), h.now()); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().UpdateStatusFrom(ctx, loadedOrder, from); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return loadedOrder, nil
}
