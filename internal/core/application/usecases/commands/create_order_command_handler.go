package commands

import (
	"context"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists new orders. The permission gate runs
// before the transaction: creating an order needs no loaded resource, so
// the context only carries the actor's own identity.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	gate       PermissionGate
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, gate PermissionGate) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
	}
}

// Handle validates the command, checks ORDER/CREATE permission, and
// persists the new aggregate.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	actor := command.Actor()
	reqCtx := access.Context{
		UserID: actor.UserID(),
		// A new order is owned by the customer it is created for.
		ResourceOwnerID: command.CustomerID().String(),
	}
	if err := h.gate.Require(ctx, actor.Role(), access.ResourceOrder, access.ActionCreate, reqCtx); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		command.OrderID(),
		command.Number(),
		command.CustomerID(),
		command.DeliveryMethod(),
		command.PaymentMethod(),
	)
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

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}
