package commands

import (
	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/order"
)

// Actor identifies who is executing a command. UserID and CourierID feed
// the conditional permission context; either may be empty when the role
// does not carry that identity.
type Actor struct {
	role      access.Role
	userID    string
	courierID string
}

// NewActor creates an Actor after validating the role.
func NewActor(role access.Role, userID, courierID string) (Actor, error) {
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{role: role, userID: userID, courierID: courierID}, nil
}

// NewSystemActor returns the actor used by internal callers such as
// background jobs. It acts with administrative privileges.
func NewSystemActor() Actor {
	return Actor{role: access.RoleAdmin, userID: "system"}
}

// Role returns the actor's role.
func (a Actor) Role() access.Role {
	return a.role
}

// UserID returns the actor's user identity, empty when unknown.
func (a Actor) UserID() string {
	return a.userID
}

// CourierID returns the actor's courier identity, empty for non-couriers.
func (a Actor) CourierID() string {
	return a.courierID
}

// permissionContext builds the conditional-evaluation context for an
// action on the given order.
func (a Actor) permissionContext(o *order.Order) access.Context {
	reqCtx := access.Context{
		UserID:          a.userID,
		ResourceOwnerID: o.CustomerID().String(),
		CourierID:       a.courierID,
	}

	if assigned := o.Courier(); assigned != nil {
		reqCtx.AssignedCourierID = assigned.String()
	}

	status := o.Status()
	reqCtx.Status = &status

	method := o.PaymentMethod()
	reqCtx.Method = &method

	return reqCtx
}
