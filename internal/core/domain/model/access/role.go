package access

import (
	"fmt"

	"resto/internal/pkg/errs"
)

// Role is the authenticated principal's category.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
	RoleCourier  Role = "COURIER"
)

// AllRoles returns every valid role.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleCustomer, RoleCourier}
}

// RoleFromString parses a wire name into a Role.
func RoleFromString(s string) (Role, error) {
	role := Role(s)
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

// Validate checks if the Role is one of the closed set of roles.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleCustomer, RoleCourier:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
}

// String returns the wire name of the role.
func (r Role) String() string {
	return string(r)
}

// Resource is the noun of an authorization check.
type Resource string

const (
	ResourceMenu         Resource = "MENU"
	ResourceOrder        Resource = "ORDER"
	ResourceCustomer     Resource = "CUSTOMER"
	ResourceCourier      Resource = "COURIER"
	ResourcePayment      Resource = "PAYMENT"
	ResourceAnalytics    Resource = "ANALYTICS"
	ResourceSettings     Resource = "SETTINGS"
	ResourcePromo        Resource = "PROMO"
	ResourceReview       Resource = "REVIEW"
	ResourceNotification Resource = "NOTIFICATION"
	ResourcePrivilege    Resource = "PRIVILEGE"
)

// AllResources returns every valid resource.
func AllResources() []Resource {
	return []Resource{
		ResourceMenu,
		ResourceOrder,
		ResourceCustomer,
		ResourceCourier,
		ResourcePayment,
		ResourceAnalytics,
		ResourceSettings,
		ResourcePromo,
		ResourceReview,
		ResourceNotification,
		ResourcePrivilege,
	}
}

// ResourceFromString parses a wire name into a Resource.
func ResourceFromString(s string) (Resource, error) {
	resource := Resource(s)
	if err := resource.Validate(); err != nil {
		return "", err
	}
	return resource, nil
}

// Validate checks if the Resource is one of the closed set of resources.
func (r Resource) Validate() error {
	switch r {
	case ResourceMenu, ResourceOrder, ResourceCustomer, ResourceCourier,
		ResourcePayment, ResourceAnalytics, ResourceSettings, ResourcePromo,
		ResourceReview, ResourceNotification, ResourcePrivilege:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("resource", fmt.Errorf("%q is not a valid resource", string(r)))
}

// String returns the wire name of the resource.
func (r Resource) String() string {
	return string(r)
}

// Action is the verb of an authorization check. ActionManage, when allowed,
// implies all other actions on its resource.
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionRead   Action = "READ"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionManage Action = "MANAGE"
)

// AllActions returns every valid action.
func AllActions() []Action {
	return []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage}
}

// ActionFromString parses a wire name into an Action.
func ActionFromString(s string) (Action, error) {
	action := Action(s)
	if err := action.Validate(); err != nil {
		return "", err
	}
	return action, nil
}

// Validate checks if the Action is one of the closed set of actions.
func (a Action) Validate() error {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", string(a)))
}

// String returns the wire name of the action.
func (a Action) String() string {
	return string(a)
}
