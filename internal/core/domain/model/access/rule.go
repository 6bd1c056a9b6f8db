package access

import (
	"errors"

	"resto/internal/core/domain/model/order"
)

// ErrRuleIsNotConstructed is returned when using an improperly initialized Rule.
var ErrRuleIsNotConstructed = errors.New("Rule must be created via NewRule constructor")

// Conditions is the closed set of named predicates that narrow a rule's
// applicability to the request context. Every present condition must hold
// for the rule to grant access; absent conditions do not participate.
//
// LimitedFields is informational only: it tells the caller to redact
// sensitive fields from the response, the evaluator itself does not
// enforce it.
type Conditions struct {
	// OwnOnly requires the requester to be the resource's owner.
	OwnOnly bool `json:"ownOnly,omitempty"`

	// AssignedOnly requires the requesting courier to be the order's
	// assigned courier.
	AssignedOnly bool `json:"assignedOnly,omitempty"`

	// AssignedOrderOnly requires the requesting courier to be assigned to
	// the order the resource belongs to. Semantically identical to
	// AssignedOnly; kept as a separate flag because rules distinguish
	// direct order access from access to a related resource.
	AssignedOrderOnly bool `json:"assignedOrderOnly,omitempty"`

	// Statuses is an allow-list of order statuses for which the action is
	// permitted.
	Statuses []order.Status `json:"statuses,omitempty"`

	// Methods is an allow-list of payment methods for which the action is
	// permitted.
	Methods []order.PaymentMethod `json:"methods,omitempty"`

	// LimitedFields tells the caller to redact fields. Not enforced here.
	LimitedFields bool `json:"limitedFields,omitempty"`
}

// IsZero reports whether no condition is present, i.e. the rule applies
// unconditionally.
func (c Conditions) IsZero() bool {
	return !c.OwnOnly &&
		!c.AssignedOnly &&
		!c.AssignedOrderOnly &&
		len(c.Statuses) == 0 &&
		len(c.Methods) == 0 &&
		!c.LimitedFields
}

// Rule is a single authorization rule. Rules are unique per
// (role, resource, action) triple; the registry replaces on conflict.
type Rule struct {
	role          Role
	resource      Resource
	action        Action
	allowed       bool
	conditions    Conditions
	isConstructed bool
}

// NewRule creates a validated authorization rule.
func NewRule(role Role, resource Resource, action Action, allowed bool, conditions Conditions) (Rule, error) {
	if err := errors.Join(
		role.Validate(),
		resource.Validate(),
		action.Validate(),
	); err != nil {
		return Rule{}, err
	}

	return Rule{
		role:          role,
		resource:      resource,
		action:        action,
		allowed:       allowed,
		conditions:    conditions,
		isConstructed: true,
	}, nil
}

// Validate ensures the Rule was created through NewRule.
func (r Rule) Validate() error {
	if !r.isConstructed {
		return ErrRuleIsNotConstructed
	}
	return nil
}

// Role returns the role the rule applies to.
func (r Rule) Role() Role {
	return r.role
}

// Resource returns the resource the rule governs.
func (r Rule) Resource() Resource {
	return r.resource
}

// Action returns the action the rule governs.
func (r Rule) Action() Action {
	return r.action
}

// Allowed reports whether the rule grants or denies the action.
func (r Rule) Allowed() bool {
	return r.allowed
}

// Conditions returns the rule's condition set (zero value when unconditional).
func (r Rule) Conditions() Conditions {
	return r.conditions
}
