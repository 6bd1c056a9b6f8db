package services

import (
	"context"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/order"
	"resto/internal/pkg/errs"
)

// RuleSource provides the authorization rules for a role. Implemented by
// the cached rule registry; injected so the evaluator stays deterministic
// in unit tests without shared process state.
type RuleSource interface {
	RulesFor(ctx context.Context, role access.Role) ([]access.Rule, error)
}

// Check is one (resource, action, context) probe, used with HasAny and
// HasAll to build role-filtered navigation menus.
type Check struct {
	Resource access.Resource
	Action   access.Action
	Context  access.Context
}

// PermissionEvaluator decides allow/deny for a (role, resource, action,
// context) request against the rule set. It is fail-closed: absence of a
// matching rule denies, and a condition whose required context field is
// missing denies rather than being skipped.
type PermissionEvaluator struct {
	rules RuleSource
}

// NewPermissionEvaluator creates an evaluator over the given rule source.
func NewPermissionEvaluator(rules RuleSource) PermissionEvaluator {
	return PermissionEvaluator{rules: rules}
}

// IsAllowed reports whether role may perform action on resource under the
// supplied request context.
//
// Evaluation order:
//  1. A MANAGE rule with allowed=true grants immediately, bypassing the
//     specific-action rule and its conditions entirely.
//  2. Otherwise the specific rule must exist and be allowed.
//  3. An unconditional rule grants; otherwise every present condition must
//     hold against the context.
//
// The only error returned is a rule-source failure; a plain deny is
// (false, nil).
func (e PermissionEvaluator) IsAllowed(
	ctx context.Context,
	role access.Role,
	resource access.Resource,
	action access.Action,
	reqCtx access.Context,
) (bool, error) {
	rules, err := e.rules.RulesFor(ctx, role)
	if err != nil {
		return false, err
	}

	if manage, ok := findRule(rules, resource, access.ActionManage); ok && manage.Allowed() {
		return true, nil
	}

	rule, ok := findRule(rules, resource, action)
	if !ok || !rule.Allowed() {
		return false, nil
	}

	conditions := rule.Conditions()
	if conditions.IsZero() {
		return true, nil
	}

	return conditionsHold(conditions, reqCtx), nil
}

// Require is the error-typed form of IsAllowed for call sites that gate a
// state change: a deny comes back as a PermissionDenied error the caller
// can log, mask as NotFound, or propagate.
func (e PermissionEvaluator) Require(
	ctx context.Context,
	role access.Role,
	resource access.Resource,
	action access.Action,
	reqCtx access.Context,
) error {
	allowed, err := e.IsAllowed(ctx, role, resource, action, reqCtx)
	if err != nil {
		return err
	}
	if !allowed {
		return errs.NewPermissionDeniedError(role.String(), resource.String(), action.String())
	}
	return nil
}

// HasAny reports whether at least one of the checks passes for the role.
func (e PermissionEvaluator) HasAny(ctx context.Context, role access.Role, checks []Check) (bool, error) {
	for _, check := range checks {
		allowed, err := e.IsAllowed(ctx, role, check.Resource, check.Action, check.Context)
		if err != nil {
			return false, err
		}
		if allowed {
			return true, nil
		}
	}
	return false, nil
}

// HasAll reports whether every check passes for the role. Vacuously true
// for an empty check list.
func (e PermissionEvaluator) HasAll(ctx context.Context, role access.Role, checks []Check) (bool, error) {
	for _, check := range checks {
		allowed, err := e.IsAllowed(ctx, role, check.Resource, check.Action, check.Context)
		if err != nil {
			return false, err
		}
		if !allowed {
			return false, nil
		}
	}
	return true, nil
}

// findRule returns the rule for (resource, action) within a role's rule set.
func findRule(rules []access.Rule, resource access.Resource, action access.Action) (access.Rule, bool) {
	for _, rule := range rules {
		if rule.Resource() == resource && rule.Action() == action {
			return rule, true
		}
	}
	return access.Rule{}, false
}

// conditionsHold evaluates every present condition against the context.
// A missing context field required by a present condition fails the check.
func conditionsHold(conditions access.Conditions, reqCtx access.Context) bool {
	if conditions.OwnOnly {
		if reqCtx.UserID == "" || reqCtx.UserID != reqCtx.ResourceOwnerID {
			return false
		}
	}

	if conditions.AssignedOnly || conditions.AssignedOrderOnly {
		if reqCtx.CourierID == "" || reqCtx.CourierID != reqCtx.AssignedCourierID {
			return false
		}
	}

	if len(conditions.Statuses) > 0 {
		if reqCtx.Status == nil || !containsStatus(conditions.Statuses, *reqCtx.Status) {
			return false
		}
	}

	if len(conditions.Methods) > 0 {
		if reqCtx.Method == nil || !containsMethod(conditions.Methods, *reqCtx.Method) {
			return false
		}
	}

	// LimitedFields is informational for the caller, never a gate.
	return true
}

func containsStatus(statuses []order.Status, status order.Status) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func containsMethod(methods []order.PaymentMethod, method order.PaymentMethod) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}
