package services_test

import (
	"context"
	"errors"
	"testing"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/order"
	"resto/internal/core/domain/services"
	"resto/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticRuleSource serves a fixed rule set without touching storage.
type staticRuleSource struct {
	rules map[access.Role][]access.Rule
	err   error
}

func (s *staticRuleSource) RulesFor(_ context.Context, role access.Role) ([]access.Rule, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rules[role], nil
}

func mustRule(
	t *testing.T,
	role access.Role,
	resource access.Resource,
	action access.Action,
	allowed bool,
	conditions access.Conditions,
) access.Rule {
	t.Helper()

	rule, err := access.NewRule(role, resource, action, allowed, conditions)
	require.NoError(t, err)
	return rule
}

func newEvaluator(t *testing.T, rules ...access.Rule) services.PermissionEvaluator {
	t.Helper()

	grouped := make(map[access.Role][]access.Rule)
	for _, rule := range rules {
		grouped[rule.Role()] = append(grouped[rule.Role()], rule)
	}
	return services.NewPermissionEvaluator(&staticRuleSource{rules: grouped})
}

func TestPermissionEvaluator_FailClosed(t *testing.T) {
	ctx := t.Context()

	t.Run("no rule denies", func(t *testing.T) {
		e := newEvaluator(t)
		allowed, err := e.IsAllowed(ctx, access.RoleCustomer, access.ResourceOrder, access.ActionRead, access.Context{})
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("explicit deny rule denies", func(t *testing.T) {
		e := newEvaluator(t,
			mustRule(t, access.RoleCourier, access.ResourceAnalytics, access.ActionRead, false, access.Conditions{}),
		)
		allowed, err := e.IsAllowed(ctx, access.RoleCourier, access.ResourceAnalytics, access.ActionRead, access.Context{})
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("rule source failure propagates", func(t *testing.T) {
		e := services.NewPermissionEvaluator(&staticRuleSource{err: errors.New("store unavailable")})
		_, err := e.IsAllowed(ctx, access.RoleAdmin, access.ResourceOrder, access.ActionRead, access.Context{})
		require.Error(t, err)
	})
}

func TestPermissionEvaluator_ManageSupersedes(t *testing.T) {
	ctx := t.Context()

	t.Run("manage grants any action without a specific rule", func(t *testing.T) {
		e := newEvaluator(t,
			mustRule(t, access.RoleAdmin, access.ResourceOrder, access.ActionManage, true, access.Conditions{}),
		)

		for _, action := range access.AllActions() {
			allowed, err := e.IsAllowed(ctx, access.RoleAdmin, access.ResourceOrder, action, access.Context{})
			require.NoError(t, err)
			assert.True(t, allowed, action.String())
		}
	})

	t.Run("manage bypasses a denying specific rule and its conditions", func(t *testing.T) {
		e := newEvaluator(t,
			mustRule(t, access.RoleAdmin, access.ResourceOrder, access.ActionManage, true, access.Conditions{}),
			mustRule(t, access.RoleAdmin, access.ResourceOrder, access.ActionDelete, false, access.Conditions{OwnOnly: true}),
		)

		allowed, err := e.IsAllowed(ctx, access.RoleAdmin, access.ResourceOrder, access.ActionDelete, access.Context{})
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("a denied manage rule does not grant", func(t *testing.T) {
		e := newEvaluator(t,
			mustRule(t, access.RoleCourier, access.ResourceOrder, access.ActionManage, false, access.Conditions{}),
			mustRule(t, access.RoleCourier, access.ResourceOrder, access.ActionRead, true, access.Conditions{}),
		)

		allowed, err := e.IsAllowed(ctx, access.RoleCourier, access.ResourceOrder, access.ActionRead, access.Context{})
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = e.IsAllowed(ctx, access.RoleCourier, access.ResourceOrder, access.ActionDelete, access.Context{})
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestPermissionEvaluator_OwnOnly(t *testing.T) {
	ctx := t.Context()
	e := newEvaluator(t,
		mustRule(t, access.RoleCustomer, access.ResourceOrder, access.ActionRead, true, access.Conditions{OwnOnly: true}),
	)

	t.Run("owner is allowed", func(t *testing.T) {
		allowed, err := e.IsAllowed(ctx, access.RoleCustomer, access.ResourceOrder, access.ActionRead,
			access.Context{UserID: "u1", ResourceOwnerID: "u1"})
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("non-owner is denied", func(t *testing.T) {
		allowed, err := e.IsAllowed(ctx, access.RoleCustomer, access.ResourceOrder, access.ActionRead,
			access.Context{UserID: "u1", ResourceOwnerID: "u2"})
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("missing context denies", func(t *testing.T) {
		allowed, err := e.IsAllowed(ctx, access.RoleCustomer, access.ResourceOrder, access.ActionRead, access.Context{})
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestPermissionEvaluator_AssignedOnlyWithStatuses(t *testing.T) {
	ctx := t.Context()
	e := newEvaluator(t,
		mustRule(t, access.RoleCourier, access.ResourceOrder, access.ActionUpdate, true, access.Conditions{
			AssignedOnly: true,
			Statuses:     []order.Status{order.StatusOnDelivery},
		}),
	)

	onDelivery := order.StatusOnDelivery
	processed := order.StatusProcessed

	t.Run("assigned courier during delivery is allowed", func(t *testing.T) {
		allowed, err := e.IsAllowed(ctx, access.RoleCourier, access.ResourceOrder, access.ActionUpdate,
			access.Context{CourierID: "c1", AssignedCourierID: "c1", Status: &onDelivery})
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("wrong status is denied", func(t *testing.T) {
		allowed, err := e.IsAllowed(ctx, access.RoleCourier, access.ResourceOrder, access.ActionUpdate,
			access.Context{CourierID: "c1", AssignedCourierID: "c1", Status: &processed})
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("other courier is denied", func(t *testing.T) {
		allowed, err := e.IsAllowed(ctx, access.RoleCourier, access.ResourceOrder, access.ActionUpdate,
			access.Context{CourierID: "c2", AssignedCourierID: "c1", Status: &onDelivery})
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("missing status denies", func(t *testing.T) {
		allowed, err := e.IsAllowed(ctx, access.RoleCourier, access.ResourceOrder, access.ActionUpdate,
			access.Context{CourierID: "c1", AssignedCourierID: "c1"})
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestPermissionEvaluator_MethodsCondition(t *testing.T) {
	ctx := t.Context()
	e := newEvaluator(t,
		mustRule(t, access.RoleCourier, access.ResourcePayment, access.ActionRead, true, access.Conditions{
			AssignedOrderOnly: true,
			Methods:           []order.PaymentMethod{order.Cash},
		}),
	)

	cash := order.Cash
	qris := order.QRIS

	allowed, err := e.IsAllowed(ctx, access.RoleCourier, access.ResourcePayment, access.ActionRead,
		access.Context{CourierID: "c1", AssignedCourierID: "c1", Method: &cash})
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = e.IsAllowed(ctx, access.RoleCourier, access.ResourcePayment, access.ActionRead,
		access.Context{CourierID: "c1", AssignedCourierID: "c1", Method: &qris})
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestPermissionEvaluator_LimitedFieldsIsNotAGate(t *testing.T) {
	ctx := t.Context()
	e := newEvaluator(t,
		mustRule(t, access.RoleCourier, access.ResourceCustomer, access.ActionRead, true, access.Conditions{
			LimitedFields: true,
		}),
	)

	allowed, err := e.IsAllowed(ctx, access.RoleCourier, access.ResourceCustomer, access.ActionRead, access.Context{})
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestPermissionEvaluator_Require(t *testing.T) {
	ctx := t.Context()
	e := newEvaluator(t,
		mustRule(t, access.RoleAdmin, access.ResourceOrder, access.ActionManage, true, access.Conditions{}),
	)

	require.NoError(t, e.Require(ctx, access.RoleAdmin, access.ResourceOrder, access.ActionUpdate, access.Context{}))

	err := e.Require(ctx, access.RoleCustomer, access.ResourceOrder, access.ActionUpdate, access.Context{})
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestPermissionEvaluator_HasAnyHasAll(t *testing.T) {
	ctx := t.Context()
	e := newEvaluator(t,
		mustRule(t, access.RoleCourier, access.ResourceOrder, access.ActionRead, true, access.Conditions{}),
	)

	checks := []services.Check{
		{Resource: access.ResourceOrder, Action: access.ActionRead},
		{Resource: access.ResourceAnalytics, Action: access.ActionRead},
	}

	any, err := e.HasAny(ctx, access.RoleCourier, checks)
	require.NoError(t, err)
	assert.True(t, any)

	all, err := e.HasAll(ctx, access.RoleCourier, checks)
	require.NoError(t, err)
	assert.False(t, all)

	all, err = e.HasAll(ctx, access.RoleCourier, checks[:1])
	require.NoError(t, err)
	assert.True(t, all)

	all, err = e.HasAll(ctx, access.RoleCourier, nil)
	require.NoError(t, err)
	assert.True(t, all)
}
