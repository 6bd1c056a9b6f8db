package accessrepo

import (
	"context"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/order"
)

// SeedDefaultRules writes the deployment-time permission matrix. It
// upserts, so re-running on startup is safe and administrator edits to
// other triples survive.
//
// The matrix:
//   - ADMIN holds MANAGE on every resource.
//   - CUSTOMER creates orders, payments and reviews, and reads/updates
//     their own. Order updates are additionally limited to statuses where
//     the customer may still act (ORDERED, PAYMENT_PENDING).
//   - COURIER reads and updates only assigned orders, updates only while
//     ON_DELIVERY, and sees redacted payment and customer data for the
//     assigned order.
func SeedDefaultRules(ctx context.Context, repo *GormRuleRepository) error {
	rules, err := defaultRules()
	if err != nil {
		return err
	}

	for _, rule := range rules {
		if err = repo.Upsert(ctx, rule); err != nil {
			return err
		}
	}

	return nil
}

func defaultRules() ([]access.Rule, error) {
	type entry struct {
		role       access.Role
		resource   access.Resource
		action     access.Action
		conditions access.Conditions
	}

	own := access.Conditions{OwnOnly: true}

	entries := make([]entry, 0, 32)

	for _, resource := range access.AllResources() {
		entries = append(entries, entry{access.RoleAdmin, resource, access.ActionManage, access.Conditions{}})
	}

	entries = append(entries,
		entry{access.RoleCustomer, access.ResourceMenu, access.ActionRead, access.Conditions{}},

		entry{access.RoleCustomer, access.ResourceOrder, access.ActionCreate, access.Conditions{}},
		entry{access.RoleCustomer, access.ResourceOrder, access.ActionRead, own},
		entry{access.RoleCustomer, access.ResourceOrder, access.ActionUpdate, access.Conditions{
			OwnOnly:  true,
			Statuses: []order.Status{order.StatusOrdered, order.StatusPaymentPending},
		}},

		entry{access.RoleCustomer, access.ResourcePayment, access.ActionCreate, access.Conditions{}},
		entry{access.RoleCustomer, access.ResourcePayment, access.ActionRead, own},
		entry{access.RoleCustomer, access.ResourcePayment, access.ActionUpdate, own},

		entry{access.RoleCustomer, access.ResourceReview, access.ActionCreate, access.Conditions{}},
		entry{access.RoleCustomer, access.ResourceReview, access.ActionRead, own},
		entry{access.RoleCustomer, access.ResourceReview, access.ActionUpdate, own},

		entry{access.RoleCourier, access.ResourceOrder, access.ActionRead, access.Conditions{
			AssignedOnly: true,
		}},
		entry{access.RoleCourier, access.ResourceOrder, access.ActionUpdate, access.Conditions{
			AssignedOnly: true,
			Statuses:     []order.Status{order.StatusOnDelivery},
		}},
		entry{access.RoleCourier, access.ResourcePayment, access.ActionRead, access.Conditions{
			AssignedOrderOnly: true,
			LimitedFields:     true,
		}},
		entry{access.RoleCourier, access.ResourceCustomer, access.ActionRead, access.Conditions{
			AssignedOrderOnly: true,
			LimitedFields:     true,
		}},
	)

	rules := make([]access.Rule, 0, len(entries))
	for _, e := range entries {
		rule, err := access.NewRule(e.role, e.resource, e.action, true, e.conditions)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}
