package ports

import (
	"context"

	"resto/internal/core/domain/model/access"
)

// RuleRepository defines the persistence contract for authorization rules.
// It satisfies services.RuleStore so the cached registry can sit directly
// on top of it.
type RuleRepository interface {
	// GetAll retrieves every persisted rule.
	GetAll(ctx context.Context) ([]access.Rule, error)

	// GetByRole retrieves the rules for one role.
	GetByRole(ctx context.Context, role access.Role) ([]access.Rule, error)

	// Upsert inserts the rule or replaces the existing rule with the same
	// (role, resource, action) triple.
	Upsert(ctx context.Context, rule access.Rule) error
}
