package queries

import (
	"context"

	"resto/internal/core/domain/model/access"
)

// RuleReader exposes the cached permission matrix. Satisfied by
// services.CachedRuleRegistry. Reading through the registry instead of
// raw SQL keeps this view coherent with what the evaluator enforces.
type RuleReader interface {
	RulesFor(ctx context.Context, role access.Role) ([]access.Rule, error)
	AllRules(ctx context.Context) (map[access.Role][]access.Rule, error)
}

// GetPermissionRulesQueryHandler serves the permission matrix.
type GetPermissionRulesQueryHandler struct {
	rules RuleReader
}

// NewGetPermissionRulesQueryHandler creates a handler for permission
// matrix queries.
func NewGetPermissionRulesQueryHandler(rules RuleReader) GetPermissionRulesQueryHandler {
	return GetPermissionRulesQueryHandler{rules: rules}
}

// Handle executes the query, grouped by role.
func (h GetPermissionRulesQueryHandler) Handle(
	ctx context.Context,
	query GetPermissionRulesQuery,
) (GetPermissionRulesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPermissionRulesQueryResponse{}, err
	}

	if role := query.Role(); role != nil {
		rules, err := h.rules.RulesFor(ctx, *role)
		if err != nil {
			return GetPermissionRulesQueryResponse{}, err
		}
		return GetPermissionRulesQueryResponse{
			Rules: map[access.Role][]access.Rule{*role: rules},
		}, nil
	}

	all, err := h.rules.AllRules(ctx)
	if err != nil {
		return GetPermissionRulesQueryResponse{}, err
	}
	return GetPermissionRulesQueryResponse{Rules: all}, nil
}
