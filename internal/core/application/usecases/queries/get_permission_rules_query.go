package queries

import (
	"errors"

	"resto/internal/core/domain/model/access"
	"resto/internal/pkg/guard"
)

var ErrGetPermissionRulesQueryIsNotConstructed = errors.New(
	"GetPermissionRulesQuery must be created via NewGetPermissionRulesQuery constructor",
)

// GetPermissionRulesQuery retrieves the permission matrix. When Role is
// set, only that role's rules come back; otherwise all roles.
type GetPermissionRulesQuery struct {
	role *access.Role

	guard guard.ConstructorGuard
}

// NewGetPermissionRulesQuery creates a query for the full permission matrix.
func NewGetPermissionRulesQuery() GetPermissionRulesQuery {
	return GetPermissionRulesQuery{guard: guard.NewConstructorGuard()}
}

// NewGetPermissionRulesQueryForRole creates a query scoped to one role.
func NewGetPermissionRulesQueryForRole(role access.Role) (GetPermissionRulesQuery, error) {
	if err := role.Validate(); err != nil {
		return GetPermissionRulesQuery{}, err
	}
	return GetPermissionRulesQuery{role: &role, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetPermissionRulesQuery) Validate() error {
	return q.guard.Validate(ErrGetPermissionRulesQueryIsNotConstructed)
}

// Role returns the role filter, nil when the query covers all roles.
func (q GetPermissionRulesQuery) Role() *access.Role {
	return q.role
}

// GetPermissionRulesQueryResponse groups rules by role, mirroring how the
// admin UI renders the matrix.
type GetPermissionRulesQueryResponse struct {
	Rules map[access.Role][]access.Rule
}
