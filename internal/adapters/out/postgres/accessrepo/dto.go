// Package accessrepo provides data transfer objects and mapping
// functions for permission rule persistence. Rules are keyed by
// (role, resource, action) and carry their conditions as a jsonb
// document, so new condition kinds do not need schema changes.
package accessrepo

import (
	"encoding/json"

	"resto/internal/core/domain/model/access"
)

// RuleDTO represents the database structure for persisting permission
// rules.
type RuleDTO struct {
	Role       string          `gorm:"type:varchar(32);primaryKey"`
	Resource   string          `gorm:"type:varchar(32);primaryKey"`
	Action     string          `gorm:"type:varchar(32);primaryKey"`
	Allowed    bool            `gorm:"not null"`
	Conditions json.RawMessage `gorm:"type:jsonb"`
}

// TableName specifies the database table name for permission rules.
func (RuleDTO) TableName() string {
	return "permission_rules"
}

// fromDomain converts a permission rule to its database representation.
// Unconditional rules store SQL NULL instead of an empty document.
func fromDomain(rule access.Rule) (RuleDTO, error) {
	dto := RuleDTO{
		Role:     rule.Role().String(),
		Resource: rule.Resource().String(),
		Action:   rule.Action().String(),
		Allowed:  rule.Allowed(),
	}

	if conditions := rule.Conditions(); !conditions.IsZero() {
		raw, err := json.Marshal(conditions)
		if err != nil {
			return RuleDTO{}, err
		}
		dto.Conditions = raw
	}

	return dto, nil
}

// toDomain converts a database row to a permission rule.
func toDomain(dto RuleDTO) (access.Rule, error) {
	role, err := access.RoleFromString(dto.Role)
	if err != nil {
		return access.Rule{}, err
	}

	resource, err := access.ResourceFromString(dto.Resource)
	if err != nil {
		return access.Rule{}, err
	}

	action, err := access.ActionFromString(dto.Action)
	if err != nil {
		return access.Rule{}, err
	}

	var conditions access.Conditions
	if len(dto.Conditions) > 0 {
		if err = json.Unmarshal(dto.Conditions, &conditions); err != nil {
			return access.Rule{}, err
		}
	}

	return access.NewRule(role, resource, action, dto.Allowed, conditions)
}
