package accessrepo

import (
	"context"

	"resto/internal/core/domain/model/access"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRuleRepository implements RuleRepository using GORM. It also
// satisfies services.RuleStore, so the cached registry can sit directly
// on top of it.
type GormRuleRepository struct {
	db *gorm.DB
}

// NewGormRuleRepository creates a new GORM permission rule repository.
func NewGormRuleRepository(db *gorm.DB) *GormRuleRepository {
	return &GormRuleRepository{db: db}
}

// GetAll retrieves every persisted rule.
func (r *GormRuleRepository) GetAll(ctx context.Context) ([]access.Rule, error) {
	var dtos []RuleDTO
	if err := r.db.WithContext(ctx).Order("role, resource, action").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByRole retrieves the rules for one role.
func (r *GormRuleRepository) GetByRole(ctx context.Context, role access.Role) ([]access.Rule, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	var dtos []RuleDTO
	err := r.db.WithContext(ctx).
		Order("resource, action").
		Find(&dtos, "role = ?", role.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Upsert inserts the rule or replaces the existing rule with the same
// (role, resource, action) triple.
func (r *GormRuleRepository) Upsert(ctx context.Context, rule access.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(rule)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "role"}, {Name: "resource"}, {Name: "action"}},
			DoUpdates: clause.AssignmentColumns([]string{"allowed", "conditions"}),
		}).
		Create(&dto).Error
}

func toDomainSlice(dtos []RuleDTO) ([]access.Rule, error) {
	rules := make([]access.Rule, 0, len(dtos))
	for _, dto := range dtos {
		rule, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}
