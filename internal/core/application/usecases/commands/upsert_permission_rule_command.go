package commands

import (
	"errors"

	"resto/internal/core/domain/model/access"
	"resto/internal/pkg/guard"
)

var ErrUpsertPermissionRuleCommandIsNotConstructed = errors.New(
	"UpsertPermissionRuleCommand must be created via NewUpsertPermissionRuleCommand constructor",
)

// UpsertPermissionRuleCommand inserts or replaces a single permission rule.
// A rule is keyed by (role, resource, action); upserting an existing key
// replaces the stored allowed flag and conditions.
type UpsertPermissionRuleCommand struct {
	rule  access.Rule
	actor Actor

	guard guard.ConstructorGuard
}

// NewUpsertPermissionRuleCommand creates a validated command to write a
// permission rule.
func NewUpsertPermissionRuleCommand(rule access.Rule, actor Actor) (UpsertPermissionRuleCommand, error) {
	if err := errors.Join(
		rule.Validate(),
		actor.Role().Validate(),
	); err != nil {
		return UpsertPermissionRuleCommand{}, err
	}

	return UpsertPermissionRuleCommand{
		rule:  rule,
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *UpsertPermissionRuleCommand) Validate() error {
	return c.guard.Validate(ErrUpsertPermissionRuleCommandIsNotConstructed)
}

// Rule returns the rule to write.
func (c *UpsertPermissionRuleCommand) Rule() access.Rule {
	return c.rule
}

// Actor returns who is executing the command.
func (c *UpsertPermissionRuleCommand) Actor() Actor {
	return c.actor
}
