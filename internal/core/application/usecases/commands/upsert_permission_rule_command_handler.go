package commands

import (
	"context"

	"resto/internal/core/domain/model/access"
)

// RuleWriter persists permission rules and keeps any cached view coherent.
// Satisfied by services.CachedRuleRegistry.
type RuleWriter interface {
	Upsert(ctx context.Context, rule access.Rule) error
}

// UpsertPermissionRuleCommandHandler writes permission rules. The handler
// is gated on PRIVILEGE/MANAGE, so out of the seeded roles only ADMIN can
// reach the write.
type UpsertPermissionRuleCommandHandler struct {
	rules RuleWriter
	gate  PermissionGate
}

// NewUpsertPermissionRuleCommandHandler creates a handler for rule writes.
func NewUpsertPermissionRuleCommandHandler(rules RuleWriter, gate PermissionGate) UpsertPermissionRuleCommandHandler {
	return UpsertPermissionRuleCommandHandler{
		rules: rules,
		gate:  gate,
	}
}

// Handle gates the actor on PRIVILEGE/MANAGE and writes the rule through
// the registry so subsequent permission checks see it immediately.
func (h UpsertPermissionRuleCommandHandler) Handle(ctx context.Context, command UpsertPermissionRuleCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	actor := command.Actor()
	reqCtx := access.Context{UserID: actor.UserID()}
	if err := h.gate.Require(ctx, actor.Role(), access.ResourcePrivilege, access.ActionManage, reqCtx); err != nil {
		return err
	}

	return h.rules.Upsert(ctx, command.Rule())
}
