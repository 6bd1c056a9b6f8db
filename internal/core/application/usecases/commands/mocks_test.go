package commands_test

import (
	"context"
	"testing"

	"resto/internal/core/application/usecases/commands"
	"resto/internal/core/domain/model/access"

	"github.com/stretchr/testify/require"
)

// stubGate is a PermissionGate shared by the handler tests. It records the
// last check so tests can assert what the handler asked for, and returns
// the configured error on every call.
type stubGate struct {
	err error

	lastRole     access.Role
	lastResource access.Resource
	lastAction   access.Action
	lastCtx      access.Context
	calls        int
}

func (g *stubGate) Require(
	_ context.Context,
	role access.Role,
	resource access.Resource,
	action access.Action,
	reqCtx access.Context,
) error {
	g.calls++
	g.lastRole = role
	g.lastResource = resource
	g.lastAction = action
	g.lastCtx = reqCtx
	return g.err
}

func allowAll() *stubGate { return &stubGate{} }

func adminActor(t *testing.T) commands.Actor {
	t.Helper()
	actor, err := commands.NewActor(access.RoleAdmin, "admin-1", "")
	require.NoError(t, err)
	return actor
}
