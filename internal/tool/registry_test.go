package tool

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(_ context.Context, _ json.RawMessage) (string, error) {
	return "", nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{Name: "echo", Permission: PermissionUser}, func(_ context.Context, params json.RawMessage) (string, error) {
		return string(params), nil
	})

	def, handler, ok := r.Get("echo")
	require.True(t, ok)
	assert.Equal(t, "echo", def.Name)
	assert.Equal(t, PermissionUser, def.Permission)

	out, err := handler(context.Background(), json.RawMessage(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	_, _, ok := r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{Name: "echo", Description: "first"}, noopHandler)
	r.Register(Definition{Name: "echo", Description: "second"}, noopHandler)

	def, _, ok := r.Get("echo")
	require.True(t, ok)
	assert.Equal(t, "second", def.Description)
	assert.Len(t, r.List(), 1)
}

func TestRegistry_ListSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{Name: "zeta"}, noopHandler)
	r.Register(Definition{Name: "alpha"}, noopHandler)

	defs := r.List()
	require.Len(t, defs, 2)
	assert.Equal(t, "alpha", defs[0].Name)
	assert.Equal(t, "zeta", defs[1].Name)
}

func TestRegistry_Readiness(t *testing.T) {
	r := NewRegistry()
	require.Error(t, r.CheckReadiness(context.Background()))

	r.Register(Definition{Name: "echo"}, noopHandler)
	assert.NoError(t, r.CheckReadiness(context.Background()))
}
