package scripting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"pgregory.net/rapid"
)

func TestNewSandboxedState_StrippedGlobals(t *testing.T) {
	L := NewSandboxedState(0)
	require.NotNil(t, L)
	defer L.Close()
	for _, name := range []string{"os", "io", "debug", "dofile", "loadfile", "load", "collectgarbage", "require"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "expected %s to be nil", name)
	}
}

func TestNewSandboxedState_SafeLibsAvailable(t *testing.T) {
	L := NewSandboxedState(0)
	require.NotNil(t, L)
	defer L.Close()
	err := L.DoString(`
		local x = math.floor(7 / 2)
		assert(x == 3, "math.floor failed")
		local s = string.lower("FOREST")
		assert(s == "forest", "string.lower failed")
		local t = {}
		table.insert(t, s)
		assert(#t == 1, "table.insert failed")
	`)
	assert.NoError(t, err)
}

func TestNewSandboxedState_LoadLimitExceeded(t *testing.T) {
	L := NewSandboxedState(10)
	require.NotNil(t, L)
	defer L.Close()
	assert.Error(t, L.DoString(`while true do end`))
}

func TestBudget_ReplacesExhaustedLimit(t *testing.T) {
	L := NewSandboxedState(10)
	defer L.Close()
	require.Error(t, L.DoString(`while true do end`))

	release := budget(context.Background(), L, 1000)
	err := L.DoString(`local n = 0 for i = 1, 10 do n = n + i end`)
	release()
	assert.NoError(t, err)
}

func TestBudget_ParentCancellation(t *testing.T) {
	L := NewSandboxedState(0)
	defer L.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	release := budget(ctx, L, 1_000_000)
	defer release()
	assert.Error(t, L.DoString(`local n = 0 for i = 1, 100 do n = n + i end`))
}

func TestProperty_BudgetAlwaysStopsInfiniteLoop(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(1, 200).Draw(t, "limit")
		L := NewSandboxedState(0)
		defer L.Close()
		release := budget(context.Background(), L, limit)
		defer release()
		if err := L.DoString(`while true do end`); err == nil {
			t.Fatalf("expected error with limit=%d but got nil", limit)
		}
	})
}
