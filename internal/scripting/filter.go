package scripting

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/worldmap/internal/game/world"
)

// keepHook is the global a filter script must define.
const keepHook = "keep"

// ErrNoKeepFunction is returned when a script does not define keep.
var ErrNoKeepFunction = errors.New("scripting: filter script does not define function keep")

// Filter decides, per fixture, whether a map keeps it. The script's
// keep(fixture, location) is called once per fixture; returning false drops
// it, and any other value (including nil) keeps it.
//
// A Filter serializes its calls; its LState is never used concurrently.
type Filter struct {
	mu     sync.Mutex
	L      *lua.LState
	limit  int
	name   string
	logger *zap.Logger
}

// NewFilter compiles source in a fresh sandbox.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit. logger may be nil.
// Postcondition: Returns a Filter owning its LState, or an error when the
// script fails to load or defines no keep function.
func NewFilter(name, source string, instLimit int, logger *zap.Logger) (*Filter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	L := NewSandboxedState(instLimit)
	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	if _, ok := L.GetGlobal(keepHook).(*lua.LFunction); !ok {
		L.Close()
		return nil, fmt.Errorf("%w (%s)", ErrNoKeepFunction, name)
	}
	return &Filter{L: L, limit: instLimit, name: name, logger: logger}, nil
}

// LoadFilter reads and compiles the script at path.
//
// Postcondition: Returns a Filter or an error naming path.
func LoadFilter(path string, instLimit int, logger *zap.Logger) (*Filter, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading %q: %w", path, err)
	}
	return NewFilter(path, string(src), instLimit, logger)
}

// Name returns the script's name, usually its path.
func (f *Filter) Name() string { return f.name }

// Keep calls keep for fx at p.
//
// Postcondition: Returns the script's decision, or an error when the script
// fails or exceeds its instruction budget.
func (f *Filter) Keep(ctx context.Context, fx world.Fixture, p world.Point) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.keep(ctx, fx, p)
}

func (f *Filter) keep(ctx context.Context, fx world.Fixture, p world.Point) (bool, error) {
	release := budget(ctx, f.L, f.limit)
	defer release()

	err := f.L.CallByParam(lua.P{
		Fn:      f.L.GetGlobal(keepHook),
		NRet:    1,
		Protect: true,
	}, fixtureTable(f.L, fx), pointTable(f.L, p))
	if err != nil {
		return false, fmt.Errorf("scripting: %s: keep(id %d): %w", f.name, fx.FixtureID(), err)
	}
	ret := f.L.Get(-1)
	f.L.Pop(1)
	return ret != lua.LFalse, nil
}

// Apply runs the filter over every fixture of m, removing those the script
// drops. The script sees the map summary as the global "map".
//
// Precondition: m must be non-nil.
// Postcondition: Returns the number of fixtures removed. On error m may be
// partially filtered.
func (f *Filter) Apply(ctx context.Context, m *world.Map) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	registerMapModule(f.L, m)

	removed := 0
	for _, p := range m.Locations() {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		var callErr error
		removed += m.RemoveFixtures(p, func(fx world.Fixture) bool {
			if callErr != nil {
				return false
			}
			keep, err := f.keep(ctx, fx, p)
			if err != nil {
				callErr = err
				return false
			}
			return !keep
		})
		if callErr != nil {
			return removed, callErr
		}
	}
	f.logger.Debug("filter applied",
		zap.String("script", f.name),
		zap.Int("removed", removed),
	)
	return removed, nil
}

// Close releases the Lua state.
func (f *Filter) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.L.Close()
}
