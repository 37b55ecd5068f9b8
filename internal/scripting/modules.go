package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/worldmap/internal/game/world"
)

// registerMapModule publishes a read-only summary of m as the global "map".
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: map.rows, map.columns, map.version, map.turn and
// map.current_player are defined in L.
func registerMapModule(L *lua.LState, m *world.Map) {
	t := L.NewTable()
	t.RawSetString("rows", lua.LNumber(m.Dimensions.Rows))
	t.RawSetString("columns", lua.LNumber(m.Dimensions.Columns))
	t.RawSetString("version", lua.LNumber(m.Dimensions.Version))
	t.RawSetString("turn", lua.LNumber(m.CurrentTurn))
	t.RawSetString("current_player", lua.LNumber(m.CurrentPlayer().ID))
	L.SetGlobal("map", t)
}

// pointTable converts p to {row=, column=, elsewhere=}.
func pointTable(L *lua.LState, p world.Point) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("row", lua.LNumber(p.Row))
	t.RawSetString("column", lua.LNumber(p.Column))
	t.RawSetString("elsewhere", lua.LBool(p == world.Elsewhere))
	return t
}

type fields map[string]lua.LValue

// fixtureTable converts f to a Lua table whose "type" field is the fixture's
// element name. Every table carries "id"; other fields depend on the variant.
func fixtureTable(L *lua.LState, f world.Fixture) *lua.LTable {
	typ, extra := describe(f)
	t := L.NewTable()
	t.RawSetString("type", lua.LString(typ))
	t.RawSetString("id", lua.LNumber(f.FixtureID()))
	for k, v := range extra {
		t.RawSetString(k, v)
	}
	return t
}

func str(s string) lua.LValue { return lua.LString(s) }
func num(n int) lua.LValue    { return lua.LNumber(n) }

// describe names f and collects its scalar attributes.
func describe(f world.Fixture) (string, fields) {
	switch v := f.(type) {
	case *world.Forest:
		return "forest", fields{"kind": str(v.Kind), "rows": lua.LBool(v.Rows), "acres": lua.LNumber(v.Acres)}
	case *world.Hill:
		return "hill", nil
	case *world.Oasis:
		return "oasis", nil
	case *world.Ground:
		return "ground", fields{"kind": str(v.Kind), "exposed": lua.LBool(v.Exposed)}
	case *world.Animal:
		return "animal", fields{"kind": str(v.Kind), "talking": lua.LBool(v.Talking),
			"status": str(v.Status), "born": num(v.Born), "count": num(v.Population)}
	case *world.AnimalTracks:
		return "tracks", fields{"kind": str(v.Kind)}
	case *world.Immortal:
		return string(v.Kind), fields{"kind": str(v.Subkind)}
	case *world.Grove:
		typ := "grove"
		if v.Orchard {
			typ = "orchard"
		}
		return typ, fields{"kind": str(v.Kind), "cultivated": lua.LBool(v.Cultivated), "count": num(v.Population)}
	case *world.Meadow:
		typ := "meadow"
		if v.Field {
			typ = "field"
		}
		return typ, fields{"kind": str(v.Kind), "cultivated": lua.LBool(v.Cultivated),
			"status": str(string(v.Status)), "acres": lua.LNumber(v.Acres)}
	case *world.Mine:
		return "mine", fields{"kind": str(v.Kind), "status": str(string(v.Status))}
	case *world.MineralVein:
		return "mineral", fields{"kind": str(v.Kind), "exposed": lua.LBool(v.Exposed), "dc": num(v.DC)}
	case *world.Shrub:
		return "shrub", fields{"kind": str(v.Kind), "count": num(v.Population)}
	case *world.StoneDeposit:
		return "stone", fields{"kind": str(v.Kind), "dc": num(v.DC)}
	case *world.Cache:
		return "cache", fields{"kind": str(v.Kind), "contents": str(v.Contents)}
	case *world.TextFixture:
		return "text", fields{"text": str(v.Text), "turn": num(v.Turn)}
	case *world.Portal:
		return "portal", fields{"world": str(v.World), "row": num(v.Destination.Row), "column": num(v.Destination.Column)}
	case *world.Adventure:
		return "adventure", fields{"brief": str(v.Brief), "full": str(v.Full), "owner": num(v.Owner)}
	case *world.Town:
		return string(v.Class), fields{"status": str(string(v.Status)), "size": str(string(v.Size)),
			"name": str(v.Name), "dc": num(v.DC), "owner": num(v.Owner)}
	case *world.Village:
		return "village", fields{"status": str(string(v.Status)), "name": str(v.Name),
			"race": str(v.Race), "owner": num(v.Owner)}
	case *world.Fortress:
		return "fortress", fields{"name": str(v.Name), "size": str(string(v.Size)),
			"owner": num(v.Owner), "members": num(len(v.Members))}
	case *world.Unit:
		return "unit", fields{"kind": str(v.Kind), "name": str(v.Name),
			"owner": num(v.Owner), "members": num(len(v.Members))}
	default:
		panic(fmt.Sprintf("scripting: unhandled fixture type %T", f))
	}
}
