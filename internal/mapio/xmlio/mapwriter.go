package xmlio

import (
	"context"

	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
)

// writeMap streams m as <view><map>...</map></view>. Each tile is built as
// a small element tree and written before the next one is built.
func writeMap(ctx context.Context, x *xmlWriter, m *world.Map) error {
	view := newElement("view").
		attr("xmlns", stream.Namespace).
		intUnless("current_player", m.CurrentPlayer().ID, world.IndependentPlayerID).
		intUnless("current_turn", m.CurrentTurn, world.UnspecifiedTurn)
	x.open(view, 0)
	x.open(newElement("map").
		intAttr("version", world.CurrentVersion).
		intAttr("rows", m.Dimensions.Rows).
		intAttr("columns", m.Dimensions.Columns), 1)
	for _, p := range m.Players.All() {
		x.element(playerElement(p, false), 2)
	}

	rowOpen, row := false, 0
	for _, p := range m.Locations() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == world.Elsewhere {
			continue
		}
		if !rowOpen || p.Row != row {
			if rowOpen {
				x.close("row", 2)
			}
			rowOpen, row = true, p.Row
			x.open(newElement("row").intAttr("index", row), 2)
		}
		x.element(locationElement(m, p, newElement("tile").intAttr("row", p.Row).intAttr("column", p.Column)), 3)
		if x.err != nil {
			return x.err
		}
	}
	if rowOpen {
		x.close("row", 2)
	}
	if m.HasContent(world.Elsewhere) {
		x.element(locationElement(m, world.Elsewhere, newElement("elsewhere")), 2)
	}
	x.close("map", 1)
	x.close("view", 0)
	return x.err
}

// locationElement fills e with everything at p: bookmarks, mountain,
// rivers, roads, the first ground and forest, then every other fixture in
// map order. Points outside the grid are written like any other tile.
func locationElement(m *world.Map, p world.Point, e *element) *element {
	if t := m.BaseTerrain(p); t != world.NotVisible {
		e.attr("kind", string(t))
	}
	for _, player := range m.Bookmarks(p) {
		e.add(newElement("bookmark").intAttr("player", player))
	}
	if m.IsMountainous(p) {
		e.add(newElement("mountain"))
	}
	for _, r := range m.Rivers(p) {
		e.add(riverElement(r))
	}
	for _, d := range m.Roads(p) {
		e.add(newElement("road").attr("direction", string(d)).intAttr("quality", m.RoadLevel(p, d)))
	}

	fixtures := m.Fixtures(p)
	ground, forest := -1, -1
	for i, f := range fixtures {
		switch f.(type) {
		case *world.Ground:
			if ground < 0 {
				ground = i
			}
		case *world.Forest:
			if forest < 0 {
				forest = i
			}
		}
	}
	if ground >= 0 {
		e.add(fixtureElement(fixtures[ground]))
	}
	if forest >= 0 {
		e.add(fixtureElement(fixtures[forest]))
	}
	for i, f := range fixtures {
		if i == ground || i == forest {
			continue
		}
		e.add(fixtureElement(f))
	}
	return e
}
