package xmlio

import (
	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
)

func readGrove(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	g := &world.Grove{
		Orchard:    start.Tag() == "orchard",
		Cultivated: a.cultivated(),
		Kind:       a.deprecated("kind", "tree"),
		Population: a.optionalInt("count", -1),
		ID:         a.id(),
		Image:      a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return g, s.finish(start)
}

// readMeadow reads <meadow> and <field>. A missing status is derived from
// the fixture's ID so that the same document always yields the same map.
func readMeadow(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	m := &world.Meadow{
		Field:      start.Tag() == "field",
		Kind:       a.required("kind"),
		Cultivated: a.requiredBool("cultivated"),
		Acres:      a.optionalFloat("acres", -1),
		ID:         a.id(),
		Image:      a.image(),
	}
	if a.has("status") {
		m.Status = enum(a, "status", world.ParseFieldStatus)
	} else {
		a.handle(&warning.MissingPropertyError{Tag: start.Tag(), Property: "status", At: start.Line})
		m.Status = world.FieldStatusFor(m.ID)
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return m, s.finish(start)
}

func readMine(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	m := &world.Mine{
		Kind:   a.required("kind"),
		Status: enum(a, "status", world.ParseTownStatus),
		ID:     a.id(),
		Image:  a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return m, s.finish(start)
}

func readMineral(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	m := &world.MineralVein{
		Kind:    a.deprecated("kind", "mineral"),
		Exposed: a.requiredBool("exposed"),
		DC:      a.optionalInt("dc", 0),
		ID:      a.id(),
		Image:   a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return m, s.finish(start)
}

func readShrub(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	sh := &world.Shrub{
		Kind:       a.deprecated("kind", "shrub"),
		Population: a.optionalInt("count", -1),
		ID:         a.id(),
		Image:      a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return sh, s.finish(start)
}

func readStone(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	st := &world.StoneDeposit{
		Kind:  a.deprecated("kind", "stone"),
		DC:    a.optionalInt("dc", 0),
		ID:    a.id(),
		Image: a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return st, s.finish(start)
}

func readCache(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	c := &world.Cache{
		Kind:     a.required("kind"),
		Contents: a.required("contents"),
		ID:       a.id(),
		Image:    a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return c, s.finish(start)
}

func groveElement(g *world.Grove) *element {
	tag := "grove"
	if g.Orchard {
		tag = "orchard"
	}
	return newElement(tag).
		boolAttr("cultivated", g.Cultivated).
		attr("kind", g.Kind).
		intUnless("count", g.Population, -1).
		intAttr("id", g.ID).
		image(g.Image)
}

func meadowElement(m *world.Meadow) *element {
	tag := "meadow"
	if m.Field {
		tag = "field"
	}
	return newElement(tag).
		attr("kind", m.Kind).
		boolAttr("cultivated", m.Cultivated).
		attr("status", string(m.Status)).
		floatUnless("acres", m.Acres, -1).
		intAttr("id", m.ID).
		image(m.Image)
}

func mineElement(m *world.Mine) *element {
	return newElement("mine").
		attr("kind", m.Kind).
		attr("status", string(m.Status)).
		intAttr("id", m.ID).
		image(m.Image)
}

func mineralElement(m *world.MineralVein) *element {
	return newElement("mineral").
		attr("kind", m.Kind).
		boolAttr("exposed", m.Exposed).
		intUnless("dc", m.DC, 0).
		intAttr("id", m.ID).
		image(m.Image)
}

func shrubElement(sh *world.Shrub) *element {
	return newElement("shrub").
		attr("kind", sh.Kind).
		intUnless("count", sh.Population, -1).
		intAttr("id", sh.ID).
		image(sh.Image)
}

func stoneElement(st *world.StoneDeposit) *element {
	return newElement("stone").
		attr("kind", st.Kind).
		intUnless("dc", st.DC, 0).
		intAttr("id", st.ID).
		image(st.Image)
}

func cacheElement(c *world.Cache) *element {
	return newElement("cache").
		attr("kind", c.Kind).
		attr("contents", c.Contents).
		intAttr("id", c.ID).
		image(c.Image)
}
