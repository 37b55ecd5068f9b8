package xmlio

import (
	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
)

func readForest(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	f := &world.Forest{
		Kind:  a.required("kind"),
		Rows:  a.optionalBool("rows", false),
		Acres: a.optionalFloat("acres", -1),
		ID:    a.id(),
		Image: a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return f, s.finish(start)
}

func readHill(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	h := &world.Hill{ID: a.id(), Image: a.image()}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return h, s.finish(start)
}

func readOasis(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	o := &world.Oasis{ID: a.id(), Image: a.image()}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return o, s.finish(start)
}

func readGround(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	g := &world.Ground{
		Kind:    a.deprecated("kind", "ground"),
		Exposed: a.requiredBool("exposed"),
		ID:      a.id(),
		Image:   a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return g, s.finish(start)
}

func forestElement(f *world.Forest) *element {
	return newElement("forest").
		attr("kind", f.Kind).
		flag("rows", f.Rows).
		floatUnless("acres", f.Acres, -1).
		intAttr("id", f.ID).
		image(f.Image)
}

func groundElement(g *world.Ground) *element {
	return newElement("ground").
		attr("kind", g.Kind).
		boolAttr("exposed", g.Exposed).
		intAttr("id", g.ID).
		image(g.Image)
}
