package xmlio

import (
	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
)

// readAnimal reads <animal>. The same tag carries animal tracks (a
// "traces" attribute that is empty or true) and, for historical reasons,
// the simple immortals.
func readAnimal(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	kind := a.required("kind")
	if err := a.Err(); err != nil {
		return nil, err
	}
	if traces, ok := start.Attr("traces"); ok && (traces == "" || a.parseBool("traces", traces)) {
		if err := a.Err(); err != nil {
			return nil, err
		}
		return &world.AnimalTracks{Kind: kind, Image: a.image()}, s.finish(start)
	}
	if world.IsSimpleImmortal(kind) {
		im := &world.Immortal{Kind: world.ImmortalKind(kind), ID: a.id(), Image: a.image()}
		if err := a.Err(); err != nil {
			return nil, err
		}
		return im, s.finish(start)
	}
	animal := &world.Animal{
		Kind:       kind,
		Talking:    a.optionalBool("talking", false),
		Status:     a.optional("status", world.DefaultAnimalStatus),
		Born:       a.optionalInt("born", world.DefaultAnimalBorn),
		Population: a.optionalInt("count", world.DefaultAnimalPopulation),
		ID:         a.id(),
		Image:      a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return animal, s.finish(start)
}

func readSimpleImmortal(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	im := &world.Immortal{Kind: world.ImmortalKind(start.Tag()), ID: a.id(), Image: a.image()}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return im, s.finish(start)
}

func readKindedImmortal(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	im := &world.Immortal{
		Kind:    world.ImmortalKind(start.Tag()),
		Subkind: a.required("kind"),
		ID:      a.id(),
		Image:   a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return im, s.finish(start)
}

func animalElement(an *world.Animal) *element {
	return newElement("animal").
		attr("kind", an.Kind).
		flag("talking", an.Talking).
		attrUnless("status", an.Status, world.DefaultAnimalStatus).
		intUnless("born", an.Born, world.DefaultAnimalBorn).
		intUnless("count", an.Population, world.DefaultAnimalPopulation).
		intAttr("id", an.ID).
		image(an.Image)
}

func tracksElement(t *world.AnimalTracks) *element {
	return newElement("animal").
		attr("kind", t.Kind).
		boolAttr("traces", true).
		image(t.Image)
}

func immortalElement(im *world.Immortal) *element {
	e := newElement(string(im.Kind))
	if im.Kind.IsKinded() {
		e.attr("kind", im.Subkind)
	}
	return e.intAttr("id", im.ID).image(im.Image)
}
