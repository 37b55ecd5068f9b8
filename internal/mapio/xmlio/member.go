package xmlio

import (
	"fmt"

	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
)

func readResource(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	r := &world.ResourcePile{
		ID:       a.id(),
		Kind:     a.required("kind"),
		Contents: a.required("contents"),
		Quantity: world.Quantity{
			Number: a.requiredFloat("quantity"),
			Units:  a.optional("unit", ""),
		},
		Created: a.optionalInt("created", -1),
		Image:   a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return r, s.finish(start)
}

func readImplement(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	im := &world.Implement{
		Kind:  a.required("kind"),
		ID:    a.id(),
		Count: a.optionalInt("count", world.DefaultImplementCount),
		Image: a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return im, s.finish(start)
}

// readRiver reads <river direction> and <lake>.
func readRiver(s *session, start stream.Event, _ string) (any, error) {
	river := world.Lake
	if start.Tag() == "river" {
		a := s.attrs(start)
		river = enum(a, "direction", world.ParseRiver)
		if err := a.Err(); err != nil {
			return nil, err
		}
	}
	return river, s.finish(start)
}

func readPlayer(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	p := world.Player{
		ID:       a.requiredInt("number"),
		Name:     a.required("code_name"),
		Country:  a.optional("country", ""),
		Portrait: a.portrait(),
		Current:  a.optionalBool("current", false),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return p, s.finish(start)
}

func resourceElement(r *world.ResourcePile) *element {
	return newElement("resource").
		intAttr("id", r.ID).
		attr("kind", r.Kind).
		attr("contents", r.Contents).
		floatAttr("quantity", r.Quantity.Number).
		attrUnless("unit", r.Quantity.Units, "").
		intUnless("created", r.Created, -1).
		image(r.Image)
}

func implementElement(im *world.Implement) *element {
	return newElement("implement").
		attr("kind", im.Kind).
		intAttr("id", im.ID).
		intUnless("count", im.Count, world.DefaultImplementCount).
		image(im.Image)
}

func riverElement(r world.River) *element {
	if r == world.Lake {
		return newElement("lake")
	}
	return newElement("river").attr("direction", string(r))
}

// playerElement writes p. The current flag is only written for
// free-standing players; in a map the view records the current player.
func playerElement(p world.Player, withCurrent bool) *element {
	return newElement("player").
		intAttr("number", p.ID).
		attr("code_name", p.Name).
		attrUnless("country", p.Country, "").
		portrait(p.Portrait).
		flag("current", withCurrent && p.Current)
}

func unitMemberElement(m world.UnitMember) *element {
	switch m := m.(type) {
	case *world.Worker:
		return workerElement(m)
	case *world.Animal:
		return animalElement(m)
	case *world.ResourcePile:
		return resourceElement(m)
	case *world.Implement:
		return implementElement(m)
	default:
		panic(fmt.Sprintf("xmlio: unhandled unit member %T", m))
	}
}

func fortressMemberElement(m world.FortressMember) *element {
	switch m := m.(type) {
	case *world.Unit:
		return unitElement(m)
	case *world.ResourcePile:
		return resourceElement(m)
	case *world.Implement:
		return implementElement(m)
	default:
		panic(fmt.Sprintf("xmlio: unhandled fortress member %T", m))
	}
}
