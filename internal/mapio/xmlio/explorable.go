package xmlio

import (
	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
)

func readText(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	t := &world.TextFixture{
		Turn:  a.optionalInt("turn", world.UnspecifiedTurn),
		Image: a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	text, err := s.text(start)
	if err != nil {
		return nil, err
	}
	t.Text = text
	return t, nil
}

func readPortal(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	p := &world.Portal{
		World: a.required("world"),
		Destination: world.Point{
			Row:    a.requiredInt("row"),
			Column: a.requiredInt("column"),
		},
		ID:    a.id(),
		Image: a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return p, s.finish(start)
}

func readAdventure(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	adv := &world.Adventure{
		Brief: a.optional("brief", ""),
		Full:  a.optional("full", ""),
		Owner: a.optionalInt("owner", world.IndependentPlayerID),
		ID:    a.id(),
		Image: a.image(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return adv, s.finish(start)
}

func textElement(t *world.TextFixture) *element {
	return newElement("text").
		intUnless("turn", t.Turn, world.UnspecifiedTurn).
		image(t.Image).
		setText(t.Text)
}

func portalElement(p *world.Portal) *element {
	return newElement("portal").
		attr("world", p.World).
		intAttr("row", p.Destination.Row).
		intAttr("column", p.Destination.Column).
		intAttr("id", p.ID).
		image(p.Image)
}

func adventureElement(adv *world.Adventure) *element {
	return newElement("adventure").
		attrUnless("brief", adv.Brief, "").
		attrUnless("full", adv.Full, "").
		intUnless("owner", adv.Owner, world.IndependentPlayerID).
		intAttr("id", adv.ID).
		image(adv.Image)
}
