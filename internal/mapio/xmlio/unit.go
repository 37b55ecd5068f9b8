package xmlio

import (
	"strings"

	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
)

// readUnit reads <unit>. Text directly inside the unit is taken as orders
// for an unspecified turn, after any explicit orders for that turn.
func readUnit(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	u := world.NewUnit(a.owner(), a.deprecated("kind", "type"), a.soft("name", ""), a.id())
	u.Image = a.image()
	u.Portrait = a.portrait()
	if err := a.Err(); err != nil {
		return nil, err
	}
	var loose strings.Builder
	for {
		ev, err := s.next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case stream.Text:
			loose.WriteString(ev.Text)
		case stream.EndElement:
			if text := strings.TrimSpace(loose.String()); text != "" {
				if explicit := u.Orders[world.UnspecifiedTurn]; explicit != "" {
					text = explicit + "\n" + text
				}
				u.SetOrders(world.UnspecifiedTurn, text)
			}
			return u, nil
		case stream.StartElement:
			if !ev.InNamespace() {
				if err := s.skip(ev); err != nil {
					return nil, err
				}
				continue
			}
			switch tag := ev.Tag(); tag {
			case "orders", "results":
				turn, text, err := s.turnText(ev)
				if err != nil {
					return nil, err
				}
				if tag == "orders" {
					u.SetOrders(turn, text)
				} else {
					u.SetResults(turn, text)
				}
			default:
				read, ok := s.tables.unitMembers[tag]
				if !ok {
					if err := s.unexpected("unit", ev); err != nil {
						return nil, err
					}
					continue
				}
				member, err := read(s, ev, "unit")
				if err != nil {
					return nil, err
				}
				m, ok := member.(world.UnitMember)
				if !ok {
					// Tracks and immortals share <animal> but cannot join a unit.
					if err := s.unwanted("unit", ev, "not a unit member"); err != nil {
						return nil, err
					}
					continue
				}
				u.AddMember(m)
			}
		}
	}
}

// turnText reads <orders> or <results>: an optional turn and text content.
func (s *session) turnText(start stream.Event) (int, string, error) {
	a := s.attrs(start)
	turn := a.optionalInt("turn", world.UnspecifiedTurn)
	if err := a.Err(); err != nil {
		return 0, "", err
	}
	text, err := s.text(start)
	return turn, text, err
}

func unitElement(u *world.Unit) *element {
	e := newElement("unit").
		intAttr("owner", u.Owner).
		attr("kind", u.Kind).
		attr("name", u.Name).
		intAttr("id", u.ID).
		image(u.Image).
		portrait(u.Portrait)
	for _, turn := range world.SortedTurns(u.Orders) {
		e.add(newElement("orders").intUnless("turn", turn, world.UnspecifiedTurn).setText(u.Orders[turn]))
	}
	for _, turn := range world.SortedTurns(u.Results) {
		e.add(newElement("results").intUnless("turn", turn, world.UnspecifiedTurn).setText(u.Results[turn]))
	}
	for _, m := range u.Members {
		e.add(unitMemberElement(m))
	}
	return e
}
