package xmlio

import (
	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
)

// readTown reads the town, city and fortification tags, which share a shape.
func readTown(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	t := &world.Town{
		Class:    world.TownClass(start.Tag()),
		Status:   enum(a, "status", world.ParseTownStatus),
		Size:     enum(a, "size", world.ParseTownSize),
		Name:     a.soft("name", ""),
		DC:       a.optionalInt("dc", 0),
		ID:       a.id(),
		Owner:    a.owner(),
		Image:    a.image(),
		Portrait: a.portrait(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	pop, err := s.optionalPopulation(start)
	if err != nil {
		return nil, err
	}
	t.Population = pop
	return t, nil
}

func readVillage(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	v := &world.Village{
		Status:   enum(a, "status", world.ParseTownStatus),
		Name:     a.soft("name", ""),
		Race:     a.optional("race", world.DefaultRace),
		ID:       a.id(),
		Owner:    a.owner(),
		Image:    a.image(),
		Portrait: a.portrait(),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	pop, err := s.optionalPopulation(start)
	if err != nil {
		return nil, err
	}
	v.Population = pop
	return v, nil
}

// optionalPopulation reads the children of a town or village, which may
// include at most one <population>.
func (s *session) optionalPopulation(start stream.Event) (*world.CommunityStats, error) {
	var pop *world.CommunityStats
	for {
		ev, err := s.next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case stream.EndElement:
			return pop, nil
		case stream.StartElement:
			if ev.InNamespace() && ev.Tag() == "population" && pop == nil {
				stats, err := readPopulation(s, ev, start.Tag())
				if err != nil {
					return nil, err
				}
				pop = stats.(*world.CommunityStats)
				continue
			}
			if err := s.unexpected(start.Tag(), ev); err != nil {
				return nil, err
			}
		}
	}
}

func readFortress(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	f := &world.Fortress{
		Owner:    a.owner(),
		Name:     a.soft("name", ""),
		ID:       a.id(),
		Image:    a.image(),
		Portrait: a.portrait(),
	}
	f.Size = world.Small
	if a.has("size") {
		f.Size = enum(a, "size", world.ParseTownSize)
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	for {
		ev, err := s.next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case stream.EndElement:
			return f, nil
		case stream.StartElement:
			tag := ev.Tag()
			if !ev.InNamespace() {
				if err := s.skip(ev); err != nil {
					return nil, err
				}
				continue
			}
			switch tag {
			case "orders", "results", "science":
				if err := s.warner.Handle(&warning.UnsupportedTagError{Parent: "fortress", Tag: tag, At: ev.Line}); err != nil {
					return nil, err
				}
				if err := s.skip(ev); err != nil {
					return nil, err
				}
				continue
			}
			read, ok := s.tables.fortressMembers[tag]
			if !ok {
				if err := s.unexpected("fortress", ev); err != nil {
					return nil, err
				}
				continue
			}
			member, err := read(s, ev, "fortress")
			if err != nil {
				return nil, err
			}
			f.Members = append(f.Members, member.(world.FortressMember))
		}
	}
}

// readPopulation reads <population> with its expertise, claims, production
// and consumption.
func readPopulation(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	stats := world.NewCommunityStats(a.requiredInt("size"))
	if err := a.Err(); err != nil {
		return nil, err
	}
	for {
		ev, err := s.next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case stream.EndElement:
			return stats, nil
		case stream.StartElement:
			if !ev.InNamespace() {
				if err := s.skip(ev); err != nil {
					return nil, err
				}
				continue
			}
			switch ev.Tag() {
			case "expertise":
				ea := s.attrs(ev)
				skill, level := ea.required("skill"), ea.requiredInt("level")
				if err := ea.Err(); err != nil {
					return nil, err
				}
				stats.SetSkillLevel(skill, level)
				err = s.finish(ev)
			case "claim":
				ca := s.attrs(ev)
				id := ca.requiredInt("resource")
				if err := ca.Err(); err != nil {
					return nil, err
				}
				stats.AddWorkedField(id)
				err = s.finish(ev)
			case "production":
				stats.YearlyProduction, err = s.resourceList(ev)
			case "consumption":
				stats.YearlyConsumption, err = s.resourceList(ev)
			default:
				err = s.unexpected("population", ev)
			}
			if err != nil {
				return nil, err
			}
		}
	}
}

// resourceList reads the <resource> children of <production> or <consumption>.
func (s *session) resourceList(start stream.Event) ([]*world.ResourcePile, error) {
	var out []*world.ResourcePile
	for {
		ev, err := s.next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case stream.EndElement:
			return out, nil
		case stream.StartElement:
			if ev.InNamespace() && ev.Tag() == "resource" {
				r, err := readResource(s, ev, start.Tag())
				if err != nil {
					return nil, err
				}
				out = append(out, r.(*world.ResourcePile))
				continue
			}
			if err := s.unexpected(start.Tag(), ev); err != nil {
				return nil, err
			}
		}
	}
}

func townElement(t *world.Town) *element {
	return newElement(string(t.Class)).
		attr("status", string(t.Status)).
		attr("size", string(t.Size)).
		attr("name", t.Name).
		intUnless("dc", t.DC, 0).
		intAttr("id", t.ID).
		intAttr("owner", t.Owner).
		image(t.Image).
		portrait(t.Portrait).
		add(populationElement(t.Population))
}

func villageElement(v *world.Village) *element {
	return newElement("village").
		attr("status", string(v.Status)).
		attr("name", v.Name).
		attrUnless("race", v.Race, world.DefaultRace).
		intAttr("id", v.ID).
		intAttr("owner", v.Owner).
		image(v.Image).
		portrait(v.Portrait).
		add(populationElement(v.Population))
}

func fortressElement(f *world.Fortress) *element {
	e := newElement("fortress").
		intAttr("owner", f.Owner).
		attr("name", f.Name).
		attrUnless("size", string(f.Size), string(world.Small)).
		intAttr("id", f.ID).
		image(f.Image).
		portrait(f.Portrait)
	for _, m := range f.Members {
		e.add(fortressMemberElement(m))
	}
	return e
}

func populationElement(c *world.CommunityStats) *element {
	if c == nil {
		return nil
	}
	e := newElement("population").intAttr("size", c.Population)
	for _, skill := range c.Skills() {
		e.add(newElement("expertise").attr("skill", skill).intAttr("level", c.HighestSkillLevels[skill]))
	}
	for _, id := range c.WorkedFields {
		e.add(newElement("claim").intAttr("resource", id))
	}
	if len(c.YearlyProduction) > 0 {
		e.add(resourceListElement("production", c.YearlyProduction))
	}
	if len(c.YearlyConsumption) > 0 {
		e.add(resourceListElement("consumption", c.YearlyConsumption))
	}
	return e
}

func resourceListElement(tag string, piles []*world.ResourcePile) *element {
	e := newElement(tag)
	for _, r := range piles {
		e.add(resourceElement(r))
	}
	return e
}
