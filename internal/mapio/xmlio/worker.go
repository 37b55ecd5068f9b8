package xmlio

import (
	"sort"

	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
)

func readWorker(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	w := world.NewWorker(a.required("name"), a.optional("race", world.DefaultRace), a.id())
	w.Image = a.image()
	w.Portrait = a.portrait()
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
			return w, nil
		case stream.StartElement:
			if !ev.InNamespace() {
				if err := s.skip(ev); err != nil {
					return nil, err
				}
				continue
			}
			switch ev.Tag() {
			case "stats":
				var stats any
				stats, err = readStats(s, ev, "worker")
				if err == nil {
					w.Stats = stats.(*world.WorkerStats)
				}
			case "job":
				var job any
				job, err = readJob(s, ev, "worker")
				if err == nil {
					w.AddJob(job.(*world.Job))
				}
			case "note":
				err = s.readNote(w, ev)
			default:
				err = s.unexpected("worker", ev)
			}
			if err != nil {
				return nil, err
			}
		}
	}
}

func (s *session) readNote(w *world.Worker, start stream.Event) error {
	a := s.attrs(start)
	player := a.requiredInt("player")
	if err := a.Err(); err != nil {
		return err
	}
	text, err := s.text(start)
	if err != nil {
		return err
	}
	if text != "" {
		w.Notes[player] = text
	}
	return nil
}

func readStats(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	st := &world.WorkerStats{
		HP:           a.requiredInt("hp"),
		MaxHP:        a.requiredInt("max"),
		Strength:     a.requiredInt("str"),
		Dexterity:    a.requiredInt("dex"),
		Constitution: a.requiredInt("con"),
		Intelligence: a.requiredInt("int"),
		Wisdom:       a.requiredInt("wis"),
		Charisma:     a.requiredInt("cha"),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return st, s.finish(start)
}

func readJob(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	job := &world.Job{Name: a.required("name"), Level: a.requiredInt("level")}
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
			return job, nil
		case stream.StartElement:
			if ev.InNamespace() && ev.Tag() == "skill" {
				skill, err := readSkill(s, ev, "job")
				if err != nil {
					return nil, err
				}
				job.Skills = append(job.Skills, skill.(*world.Skill))
				continue
			}
			if err := s.unexpected("job", ev); err != nil {
				return nil, err
			}
		}
	}
}

func readSkill(s *session, start stream.Event, _ string) (any, error) {
	a := s.attrs(start)
	skill := &world.Skill{
		Name:  a.required("name"),
		Level: a.requiredInt("level"),
		Hours: a.requiredInt("hours"),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return skill, s.finish(start)
}

func workerElement(w *world.Worker) *element {
	e := newElement("worker").
		attr("name", w.Name).
		attrUnless("race", w.Race, world.DefaultRace).
		intAttr("id", w.ID).
		image(w.Image).
		portrait(w.Portrait)
	if w.Stats != nil {
		e.add(statsElement(w.Stats))
	}
	for _, j := range w.Jobs {
		e.add(jobElement(j))
	}
	players := make([]int, 0, len(w.Notes))
	for p := range w.Notes {
		players = append(players, p)
	}
	sort.Ints(players)
	for _, p := range players {
		e.add(newElement("note").intAttr("player", p).setText(w.Notes[p]))
	}
	return e
}

func statsElement(st *world.WorkerStats) *element {
	return newElement("stats").
		intAttr("hp", st.HP).
		intAttr("max", st.MaxHP).
		intAttr("str", st.Strength).
		intAttr("dex", st.Dexterity).
		intAttr("con", st.Constitution).
		intAttr("int", st.Intelligence).
		intAttr("wis", st.Wisdom).
		intAttr("cha", st.Charisma)
}

// jobElement returns nil for a job with nothing worth recording.
func jobElement(j *world.Job) *element {
	if j.IsEmpty() {
		return nil
	}
	e := newElement("job").attr("name", j.Name).intAttr("level", j.Level)
	for _, sk := range j.Skills {
		e.add(skillElement(sk))
	}
	return e
}

// skillElement returns nil for a skill with neither levels nor hours.
func skillElement(sk *world.Skill) *element {
	if sk.IsEmpty() {
		return nil
	}
	return newElement("skill").
		attr("name", sk.Name).
		intAttr("level", sk.Level).
		intAttr("hours", sk.Hours)
}
