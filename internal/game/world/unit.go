package world

import "sort"

// UnspecifiedTurn keys orders and results that were not tied to a turn.
const UnspecifiedTurn = -1

// Unit is a group of workers and equipment owned by a player.
type Unit struct {
	Owner    int
	Kind     string
	Name     string
	ID       int
	Orders   map[int]string
	Results  map[int]string
	Members  []UnitMember
	Image    string
	Portrait string
}

// NewUnit returns a Unit with no orders, results or members.
func NewUnit(owner int, kind, name string, id int) *Unit {
	return &Unit{
		Owner:   owner,
		Kind:    kind,
		Name:    name,
		ID:      id,
		Orders:  make(map[int]string),
		Results: make(map[int]string),
	}
}

// SetOrders records orders for turn; empty text removes them.
func (u *Unit) SetOrders(turn int, text string) {
	if text == "" {
		delete(u.Orders, turn)
		return
	}
	u.Orders[turn] = text
}

// SetResults records results for turn; empty text removes them.
func (u *Unit) SetResults(turn int, text string) {
	if text == "" {
		delete(u.Results, turn)
		return
	}
	u.Results[turn] = text
}

// AddMember appends m to the unit.
func (u *Unit) AddMember(m UnitMember) {
	u.Members = append(u.Members, m)
}

func (u *Unit) FixtureID() int  { return u.ID }
func (u *Unit) MemberID() int   { return u.ID }
func (*Unit) isFixture()        {}
func (*Unit) isFortressMember() {}

// SortedTurns returns the keys of m in ascending order.
func SortedTurns(m map[int]string) []int {
	out := make([]int, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}

// DefaultRace is the race assumed for workers with none recorded.
const DefaultRace = "human"

// Worker is a named member of a unit.
type Worker struct {
	Name     string
	Race     string
	ID       int
	Stats    *WorkerStats
	Jobs     []*Job
	Notes    map[int]string
	Image    string
	Portrait string
}

// NewWorker returns a Worker with no stats, jobs or notes.
func NewWorker(name, race string, id int) *Worker {
	return &Worker{
		Name:  name,
		Race:  race,
		ID:    id,
		Notes: make(map[int]string),
	}
}

// AddJob appends j to the worker's jobs.
func (w *Worker) AddJob(j *Job) {
	w.Jobs = append(w.Jobs, j)
}

// Job returns the job named name, if the worker has it.
func (w *Worker) Job(name string) (*Job, bool) {
	for _, j := range w.Jobs {
		if j.Name == name {
			return j, true
		}
	}
	return nil, false
}

// DropEmptyJobs removes skills with nothing recorded, then jobs left with
// nothing worth persisting, and reports how many jobs were removed.
//
// Postcondition: no remaining job or skill IsEmpty; a worker or job left
// with none has a nil slice.
func (w *Worker) DropEmptyJobs() int {
	var kept []*Job
	for _, j := range w.Jobs {
		var skills []*Skill
		for _, s := range j.Skills {
			if !s.IsEmpty() {
				skills = append(skills, s)
			}
		}
		j.Skills = skills
		if !j.IsEmpty() {
			kept = append(kept, j)
		}
	}
	removed := len(w.Jobs) - len(kept)
	w.Jobs = kept
	return removed
}

func (w *Worker) MemberID() int { return w.ID }
func (*Worker) isUnitMember()   {}

// WorkerStats are a worker's hit points and six ability scores.
type WorkerStats struct {
	HP           int
	MaxHP        int
	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int
}

// Job is a profession a worker has trained in.
type Job struct {
	Name   string
	Level  int
	Skills []*Skill
}

// IsEmpty reports whether j carries no information worth persisting.
func (j *Job) IsEmpty() bool {
	if j.Level != 0 {
		return false
	}
	for _, s := range j.Skills {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}

// Skill is a specialty within a job.
type Skill struct {
	Name  string
	Level int
	Hours int
}

// IsEmpty reports whether s has neither levels nor accumulated hours.
func (s *Skill) IsEmpty() bool {
	return s.Level == 0 && s.Hours == 0
}

// Quantity is an amount with its unit of measure.
type Quantity struct {
	Number float64
	Units  string
}

// ResourcePile is a quantity of some resource.
type ResourcePile struct {
	Kind     string
	Contents string
	Quantity Quantity
	Created  int // turn, -1 when unknown
	ID       int
	Image    string
}

func (r *ResourcePile) MemberID() int   { return r.ID }
func (*ResourcePile) isUnitMember()     {}
func (*ResourcePile) isFortressMember() {}

// DefaultImplementCount is the count assumed when none is recorded.
const DefaultImplementCount = 1

// Implement is a piece of equipment.
type Implement struct {
	Kind  string
	Count int
	ID    int
	Image string
}

func (i *Implement) MemberID() int   { return i.ID }
func (*Implement) isUnitMember()     {}
func (*Implement) isFortressMember() {}
