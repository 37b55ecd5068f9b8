package world

import "sort"

// TownClass distinguishes the members of the town family that share a shape.
type TownClass string

// Town classes; each doubles as its XML tag.
const (
	ClassTown          TownClass = "town"
	ClassCity          TownClass = "city"
	ClassFortification TownClass = "fortification"
)

// Town is a town, city, or fortification.
type Town struct {
	Class      TownClass
	Status     TownStatus
	Size       TownSize
	Name       string
	DC         int
	Owner      int
	Population *CommunityStats
	ID         int
	Image      string
	Portrait   string
}

// Village is a village of a single race.
type Village struct {
	Status     TownStatus
	Name       string
	Race       string
	Owner      int
	Population *CommunityStats
	ID         int
	Image      string
	Portrait   string
}

// Fortress is a player's stronghold. Members holds the units, resources and
// implements stationed in it, in document order.
type Fortress struct {
	Owner    int
	Name     string
	Size     TownSize
	Members  []FortressMember
	ID       int
	Image    string
	Portrait string
}

func (t *Town) FixtureID() int     { return t.ID }
func (v *Village) FixtureID() int  { return v.ID }
func (f *Fortress) FixtureID() int { return f.ID }

func (*Town) isFixture()     {}
func (*Village) isFixture()  {}
func (*Fortress) isFixture() {}

// CommunityStats describes the population and economy of a town.
type CommunityStats struct {
	Population         int
	HighestSkillLevels map[string]int
	// WorkedFields holds the IDs of fields, mines and the like the town works.
	WorkedFields      []int
	YearlyProduction  []*ResourcePile
	YearlyConsumption []*ResourcePile
}

// NewCommunityStats returns stats with the given population and no expertise.
func NewCommunityStats(population int) *CommunityStats {
	return &CommunityStats{
		Population:         population,
		HighestSkillLevels: make(map[string]int),
	}
}

// SetSkillLevel records the highest level any resident has in skill.
// A level of zero removes the entry.
func (c *CommunityStats) SetSkillLevel(skill string, level int) {
	if level == 0 {
		delete(c.HighestSkillLevels, skill)
		return
	}
	c.HighestSkillLevels[skill] = level
}

// AddWorkedField records that the town works the fixture with id.
//
// Postcondition: WorkedFields stays sorted and free of duplicates.
func (c *CommunityStats) AddWorkedField(id int) {
	i := sort.SearchInts(c.WorkedFields, id)
	if i < len(c.WorkedFields) && c.WorkedFields[i] == id {
		return
	}
	c.WorkedFields = append(c.WorkedFields, 0)
	copy(c.WorkedFields[i+1:], c.WorkedFields[i:])
	c.WorkedFields[i] = id
}

// Skills returns the expertise skill names in sorted order.
func (c *CommunityStats) Skills() []string {
	out := make([]string, 0, len(c.HighestSkillLevels))
	for s := range c.HighestSkillLevels {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
