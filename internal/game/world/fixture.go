package world

// NoID is the ID carried by fixtures that are never registered, such as
// animal tracks and free-text notes.
const NoID = -1

// Fixture is anything that can be placed at a location.
//
// The set of implementations is closed; code that needs to act on the
// concrete variant uses an exhaustive type switch.
type Fixture interface {
	// FixtureID returns the fixture's unique ID, or NoID.
	FixtureID() int
	isFixture()
}

// UnitMember is anything a Unit can contain.
type UnitMember interface {
	MemberID() int
	isUnitMember()
}

// FortressMember is anything a Fortress can contain.
type FortressMember interface {
	MemberID() int
	isFortressMember()
}

// Forest is a stand of trees.
type Forest struct {
	Kind  string
	Rows  bool
	Acres float64 // -1 when unknown
	ID    int
	Image string
}

// Hill is a hill.
type Hill struct {
	ID    int
	Image string
}

// Oasis is a desert oasis.
type Oasis struct {
	ID    int
	Image string
}

// Ground is the exposed or covered rock of a location.
type Ground struct {
	Kind    string
	Exposed bool
	ID      int
	Image   string
}

// Default values for Animal attributes that are omitted on write.
const (
	DefaultAnimalStatus     = "wild"
	DefaultAnimalBorn       = -1
	DefaultAnimalPopulation = 1
)

// Animal is a population of a (possibly talking) animal.
type Animal struct {
	Kind       string
	Talking    bool
	Status     string
	Born       int
	Population int
	ID         int
	Image      string
}

// NewAnimal returns an Animal with default status, birth turn and population.
func NewAnimal(kind string, id int) *Animal {
	return &Animal{
		Kind:       kind,
		Status:     DefaultAnimalStatus,
		Born:       DefaultAnimalBorn,
		Population: DefaultAnimalPopulation,
		ID:         id,
	}
}

// AnimalTracks are traces of an animal that has moved on.
type AnimalTracks struct {
	Kind  string
	Image string
}

// Immortal is one of the named immortal creatures.
type Immortal struct {
	Kind ImmortalKind
	// Subkind is only meaningful for kinded immortals (centaur, dragon, fairy, giant).
	Subkind string
	ID      int
	Image   string
}

// ImmortalKind names an immortal creature and doubles as its XML tag.
type ImmortalKind string

// Immortal creatures with no further attributes.
const (
	Sphinx      ImmortalKind = "sphinx"
	Djinn       ImmortalKind = "djinn"
	Griffin     ImmortalKind = "griffin"
	Minotaur    ImmortalKind = "minotaur"
	Ogre        ImmortalKind = "ogre"
	Phoenix     ImmortalKind = "phoenix"
	Simurgh     ImmortalKind = "simurgh"
	Troll       ImmortalKind = "troll"
	Snowbird    ImmortalKind = "snowbird"
	Thunderbird ImmortalKind = "thunderbird"
	Pegasus     ImmortalKind = "pegasus"
	Unicorn     ImmortalKind = "unicorn"
	Kraken      ImmortalKind = "kraken"
)

// Immortal creatures that carry a kind attribute.
const (
	Centaur ImmortalKind = "centaur"
	Dragon  ImmortalKind = "dragon"
	Fairy   ImmortalKind = "fairy"
	Giant   ImmortalKind = "giant"
)

// SimpleImmortals lists the immortals that may also be written as
// <animal kind="..."/>.
var SimpleImmortals = []ImmortalKind{
	Sphinx, Djinn, Griffin, Minotaur, Ogre, Phoenix, Simurgh,
	Troll, Snowbird, Thunderbird, Pegasus, Unicorn, Kraken,
}

// KindedImmortals lists the immortals that carry a subkind.
var KindedImmortals = []ImmortalKind{Centaur, Dragon, Fairy, Giant}

// IsSimpleImmortal reports whether kind names a simple immortal.
func IsSimpleImmortal(kind string) bool {
	for _, k := range SimpleImmortals {
		if string(k) == kind {
			return true
		}
	}
	return false
}

// IsKinded reports whether k carries a subkind.
func (k ImmortalKind) IsKinded() bool {
	for _, v := range KindedImmortals {
		if v == k {
			return true
		}
	}
	return false
}

// Grove is a grove or, when Orchard is set, an orchard.
type Grove struct {
	Orchard    bool
	Cultivated bool
	Kind       string
	Population int // -1 when unknown
	ID         int
	Image      string
}

// Meadow is a meadow or, when Field is set, a field.
type Meadow struct {
	Field      bool
	Cultivated bool
	Kind       string
	Status     FieldStatus
	Acres      float64 // -1 when unknown
	ID         int
	Image      string
}

// Mine is a mine.
type Mine struct {
	Kind   string
	Status TownStatus
	ID     int
	Image  string
}

// MineralVein is a vein of ore or gems.
type MineralVein struct {
	Kind    string
	Exposed bool
	DC      int
	ID      int
	Image   string
}

// Shrub is a patch of shrubs.
type Shrub struct {
	Kind       string
	Population int // -1 when unknown
	ID         int
	Image      string
}

// StoneDeposit is a deposit of building stone.
type StoneDeposit struct {
	Kind  string
	DC    int
	ID    int
	Image string
}

// Cache is a hidden cache of goods.
type Cache struct {
	Kind     string
	Contents string
	ID       int
	Image    string
}

// TextFixture is a free-text note attached to a location.
type TextFixture struct {
	Text  string
	Turn  int // -1 when unspecified
	Image string
}

// Portal leads to a location in another world.
type Portal struct {
	World       string
	Destination Point
	ID          int
	Image       string
}

// Adventure is a hook for an adventure, optionally claimed by a player.
type Adventure struct {
	Brief string
	Full  string
	Owner int
	ID    int
	Image string
}

func (f *Forest) FixtureID() int       { return f.ID }
func (f *Hill) FixtureID() int         { return f.ID }
func (f *Oasis) FixtureID() int        { return f.ID }
func (f *Ground) FixtureID() int       { return f.ID }
func (f *Animal) FixtureID() int       { return f.ID }
func (f *AnimalTracks) FixtureID() int { return NoID }
func (f *Immortal) FixtureID() int     { return f.ID }
func (f *Grove) FixtureID() int        { return f.ID }
func (f *Meadow) FixtureID() int       { return f.ID }
func (f *Mine) FixtureID() int         { return f.ID }
func (f *MineralVein) FixtureID() int  { return f.ID }
func (f *Shrub) FixtureID() int        { return f.ID }
func (f *StoneDeposit) FixtureID() int { return f.ID }
func (f *Cache) FixtureID() int        { return f.ID }
func (f *TextFixture) FixtureID() int  { return NoID }
func (f *Portal) FixtureID() int       { return f.ID }
func (f *Adventure) FixtureID() int    { return f.ID }

func (*Forest) isFixture()       {}
func (*Hill) isFixture()         {}
func (*Oasis) isFixture()        {}
func (*Ground) isFixture()       {}
func (*Animal) isFixture()       {}
func (*AnimalTracks) isFixture() {}
func (*Immortal) isFixture()     {}
func (*Grove) isFixture()        {}
func (*Meadow) isFixture()       {}
func (*Mine) isFixture()         {}
func (*MineralVein) isFixture()  {}
func (*Shrub) isFixture()        {}
func (*StoneDeposit) isFixture() {}
func (*Cache) isFixture()        {}
func (*TextFixture) isFixture()  {}
func (*Portal) isFixture()       {}
func (*Adventure) isFixture()    {}

func (a *Animal) MemberID() int { return a.ID }
func (*Animal) isUnitMember()   {}
