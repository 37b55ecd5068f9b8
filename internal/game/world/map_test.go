package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMap() *Map {
	return NewMap(Dimensions{Rows: 3, Columns: 3, Version: CurrentVersion}, 0)
}

func TestDimensions_Contains(t *testing.T) {
	d := Dimensions{Rows: 2, Columns: 3}
	assert.True(t, d.Contains(Point{Row: 1, Column: 2}))
	assert.False(t, d.Contains(Point{Row: 2, Column: 0}))
	assert.False(t, d.Contains(Elsewhere))
}

func TestMap_TerrainAndFlags(t *testing.T) {
	m := newTestMap()
	p := Point{Row: 1, Column: 1}
	assert.False(t, m.HasContent(p))

	m.SetBaseTerrain(p, Desert)
	m.SetBaseTerrain(p, Tundra)
	assert.Equal(t, Tundra, m.BaseTerrain(p))
	m.SetMountainous(p, true)
	assert.True(t, m.IsMountainous(p))
	assert.True(t, m.HasContent(p))

	m.SetBaseTerrain(p, NotVisible)
	m.SetMountainous(p, false)
	assert.False(t, m.HasContent(p))
}

func TestMap_RiversAndRoadsAreCanonicallyOrdered(t *testing.T) {
	m := newTestMap()
	p := Point{}
	m.AddRivers(p, Lake, RiverWest, RiverNorth, Lake)
	assert.Equal(t, []River{RiverNorth, RiverWest, Lake}, m.Rivers(p))

	m.SetRoadLevel(p, West, 2)
	m.SetRoadLevel(p, Northeast, 1)
	assert.Equal(t, []Direction{Northeast, West}, m.Roads(p))
	assert.Equal(t, 2, m.RoadLevel(p, West))

	m.SetRoadLevel(p, West, 0)
	assert.Equal(t, []Direction{Northeast}, m.Roads(p))
}

func TestMap_Bookmarks(t *testing.T) {
	m := newTestMap()
	p := Point{Row: 2, Column: 0}
	m.AddBookmark(p, 4)
	m.AddBookmark(p, 1)
	m.AddBookmark(p, 4)
	assert.Equal(t, []int{1, 4}, m.Bookmarks(p))
}

func TestMap_LocationsOrder(t *testing.T) {
	m := newTestMap()
	m.SetBaseTerrain(Point{Row: 2, Column: 0}, Plains)
	m.AddFixture(Point{Row: 0, Column: 2}, &Hill{ID: 1})
	m.AddFixture(Elsewhere, &Oasis{ID: 2})
	m.AddBookmark(Point{Row: 0, Column: 1}, 1)
	assert.Equal(t, []Point{Elsewhere, {Row: 0, Column: 1}, {Row: 0, Column: 2}, {Row: 2, Column: 0}}, m.Locations())
}

func TestMap_RemoveFixtures(t *testing.T) {
	m := newTestMap()
	p := Point{Row: 0, Column: 0}
	m.AddFixture(p, &Hill{ID: 1})
	m.AddFixture(p, &Oasis{ID: 2})
	m.AddFixture(p, &Hill{ID: 3})

	n := m.RemoveFixtures(p, func(f Fixture) bool { return f.FixtureID() == 2 })
	assert.Equal(t, 1, n)
	assert.Equal(t, []Fixture{&Hill{ID: 1}, &Hill{ID: 3}}, m.Fixtures(p))

	m.RemoveFixtures(p, func(Fixture) bool { return true })
	assert.False(t, m.HasContent(p))
	assert.Empty(t, m.Locations())
}

func TestMap_EqualsComparesFixturesAsMultiset(t *testing.T) {
	a, b := newTestMap(), newTestMap()
	p := Point{Row: 1, Column: 2}
	a.AddFixture(p, &Hill{ID: 1})
	a.AddFixture(p, &Forest{Kind: "oak", Acres: -1, ID: 2})
	b.AddFixture(p, &Forest{Kind: "oak", Acres: -1, ID: 2})
	b.AddFixture(p, &Hill{ID: 1})
	assert.True(t, a.Equals(b))

	b.AddFixture(p, &Hill{ID: 1})
	assert.False(t, a.Equals(b))
}

func TestMap_EqualsChecksPlayers(t *testing.T) {
	a, b := newTestMap(), newTestMap()
	a.AddPlayer(Player{ID: 1, Name: "Ann"})
	b.AddPlayer(Player{ID: 1, Name: "Ann"})
	require.True(t, a.Equals(b))
	b.SetCurrentPlayer(Player{ID: 1, Name: "Ann"})
	assert.False(t, a.Equals(b))
}

func TestPlayerCollection_SingleCurrent(t *testing.T) {
	c := NewPlayerCollection()
	c.Add(Player{ID: 1, Name: "Ann", Current: true})
	c.Add(Player{ID: 2, Name: "Ben", Current: true})
	assert.Equal(t, 2, c.Current().ID)
	assert.False(t, c.Get(1).Current)

	c.SetCurrent(7)
	assert.True(t, c.Has(7))
	assert.Equal(t, 7, c.Current().ID)
	assert.Equal(t, 3, c.Len())
}

func TestPlayerCollection_Defaults(t *testing.T) {
	c := NewPlayerCollection()
	assert.True(t, c.Current().IsIndependent())
	assert.Equal(t, Player{ID: 9}, c.Get(9))
	assert.False(t, c.Has(9))
}

func TestWorker_DropEmptyJobs(t *testing.T) {
	w := NewWorker("Eli", DefaultRace, 1)
	w.AddJob(&Job{Name: "idle"})
	w.AddJob(&Job{Name: "cook", Level: 1, Skills: []*Skill{{Name: "baking"}, {Name: "brewing", Hours: 2}}})
	w.AddJob(&Job{Name: "smith", Skills: []*Skill{{Name: "forging"}}})
	w.AddJob(&Job{Name: "herder", Level: 2, Skills: []*Skill{{Name: "shearing"}}})

	assert.Equal(t, 2, w.DropEmptyJobs())
	require.Len(t, w.Jobs, 2)
	assert.Equal(t, []*Skill{{Name: "brewing", Hours: 2}}, w.Jobs[0].Skills)
	assert.Equal(t, "herder", w.Jobs[1].Name)
	assert.Nil(t, w.Jobs[1].Skills)

	assert.Zero(t, w.DropEmptyJobs())
	w.Jobs[0].Level, w.Jobs[0].Skills = 0, nil
	w.Jobs[1].Level = 0
	w.DropEmptyJobs()
	assert.Nil(t, w.Jobs)
}

func TestMap_DropEmptyJobsReachesFortressUnits(t *testing.T) {
	m := newTestMap()
	idle := func(id int) *Worker {
		w := NewWorker("w", DefaultRace, id)
		w.AddJob(&Job{Name: "idle", Skills: []*Skill{{Name: "x"}}})
		return w
	}
	field := NewUnit(1, "scouts", "A", 1)
	field.AddMember(idle(2))
	garrison := NewUnit(1, "guards", "B", 3)
	garrison.AddMember(idle(4))
	m.AddFixture(Point{}, field)
	m.AddFixture(Elsewhere, &Fortress{Owner: 1, Name: "Keep", Size: Small, Members: []FortressMember{garrison}, ID: 5})

	assert.Equal(t, 2, m.DropEmptyJobs())
	assert.Nil(t, field.Members[0].(*Worker).Jobs)
	assert.Nil(t, garrison.Members[0].(*Worker).Jobs)
}
