package world

import (
	"reflect"
	"sort"
)

// CurrentVersion is the only map format version this package produces.
const CurrentVersion = 2

// Dimensions are the size and format version of a map.
type Dimensions struct {
	Rows    int
	Columns int
	Version int
}

// Contains reports whether p lies inside the grid.
func (d Dimensions) Contains(p Point) bool {
	return p.Row >= 0 && p.Column >= 0 && p.Row < d.Rows && p.Column < d.Columns
}

// Map is the mutable strategic map.
//
// Invariant: every location has at most one base terrain.
type Map struct {
	Dimensions  Dimensions
	CurrentTurn int
	Players     *PlayerCollection

	terrain   map[Point]TileType
	mountains map[Point]bool
	rivers    map[Point]map[River]struct{}
	roads     map[Point]map[Direction]int
	bookmarks map[Point]map[int]struct{}
	fixtures  map[Point][]Fixture
}

// NewMap returns an empty map of the given dimensions.
//
// Postcondition: the map has no players and no located content.
func NewMap(dims Dimensions, currentTurn int) *Map {
	return &Map{
		Dimensions:  dims,
		CurrentTurn: currentTurn,
		Players:     NewPlayerCollection(),
		terrain:     make(map[Point]TileType),
		mountains:   make(map[Point]bool),
		rivers:      make(map[Point]map[River]struct{}),
		roads:       make(map[Point]map[Direction]int),
		bookmarks:   make(map[Point]map[int]struct{}),
		fixtures:    make(map[Point][]Fixture),
	}
}

// SetBaseTerrain sets the terrain at p; NotVisible clears it.
func (m *Map) SetBaseTerrain(p Point, t TileType) {
	if t == NotVisible {
		delete(m.terrain, p)
		return
	}
	m.terrain[p] = t
}

// BaseTerrain returns the terrain at p, or NotVisible.
func (m *Map) BaseTerrain(p Point) TileType {
	return m.terrain[p]
}

// SetMountainous sets the mountain flag at p.
func (m *Map) SetMountainous(p Point, mountainous bool) {
	if !mountainous {
		delete(m.mountains, p)
		return
	}
	m.mountains[p] = true
}

// IsMountainous reports the mountain flag at p.
func (m *Map) IsMountainous(p Point) bool {
	return m.mountains[p]
}

// AddRivers adds river segments at p.
func (m *Map) AddRivers(p Point, rivers ...River) {
	if len(rivers) == 0 {
		return
	}
	set, ok := m.rivers[p]
	if !ok {
		set = make(map[River]struct{})
		m.rivers[p] = set
	}
	for _, r := range rivers {
		set[r] = struct{}{}
	}
}

// Rivers returns the river segments at p in canonical order.
func (m *Map) Rivers(p Point) []River {
	set := m.rivers[p]
	out := make([]River, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal() < out[j].Ordinal() })
	return out
}

// SetRoadLevel sets the road quality leaving p in direction d; zero removes the road.
func (m *Map) SetRoadLevel(p Point, d Direction, quality int) {
	if quality == 0 {
		if roads, ok := m.roads[p]; ok {
			delete(roads, d)
			if len(roads) == 0 {
				delete(m.roads, p)
			}
		}
		return
	}
	roads, ok := m.roads[p]
	if !ok {
		roads = make(map[Direction]int)
		m.roads[p] = roads
	}
	roads[d] = quality
}

// RoadLevel returns the road quality leaving p in direction d.
func (m *Map) RoadLevel(p Point, d Direction) int {
	return m.roads[p][d]
}

// Roads returns the directions with roads at p in canonical order.
func (m *Map) Roads(p Point) []Direction {
	out := make([]Direction, 0, len(m.roads[p]))
	for d := range m.roads[p] {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal() < out[j].Ordinal() })
	return out
}

// AddBookmark records that the player with playerID bookmarked p.
func (m *Map) AddBookmark(p Point, playerID int) {
	set, ok := m.bookmarks[p]
	if !ok {
		set = make(map[int]struct{})
		m.bookmarks[p] = set
	}
	set[playerID] = struct{}{}
}

// Bookmarks returns the IDs of players who bookmarked p, ascending.
func (m *Map) Bookmarks(p Point) []int {
	out := make([]int, 0, len(m.bookmarks[p]))
	for id := range m.bookmarks[p] {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// AddFixture places f at p.
func (m *Map) AddFixture(p Point, f Fixture) {
	m.fixtures[p] = append(m.fixtures[p], f)
}

// Fixtures returns the fixtures at p in insertion order.
func (m *Map) Fixtures(p Point) []Fixture {
	return m.fixtures[p]
}

// RemoveFixtures drops every fixture at p for which drop returns true and
// reports how many were removed.
//
// Postcondition: the remaining fixtures keep their relative order.
func (m *Map) RemoveFixtures(p Point, drop func(Fixture) bool) int {
	kept := m.fixtures[p][:0]
	removed := 0
	for _, f := range m.fixtures[p] {
		if drop(f) {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		delete(m.fixtures, p)
	} else {
		m.fixtures[p] = kept
	}
	return removed
}

// DropEmptyJobs applies Worker.DropEmptyJobs to every worker in a unit on
// the map, including units stationed in fortresses, and reports how many
// jobs were removed.
func (m *Map) DropEmptyJobs() int {
	removed := 0
	prune := func(u *Unit) {
		for _, member := range u.Members {
			if w, ok := member.(*Worker); ok {
				removed += w.DropEmptyJobs()
			}
		}
	}
	for _, fixtures := range m.fixtures {
		for _, f := range fixtures {
			switch f := f.(type) {
			case *Unit:
				prune(f)
			case *Fortress:
				for _, member := range f.Members {
					if u, ok := member.(*Unit); ok {
						prune(u)
					}
				}
			}
		}
	}
	return removed
}

// AddPlayer registers p with the map's roster.
func (m *Map) AddPlayer(p Player) {
	m.Players.Add(p)
}

// SetCurrentPlayer marks p as the current player, registering it if needed.
func (m *Map) SetCurrentPlayer(p Player) {
	if !m.Players.Has(p.ID) {
		m.Players.Add(p)
	}
	m.Players.SetCurrent(p.ID)
}

// CurrentPlayer returns the current player.
func (m *Map) CurrentPlayer() Player {
	return m.Players.Current()
}

// HasContent reports whether anything visible is recorded at p.
func (m *Map) HasContent(p Point) bool {
	return m.terrain[p] != NotVisible || m.mountains[p] || len(m.rivers[p]) > 0 ||
		len(m.roads[p]) > 0 || len(m.bookmarks[p]) > 0 || len(m.fixtures[p]) > 0
}

// Locations returns every location with recorded content, row-major, with
// off-grid locations (including Elsewhere) first.
func (m *Map) Locations() []Point {
	seen := make(map[Point]struct{})
	add := func(p Point) { seen[p] = struct{}{} }
	for p := range m.terrain {
		add(p)
	}
	for p := range m.mountains {
		add(p)
	}
	for p := range m.rivers {
		add(p)
	}
	for p := range m.roads {
		add(p)
	}
	for p := range m.bookmarks {
		add(p)
	}
	for p, f := range m.fixtures {
		if len(f) > 0 {
			add(p)
		}
	}
	out := make([]Point, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Column < out[j].Column
	})
	return out
}

// Equals reports whether m and o describe the same map. Fixtures at each
// location are compared as a multiset.
func (m *Map) Equals(o *Map) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.Dimensions != o.Dimensions || m.CurrentTurn != o.CurrentTurn {
		return false
	}
	if !reflect.DeepEqual(m.Players.All(), o.Players.All()) {
		return false
	}
	mine, theirs := m.Locations(), o.Locations()
	if !reflect.DeepEqual(mine, theirs) {
		return false
	}
	for _, p := range mine {
		if m.BaseTerrain(p) != o.BaseTerrain(p) || m.IsMountainous(p) != o.IsMountainous(p) {
			return false
		}
		if !reflect.DeepEqual(m.Rivers(p), o.Rivers(p)) || !reflect.DeepEqual(m.Bookmarks(p), o.Bookmarks(p)) {
			return false
		}
		if !reflect.DeepEqual(m.roads[p], o.roads[p]) && (len(m.roads[p]) > 0 || len(o.roads[p]) > 0) {
			return false
		}
		if !sameFixtures(m.fixtures[p], o.fixtures[p]) {
			return false
		}
	}
	return true
}

func sameFixtures(a, b []Fixture) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
outer:
	for _, fa := range a {
		for i, fb := range b {
			if !used[i] && reflect.DeepEqual(fa, fb) {
				used[i] = true
				continue outer
			}
		}
		return false
	}
	return true
}
