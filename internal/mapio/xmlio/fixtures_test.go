package xmlio_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
	"github.com/cory-johannsen/worldmap/internal/mapio/xmlio"
)

var (
	policies = []warning.Policy{warning.Collect, warning.Strict}
	dialects = []xmlio.Dialect{xmlio.DialectCanonical, xmlio.DialectLegacy}
)

// sampleUnit returns a unit exercising every member type. IDs start at base.
func sampleUnit(base int) *world.Unit {
	u := world.NewUnit(1, "explorer party", "Dawn Patrol", base)
	u.Image = "unit.png"
	u.SetOrders(world.UnspecifiedTurn, "Hold position")
	u.SetOrders(4, "Scout north & report")
	u.SetResults(3, "Found a <ruin>")

	w := world.NewWorker("Ardal", "dwarf", base+1)
	w.Stats = &world.WorkerStats{HP: 8, MaxHP: 10, Strength: 14, Dexterity: 12, Constitution: 15, Intelligence: 10, Wisdom: 9, Charisma: 8}
	w.AddJob(&world.Job{Name: "miner", Level: 2, Skills: []*world.Skill{
		{Name: "prospecting", Level: 1, Hours: 12},
		{Name: "tunneling", Level: 0, Hours: 5},
	}})
	w.Notes[1] = "Reliable"
	u.AddMember(w)
	u.AddMember(world.NewWorker("Bryn", world.DefaultRace, base+2))

	horse := world.NewAnimal("horse", base+3)
	horse.Status = "domesticated"
	horse.Born = 2
	horse.Population = 3
	u.AddMember(horse)
	u.AddMember(&world.ResourcePile{Kind: "food", Contents: "bread", Quantity: world.Quantity{Number: 12.5, Units: "pounds"}, Created: 3, ID: base + 4})
	u.AddMember(&world.Implement{Kind: "pickaxe", Count: 2, ID: base + 5})
	return u
}

// sampleFixtures returns one of every fixture variant with distinct IDs.
func sampleFixtures() []world.Fixture {
	pop := world.NewCommunityStats(250)
	pop.SetSkillLevel("farming", 4)
	pop.SetSkillLevel("smithing", 2)
	pop.AddWorkedField(400)
	pop.AddWorkedField(401)
	pop.YearlyProduction = []*world.ResourcePile{{Kind: "food", Contents: "wheat", Quantity: world.Quantity{Number: 100, Units: "bushels"}, Created: -1, ID: 410}}
	pop.YearlyConsumption = []*world.ResourcePile{{Kind: "fuel", Contents: "wood", Quantity: world.Quantity{Number: 40}, Created: -1, ID: 411}}

	return []world.Fixture{
		&world.Forest{Kind: "oak", Rows: true, Acres: 12.5, ID: 100, Image: "oak.png"},
		&world.Forest{Kind: "pine", Acres: -1, ID: 101},
		&world.Hill{ID: 102},
		&world.Oasis{ID: 103, Image: "oasis.png"},
		&world.Ground{Kind: "granite", Exposed: true, ID: 104},
		world.NewAnimal("wolf", 105),
		&world.Animal{Kind: "griffon", Talking: true, Status: "wild", Born: 7, Population: 2, ID: 106},
		&world.AnimalTracks{Kind: "bear"},
		&world.Immortal{Kind: world.Sphinx, ID: 107},
		&world.Immortal{Kind: world.Dragon, Subkind: "red", ID: 108},
		&world.Grove{Orchard: true, Cultivated: true, Kind: "apple", Population: 30, ID: 109},
		&world.Grove{Kind: "birch", Population: -1, ID: 110},
		&world.Meadow{Field: true, Cultivated: true, Kind: "wheat", Status: world.Growing, Acres: 40, ID: 111},
		&world.Meadow{Kind: "clover", Status: world.Fallow, Acres: -1, ID: 112},
		&world.Mine{Kind: "iron", Status: world.Abandoned, ID: 113},
		&world.MineralVein{Kind: "gold", Exposed: false, DC: 25, ID: 114},
		&world.Shrub{Kind: "hazel", Population: 15, ID: 115},
		&world.StoneDeposit{Kind: "marble", DC: 12, ID: 116},
		&world.Cache{Kind: "treasure", Contents: "silver coins", ID: 117},
		&world.TextFixture{Text: "Here be dragons & worse", Turn: 5},
		&world.Portal{World: "underworld", Destination: world.Point{Row: 3, Column: 9}, ID: 118},
		&world.Adventure{Brief: "Lost mine", Full: "A mine lost <long> ago", Owner: 2, ID: 119},
		&world.Town{Class: world.ClassCity, Status: world.Active, Size: world.Large, Name: "Hightower", DC: 20, Owner: 1, Population: pop, ID: 120, Portrait: "city.png"},
		&world.Town{Class: world.ClassFortification, Status: world.Ruined, Size: world.Small, Name: "", Owner: world.IndependentPlayerID, ID: 121},
		&world.Village{Status: world.Burned, Name: "Ashford", Race: "elf", Owner: 2, ID: 122},
		&world.Fortress{Owner: 1, Name: "Stronghold", Size: world.Medium, ID: 123, Members: []world.FortressMember{
			sampleUnit(300),
			&world.ResourcePile{Kind: "metal", Contents: "iron", Quantity: world.Quantity{Number: 5, Units: "ingots"}, Created: -1, ID: 130},
			&world.Implement{Kind: "anvil", Count: 1, ID: 131},
		}},
		sampleUnit(200),
	}
}

// sampleMap returns a small map using every kind of location content.
func sampleMap() *world.Map {
	m := world.NewMap(world.Dimensions{Rows: 3, Columns: 4, Version: world.CurrentVersion}, 6)
	m.AddPlayer(world.Player{ID: 1, Name: "Alice", Country: "Avalon", Portrait: "alice.png"})
	m.AddPlayer(world.Player{ID: 2, Name: "Bob"})
	m.SetCurrentPlayer(world.Player{ID: 1, Name: "Alice", Country: "Avalon", Portrait: "alice.png"})

	origin := world.Point{Row: 0, Column: 0}
	m.SetBaseTerrain(origin, world.Plains)
	m.SetMountainous(origin, true)
	m.AddRivers(origin, world.Lake, world.RiverNorth)
	m.SetRoadLevel(origin, world.Southeast, 3)
	m.SetRoadLevel(origin, world.North, 1)
	m.AddBookmark(origin, 2)

	fixtures := sampleFixtures()
	for i, f := range fixtures {
		p := world.Point{Row: i % 3, Column: 1 + i%3}
		m.SetBaseTerrain(p, world.TileTypes[i%len(world.TileTypes)])
		m.AddFixture(p, f)
	}
	m.SetBaseTerrain(world.Point{Row: 2, Column: 0}, world.Ocean)
	m.AddFixture(world.Elsewhere, &world.Hill{ID: 500})
	return m
}

func write(t *testing.T, d xmlio.Dialect, obj any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, xmlio.NewWriter(d).WriteObject(context.Background(), &buf, obj))
	return buf.String()
}

func readMap(t *testing.T, policy warning.Policy, doc string) (*world.Map, *warning.Handler, error) {
	t.Helper()
	h := warning.NewHandler(policy, nil)
	m, err := xmlio.NewReader(nil).ReadMap(context.Background(), strings.NewReader(doc), h)
	return m, h, err
}

func readObject(t *testing.T, policy warning.Policy, doc string) (any, *warning.Handler, error) {
	t.Helper()
	h := warning.NewHandler(policy, nil)
	obj, err := xmlio.NewReader(nil).ReadObject(context.Background(), strings.NewReader(doc), h)
	return obj, h, err
}
