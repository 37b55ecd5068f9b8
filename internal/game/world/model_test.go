package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPoint_IsValid(t *testing.T) {
	assert.True(t, Point{Row: 0, Column: 3}.IsValid())
	assert.False(t, Elsewhere.IsValid())
	assert.Equal(t, "(-1, -1)", Elsewhere.String())
}

func TestParseTileType(t *testing.T) {
	for _, tt := range TileTypes {
		got, err := ParseTileType(string(tt))
		require.NoError(t, err)
		assert.Equal(t, tt, got)
	}
	_, err := ParseTileType("lava")
	assert.Error(t, err)
	_, err = ParseTileType("")
	assert.Error(t, err)
}

func TestParseRiver_Abbreviations(t *testing.T) {
	for in, want := range map[string]River{"N": RiverNorth, "e": RiverEast, "south": RiverSouth, "W": RiverWest, "lake": Lake} {
		got, err := ParseRiver(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseRiver("up")
	assert.Error(t, err)
}

func TestParseDirection_Abbreviations(t *testing.T) {
	got, err := ParseDirection("NE")
	require.NoError(t, err)
	assert.Equal(t, Northeast, got)
	got, err = ParseDirection("southwest")
	require.NoError(t, err)
	assert.Equal(t, Southwest, got)
	_, err = ParseDirection("up")
	assert.Error(t, err)
}

func TestOrdinals_FollowDeclarationOrder(t *testing.T) {
	for i, r := range Rivers {
		assert.Equal(t, i, r.Ordinal())
	}
	for i, d := range Directions {
		assert.Equal(t, i, d.Ordinal())
	}
	assert.Equal(t, -1, River("ford").Ordinal())
}

func TestParseStatusesAndSizes(t *testing.T) {
	for _, s := range FieldStatuses {
		got, err := ParseFieldStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	for _, s := range []TownStatus{Active, Abandoned, Ruined, Burned} {
		got, err := ParseTownStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	for _, s := range []TownSize{Small, Medium, Large} {
		got, err := ParseTownSize(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseTownStatus("thriving")
	assert.Error(t, err)
	_, err = ParseTownSize("huge")
	assert.Error(t, err)
	_, err = ParseFieldStatus("wilted")
	assert.Error(t, err)
}

func TestPropertyFieldStatusForIsStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := rapid.Int().Draw(t, "id")
		first := FieldStatusFor(id)
		assert.Equal(t, first, FieldStatusFor(id))
		assert.Contains(t, FieldStatuses, first)
	})
}

func TestImmortalKinds(t *testing.T) {
	assert.True(t, IsSimpleImmortal("sphinx"))
	assert.False(t, IsSimpleImmortal("dragon"))
	assert.True(t, Dragon.IsKinded())
	assert.False(t, Kraken.IsKinded())
}

func TestJobAndSkill_IsEmpty(t *testing.T) {
	assert.True(t, (&Skill{Name: "x"}).IsEmpty())
	assert.False(t, (&Skill{Name: "x", Hours: 1}).IsEmpty())
	assert.True(t, (&Job{Name: "j", Skills: []*Skill{{Name: "x"}}}).IsEmpty())
	assert.False(t, (&Job{Name: "j", Skills: []*Skill{{Name: "x", Level: 1}}}).IsEmpty())
	assert.False(t, (&Job{Name: "j", Level: 1}).IsEmpty())
}

func TestUnit_OrdersAndResults(t *testing.T) {
	u := NewUnit(1, "scouts", "A", 3)
	u.SetOrders(5, "go")
	u.SetOrders(UnspecifiedTurn, "wait")
	u.SetResults(5, "went")
	assert.Equal(t, []int{-1, 5}, SortedTurns(u.Orders))
	u.SetOrders(5, "")
	assert.Equal(t, []int{-1}, SortedTurns(u.Orders))
	assert.Equal(t, "went", u.Results[5])
}

func TestWorker_Job(t *testing.T) {
	w := NewWorker("Ada", DefaultRace, 1)
	w.AddJob(&Job{Name: "smith", Level: 2})
	j, ok := w.Job("smith")
	require.True(t, ok)
	assert.Equal(t, 2, j.Level)
	_, ok = w.Job("cook")
	assert.False(t, ok)
}

func TestCommunityStats(t *testing.T) {
	c := NewCommunityStats(10)
	c.SetSkillLevel("weaving", 2)
	c.SetSkillLevel("farming", 1)
	c.SetSkillLevel("weaving", 0)
	assert.Equal(t, []string{"farming"}, c.Skills())

	c.AddWorkedField(9)
	c.AddWorkedField(3)
	c.AddWorkedField(9)
	assert.Equal(t, []int{3, 9}, c.WorkedFields)
}

func TestPropertyWorkedFieldsStaySortedSet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewCommunityStats(0)
		ids := rapid.SliceOf(rapid.IntRange(0, 50)).Draw(t, "ids")
		for _, id := range ids {
			c.AddWorkedField(id)
		}
		for i := 1; i < len(c.WorkedFields); i++ {
			if c.WorkedFields[i-1] >= c.WorkedFields[i] {
				t.Fatalf("not a sorted set: %v", c.WorkedFields)
			}
		}
	})
}
