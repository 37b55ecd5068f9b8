// Package world provides the strategic map model: locations, terrain, rivers,
// roads, players, and the fixtures placed on the grid.
package world

import "fmt"

// Point is a grid location.
type Point struct {
	Row    int
	Column int
}

// Elsewhere is the sentinel location for fixtures with no grid position.
var Elsewhere = Point{Row: -1, Column: -1}

// IsValid reports whether p has non-negative coordinates.
func (p Point) IsValid() bool {
	return p.Row >= 0 && p.Column >= 0
}

// String returns "(row, column)".
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Column)
}

// TileType is the base terrain of a location.
type TileType string

// Terrain types understood by format version 2.
const (
	NotVisible TileType = ""
	Tundra     TileType = "tundra"
	Desert     TileType = "desert"
	Ocean      TileType = "ocean"
	Plains     TileType = "plains"
	Jungle     TileType = "jungle"
	Steppe     TileType = "steppe"
	Swamp      TileType = "swamp"
)

// TileTypes lists every visible terrain type.
var TileTypes = []TileType{Tundra, Desert, Ocean, Plains, Jungle, Steppe, Swamp}

// ParseTileType converts an XML terrain name to a TileType.
//
// Postcondition: Returns a visible TileType or a non-nil error.
func ParseTileType(s string) (TileType, error) {
	for _, t := range TileTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return NotVisible, fmt.Errorf("unknown tile type %q", s)
}

// River is one river segment, or a lake, within a location.
type River string

// River segments. Declaration order is the canonical write order.
const (
	RiverNorth River = "north"
	RiverEast  River = "east"
	RiverSouth River = "south"
	RiverWest  River = "west"
	Lake       River = "lake"
)

// Rivers lists every River value in canonical order.
var Rivers = []River{RiverNorth, RiverEast, RiverSouth, RiverWest, Lake}

// Ordinal returns the position of r in Rivers, or -1.
func (r River) Ordinal() int {
	for i, v := range Rivers {
		if v == r {
			return i
		}
	}
	return -1
}

// ParseRiver accepts full direction names and their one-letter abbreviations.
func ParseRiver(s string) (River, error) {
	switch s {
	case "north", "N", "n":
		return RiverNorth, nil
	case "east", "E", "e":
		return RiverEast, nil
	case "south", "S", "s":
		return RiverSouth, nil
	case "west", "W", "w":
		return RiverWest, nil
	case "lake":
		return Lake, nil
	}
	return "", fmt.Errorf("unknown river direction %q", s)
}

// Direction is a compass direction used for roads.
type Direction string

// Compass directions. Declaration order is the canonical write order.
const (
	North     Direction = "north"
	Northeast Direction = "northeast"
	East      Direction = "east"
	Southeast Direction = "southeast"
	South     Direction = "south"
	Southwest Direction = "southwest"
	West      Direction = "west"
	Northwest Direction = "northwest"
)

// Directions lists every Direction in canonical order.
var Directions = []Direction{North, Northeast, East, Southeast, South, Southwest, West, Northwest}

// Ordinal returns the position of d in Directions, or -1.
func (d Direction) Ordinal() int {
	for i, v := range Directions {
		if v == d {
			return i
		}
	}
	return -1
}

// ParseDirection accepts full names and abbreviations such as "NE".
func ParseDirection(s string) (Direction, error) {
	abbrev := map[string]Direction{
		"N": North, "NE": Northeast, "E": East, "SE": Southeast,
		"S": South, "SW": Southwest, "W": West, "NW": Northwest,
	}
	if d, ok := abbrev[s]; ok {
		return d, nil
	}
	for _, d := range Directions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// FieldStatus is the growth stage of a field or meadow.
type FieldStatus string

// Field statuses.
const (
	Fallow  FieldStatus = "fallow"
	Seeding FieldStatus = "seeding"
	Growing FieldStatus = "growing"
	Bearing FieldStatus = "bearing"
)

// FieldStatuses lists every FieldStatus.
var FieldStatuses = []FieldStatus{Fallow, Seeding, Growing, Bearing}

// FieldStatusFor returns the status assigned to a field whose status was
// never recorded. The result depends only on id.
func FieldStatusFor(id int) FieldStatus {
	if id < 0 {
		id = -id
	}
	return FieldStatuses[id%len(FieldStatuses)]
}

// ParseFieldStatus converts an XML value to a FieldStatus.
func ParseFieldStatus(s string) (FieldStatus, error) {
	for _, v := range FieldStatuses {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown field status %q", s)
}

// TownStatus is the condition of a town or mine.
type TownStatus string

// Town statuses.
const (
	Active    TownStatus = "active"
	Abandoned TownStatus = "abandoned"
	Ruined    TownStatus = "ruined"
	Burned    TownStatus = "burned"
)

// ParseTownStatus converts an XML value to a TownStatus.
func ParseTownStatus(s string) (TownStatus, error) {
	switch TownStatus(s) {
	case Active, Abandoned, Ruined, Burned:
		return TownStatus(s), nil
	}
	return "", fmt.Errorf("unknown town status %q", s)
}

// TownSize is the size class of a town-family fixture.
type TownSize string

// Town sizes.
const (
	Small  TownSize = "small"
	Medium TownSize = "medium"
	Large  TownSize = "large"
)

// ParseTownSize converts an XML value to a TownSize.
func ParseTownSize(s string) (TownSize, error) {
	switch TownSize(s) {
	case Small, Medium, Large:
		return TownSize(s), nil
	}
	return "", fmt.Errorf("unknown town size %q", s)
}
