package xmlio

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
)

// readFunc reads one construct whose start tag has already been consumed.
//
// Postcondition: the construct's end tag has been consumed, or a non-nil
// error is returned.
type readFunc func(s *session, start stream.Event, parent string) (any, error)

// entry binds a reader to every tag it understands.
type entry struct {
	tags []string
	read readFunc
}

// reservedTags are tags the format names but this package does not read.
// The value is true for tags that have been retired and false for tags
// reserved for future use.
var reservedTags = map[string]bool{
	"future":      false,
	"explorer":    false,
	"landmark":    false,
	"sandbar":     true,
	"battlefield": true,
	"cave":        true,
}

// structuralTags are read by the map reader or by construct readers
// directly rather than through a table.
var structuralTags = []string{
	"view", "map", "row", "tile", "elsewhere", "mountain", "bookmark", "road",
	"orders", "results", "science", "expertise", "claim", "production",
	"consumption", "note",
}

func immortalTags(kinds []world.ImmortalKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

var terrainReaders = []entry{
	{[]string{"forest"}, readForest},
	{[]string{"hill"}, readHill},
	{[]string{"oasis"}, readOasis},
	{[]string{"ground"}, readGround},
}

var mobileReaders = []entry{
	{[]string{"animal"}, readAnimal},
	{immortalTags(world.SimpleImmortals), readSimpleImmortal},
	{immortalTags(world.KindedImmortals), readKindedImmortal},
}

var harvestReaders = []entry{
	{[]string{"grove", "orchard"}, readGrove},
	{[]string{"meadow", "field"}, readMeadow},
	{[]string{"mine"}, readMine},
	{[]string{"mineral"}, readMineral},
	{[]string{"shrub"}, readShrub},
	{[]string{"stone"}, readStone},
	{[]string{"cache"}, readCache},
}

var explorableReaders = []entry{
	{[]string{"text"}, readText},
	{[]string{"portal"}, readPortal},
	{[]string{"adventure"}, readAdventure},
}

var townReaders = []entry{
	{[]string{string(world.ClassTown), string(world.ClassCity), string(world.ClassFortification)}, readTown},
	{[]string{"village"}, readVillage},
	{[]string{"fortress"}, readFortress},
}

var unitReaders = []entry{
	{[]string{"unit"}, readUnit},
}

var unitMemberReaders = []entry{
	{[]string{"worker"}, readWorker},
	{[]string{"animal"}, readAnimal},
	{[]string{"resource"}, readResource},
	{[]string{"implement"}, readImplement},
}

var fortressMemberReaders = []entry{
	{[]string{"unit"}, readUnit},
	{[]string{"resource"}, readResource},
	{[]string{"implement"}, readImplement},
}

// objectReaders are the free-standing constructs a document may hold
// besides fixtures and members.
var objectReaders = []entry{
	{[]string{"river", "lake"}, readRiver},
	{[]string{"population"}, readPopulation},
	{[]string{"player"}, readPlayer},
	{[]string{"job"}, readJob},
	{[]string{"skill"}, readSkill},
	{[]string{"stats"}, readStats},
}

// tables are the lookup indexes of one engine instance. They are built once
// and never modified, so a single instance may serve concurrent reads.
type tables struct {
	fixtures        map[string]readFunc
	unitMembers     map[string]readFunc
	fortressMembers map[string]readFunc
	objects         map[string]readFunc
	known           map[string]struct{}
	names           []string
}

func newTables() *tables {
	t := &tables{
		fixtures:        index(terrainReaders, mobileReaders, harvestReaders, explorableReaders, townReaders, unitReaders),
		unitMembers:     index(unitMemberReaders),
		fortressMembers: index(fortressMemberReaders),
		known:           make(map[string]struct{}),
	}
	t.objects = index(terrainReaders, mobileReaders, harvestReaders, explorableReaders, townReaders, unitReaders, objectReaders)
	for tag, read := range t.unitMembers {
		if _, ok := t.objects[tag]; !ok {
			t.objects[tag] = read
		}
	}
	for tag := range t.objects {
		t.known[tag] = struct{}{}
	}
	for _, tag := range structuralTags {
		t.known[tag] = struct{}{}
	}
	for tag := range t.known {
		t.names = append(t.names, tag)
	}
	sort.Strings(t.names)
	return t
}

// index flattens groups of entries into a tag lookup.
//
// Precondition: no tag appears in more than one entry.
func index(groups ...[]entry) map[string]readFunc {
	out := make(map[string]readFunc)
	for _, group := range groups {
		for _, e := range group {
			for _, tag := range e.tags {
				if _, dup := out[tag]; dup {
					panic(fmt.Sprintf("xmlio: tag %q registered twice", tag))
				}
				out[tag] = e.read
			}
		}
	}
	return out
}

func (t *tables) isKnown(tag string) bool {
	_, ok := t.known[tag]
	return ok
}

// suggest returns the known tag closest to tag, or "" if none is close
// enough to be a plausible misspelling.
func (t *tables) suggest(tag string) string {
	best, bestDist := "", -1
	for _, name := range t.names {
		dist := levenshtein.ComputeDistance(tag, name)
		if dist > suggestionLimit(len(name)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best
}

func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
