package xmlio

import (
	"strings"

	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
)

// mapState is the position of the map reader within the document.
type mapState int

const (
	outsideMap mapState = iota
	inMap
	inRow
	inTile
	inElsewhere
	closedMap
)

func (st mapState) String() string {
	switch st {
	case outsideMap:
		return "outside-map"
	case inMap:
		return "map"
	case inRow:
		return "row"
	case inTile:
		return "tile"
	case inElsewhere:
		return "elsewhere"
	case closedMap:
		return "closed"
	}
	return "unknown"
}

// mapReader holds the state of one <map> element while it is read.
//
// Invariant: cursor is meaningful only while state is inTile or inElsewhere.
type mapReader struct {
	s      *session
	m      *world.Map
	state  mapState
	saved  []mapState
	cursor world.Point
}

func (r *mapReader) hasCursor() bool {
	return r.state == inTile || r.state == inElsewhere
}

func (r *mapReader) enter(next mapState) {
	r.saved = append(r.saved, r.state)
	r.state = next
}

// leave returns to the enclosing state, or closes the map when the map's
// own end tag has been read.
func (r *mapReader) leave() {
	if len(r.saved) == 1 {
		r.saved = r.saved[:0]
		r.state = closedMap
		return
	}
	r.state = r.saved[len(r.saved)-1]
	r.saved = r.saved[:len(r.saved)-1]
}

// readDocumentMap reads a map whose root element is start, either <view>
// wrapping one <map> or a bare <map>.
func (s *session) readDocumentMap(start stream.Event) (*world.Map, error) {
	switch start.Tag() {
	case "map":
		return s.readMapElement(start, world.UnspecifiedTurn, world.IndependentPlayerID)
	case "view":
		return s.readView(start)
	}
	return nil, &warning.MissingChildError{Tag: start.Tag(), Child: "map", At: start.Line}
}

func (s *session) readView(start stream.Event) (*world.Map, error) {
	a := s.attrs(start)
	player := a.optionalInt("current_player", world.IndependentPlayerID)
	turn := a.optionalInt("current_turn", world.UnspecifiedTurn)
	if err := a.Err(); err != nil {
		return nil, err
	}
	var m *world.Map
	for {
		ev, err := s.next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case stream.EndElement:
			if m == nil {
				return nil, &warning.MissingChildError{Tag: "view", Child: "map", At: ev.Line}
			}
			return m, nil
		case stream.StartElement:
			if !ev.InNamespace() || ev.Tag() != "map" {
				if err := s.unexpected("view", ev); err != nil {
					return nil, err
				}
				continue
			}
			if m != nil {
				if err := s.unwanted("view", ev, "a view holds exactly one map"); err != nil {
					return nil, err
				}
				if err := s.skip(ev); err != nil {
					return nil, err
				}
				continue
			}
			if m, err = s.readMapElement(ev, turn, player); err != nil {
				return nil, err
			}
		}
	}
}

// readMapElement reads <map> through its end tag. turn and player come from
// the enclosing view; a current_player on the map itself takes precedence.
func (s *session) readMapElement(start stream.Event, turn, player int) (*world.Map, error) {
	a := s.attrs(start)
	dims := world.Dimensions{
		Version: a.requiredInt("version"),
		Rows:    a.requiredInt("rows"),
		Columns: a.requiredInt("columns"),
	}
	player = a.optionalInt("current_player", player)
	if err := a.Err(); err != nil {
		return nil, err
	}
	if dims.Version != world.CurrentVersion {
		cond := &warning.VersionMismatchError{Declared: dims.Version, Supported: world.CurrentVersion, At: start.Line}
		if err := s.warner.Handle(cond); err != nil {
			return nil, err
		}
		dims.Version = world.CurrentVersion
	}

	r := &mapReader{s: s, m: world.NewMap(dims, turn), state: outsideMap}
	r.enter(inMap)
	for r.state != closedMap {
		ev, err := s.next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case stream.StartElement:
			err = r.start(ev)
		case stream.EndElement:
			r.end()
		case stream.Text:
			r.text(ev)
		}
		if err != nil {
			return nil, err
		}
	}
	if player != world.IndependentPlayerID {
		r.m.Players.SetCurrent(player)
	}
	return r.m, nil
}

func (r *mapReader) start(ev stream.Event) error {
	s := r.s
	if !ev.InNamespace() {
		return s.skip(ev)
	}
	parent := r.state.String()
	switch tag := ev.Tag(); tag {
	case "player":
		p, err := readPlayer(s, ev, parent)
		if err != nil {
			return err
		}
		r.m.AddPlayer(p.(world.Player))
		return nil
	case "row":
		if r.hasCursor() {
			return s.unexpected(parent, ev)
		}
		r.enter(inRow)
		return nil
	case "tile", "elsewhere":
		if r.hasCursor() {
			if err := s.unwanted(parent, ev, "locations do not nest"); err != nil {
				return err
			}
			return s.skip(ev)
		}
		return r.openLocation(ev)
	case "river", "lake", "mountain", "bookmark", "road":
		if !r.hasCursor() {
			if err := s.unwanted(parent, ev, "only meaningful inside a tile"); err != nil {
				return err
			}
			return s.skip(ev)
		}
		return r.locationDetail(ev)
	default:
		read, ok := s.tables.fixtures[tag]
		if !ok {
			return s.unexpected(parent, ev)
		}
		at := r.cursor
		if !r.hasCursor() {
			if err := s.unwanted(parent, ev, "fixture outside any tile"); err != nil {
				return err
			}
			at = world.Elsewhere
		}
		f, err := read(s, ev, parent)
		if err != nil {
			return err
		}
		r.m.AddFixture(at, f.(world.Fixture))
		return nil
	}
}

func (r *mapReader) openLocation(ev stream.Event) error {
	a := r.s.attrs(ev)
	p, next := world.Elsewhere, inElsewhere
	if ev.Tag() == "tile" {
		p, next = world.Point{Row: a.requiredInt("row"), Column: a.requiredInt("column")}, inTile
	}
	kind, _ := a.optionalDeprecated("kind", "type")
	if err := a.Err(); err != nil {
		return err
	}
	if kind != "" {
		t, err := world.ParseTileType(kind)
		if err != nil {
			return &warning.MissingPropertyError{Tag: ev.Tag(), Property: "kind", At: ev.Line, Cause: err}
		}
		r.m.SetBaseTerrain(p, t)
	}
	r.cursor = p
	r.enter(next)
	return nil
}

// locationDetail reads the tags that describe the location itself rather
// than something at it.
func (r *mapReader) locationDetail(ev stream.Event) error {
	s := r.s
	switch ev.Tag() {
	case "river", "lake":
		river, err := readRiver(s, ev, r.state.String())
		if err != nil {
			return err
		}
		r.m.AddRivers(r.cursor, river.(world.River))
		return nil
	case "mountain":
		r.m.SetMountainous(r.cursor, true)
	case "bookmark":
		a := s.attrs(ev)
		player := a.requiredInt("player")
		if err := a.Err(); err != nil {
			return err
		}
		r.m.AddBookmark(r.cursor, player)
	case "road":
		a := s.attrs(ev)
		dir := enum(a, "direction", world.ParseDirection)
		quality := a.requiredInt("quality")
		if err := a.Err(); err != nil {
			return err
		}
		r.m.SetRoadLevel(r.cursor, dir, quality)
	}
	return s.finish(ev)
}

func (r *mapReader) end() {
	if r.hasCursor() {
		r.cursor = world.Point{}
	}
	r.leave()
}

// text turns loose text inside a location into a note for an unspecified turn.
func (r *mapReader) text(ev stream.Event) {
	if !r.hasCursor() || ev.IsBlank() {
		return
	}
	r.m.AddFixture(r.cursor, &world.TextFixture{Text: strings.TrimSpace(ev.Text), Turn: world.UnspecifiedTurn})
}
