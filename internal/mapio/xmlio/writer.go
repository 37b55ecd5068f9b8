package xmlio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
)

// Dialect selects how attributes are ordered on output.
type Dialect int

const (
	// DialectCanonical writes attributes sorted by name, so equal objects
	// always serialize to identical bytes.
	DialectCanonical Dialect = iota
	// DialectLegacy writes attributes in the order the format documents them.
	DialectLegacy
)

func (d Dialect) String() string {
	switch d {
	case DialectCanonical:
		return "canonical"
	case DialectLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// ParseDialect converts a configuration value to a Dialect.
//
// Postcondition: Returns a valid Dialect or a non-nil error.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "canonical", "":
		return DialectCanonical, nil
	case "legacy":
		return DialectLegacy, nil
	}
	return 0, fmt.Errorf("unknown writer dialect %q", s)
}

// Writer serializes maps and free-standing objects. It holds no per-call
// state and is safe for concurrent use.
type Writer struct {
	dialect Dialect
}

// NewWriter returns a Writer producing d.
func NewWriter(d Dialect) *Writer {
	return &Writer{dialect: d}
}

// Dialect returns the writer's dialect.
func (w *Writer) Dialect() Dialect { return w.dialect }

// WriteMap writes m as a complete document.
//
// Precondition: m must be non-nil.
// Postcondition: Returns nil or the first I/O error; ctx is checked between tiles.
func (w *Writer) WriteMap(ctx context.Context, out io.Writer, m *world.Map) error {
	x := newXMLWriter(out, w.dialect)
	x.declaration()
	if err := writeMap(ctx, x, m); err != nil {
		return err
	}
	return x.flush()
}

// WriteMapFile writes m to path, creating or truncating it.
func (w *Writer) WriteMapFile(ctx context.Context, path string, m *world.Map) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := w.WriteMap(ctx, f, m); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteObject writes obj as a complete document. obj may be a *world.Map
// or any construct ReadObject returns.
//
// Postcondition: Returns an error for types the format cannot represent.
func (w *Writer) WriteObject(ctx context.Context, out io.Writer, obj any) error {
	if m, ok := obj.(*world.Map); ok {
		return w.WriteMap(ctx, out, m)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e, err := objectElement(obj)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("cannot serialize nil %T", obj)
	}
	e.attrs = append([]attribute{{name: "xmlns", value: stream.Namespace}}, e.attrs...)
	x := newXMLWriter(out, w.dialect)
	x.declaration()
	x.element(e, 0)
	return x.flush()
}

// objectElement builds the element for any free-standing construct.
func objectElement(obj any) (*element, error) {
	switch o := obj.(type) {
	case world.Fixture:
		return fixtureElement(o), nil
	case world.UnitMember:
		return unitMemberElement(o), nil
	case world.FortressMember:
		return fortressMemberElement(o), nil
	case world.Player:
		return playerElement(o, true), nil
	case *world.Player:
		return playerElement(*o, true), nil
	case world.River:
		return riverElement(o), nil
	case *world.CommunityStats:
		return populationElement(o), nil
	case *world.Job:
		return newElement("job").attr("name", o.Name).intAttr("level", o.Level).add(skillElements(o.Skills)...), nil
	case *world.Skill:
		return newElement("skill").attr("name", o.Name).intAttr("level", o.Level).intAttr("hours", o.Hours), nil
	case *world.WorkerStats:
		return statsElement(o), nil
	}
	return nil, fmt.Errorf("cannot serialize %T", obj)
}

func skillElements(skills []*world.Skill) []*element {
	out := make([]*element, 0, len(skills))
	for _, sk := range skills {
		out = append(out, skillElement(sk))
	}
	return out
}

// fixtureElement is the write-side dispatch over every Fixture variant.
func fixtureElement(f world.Fixture) *element {
	switch f := f.(type) {
	case *world.Forest:
		return forestElement(f)
	case *world.Hill:
		return newElement("hill").intAttr("id", f.ID).image(f.Image)
	case *world.Oasis:
		return newElement("oasis").intAttr("id", f.ID).image(f.Image)
	case *world.Ground:
		return groundElement(f)
	case *world.Animal:
		return animalElement(f)
	case *world.AnimalTracks:
		return tracksElement(f)
	case *world.Immortal:
		return immortalElement(f)
	case *world.Grove:
		return groveElement(f)
	case *world.Meadow:
		return meadowElement(f)
	case *world.Mine:
		return mineElement(f)
	case *world.MineralVein:
		return mineralElement(f)
	case *world.Shrub:
		return shrubElement(f)
	case *world.StoneDeposit:
		return stoneElement(f)
	case *world.Cache:
		return cacheElement(f)
	case *world.TextFixture:
		return textElement(f)
	case *world.Portal:
		return portalElement(f)
	case *world.Adventure:
		return adventureElement(f)
	case *world.Town:
		return townElement(f)
	case *world.Village:
		return villageElement(f)
	case *world.Fortress:
		return fortressElement(f)
	case *world.Unit:
		return unitElement(f)
	default:
		panic(fmt.Sprintf("xmlio: unhandled fixture %T", f))
	}
}
