package xmlio

import (
	"fmt"
	"strconv"

	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/idreg"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
)

// attrReader reads the attributes of one start tag. The first failure is
// kept and every later call becomes a no-op returning the zero value, so
// a construct reader can read all its attributes and check Err once.
type attrReader struct {
	s   *session
	ev  stream.Event
	err error
}

func (s *session) attrs(ev stream.Event) *attrReader {
	return &attrReader{s: s, ev: ev}
}

// Err returns the first error encountered.
func (a *attrReader) Err() error { return a.err }

func (a *attrReader) has(name string) bool {
	_, ok := a.ev.Attr(name)
	return ok
}

func (a *attrReader) missing(name string, cause error) *warning.MissingPropertyError {
	return &warning.MissingPropertyError{Tag: a.ev.Tag(), Property: name, At: a.ev.Line, Cause: cause}
}

// handle routes a recoverable condition and records it if escalated.
func (a *attrReader) handle(cond error) {
	if a.err == nil {
		a.err = a.s.warner.Handle(cond)
	}
}

func (a *attrReader) required(name string) string {
	if a.err != nil {
		return ""
	}
	v, ok := a.ev.Attr(name)
	if !ok {
		a.err = a.missing(name, nil)
	}
	return v
}

func (a *attrReader) optional(name, def string) string {
	if v, ok := a.ev.Attr(name); ok {
		return v
	}
	return def
}

// soft returns the attribute, or def after reporting a missing property.
func (a *attrReader) soft(name, def string) string {
	if a.err != nil {
		return def
	}
	if v, ok := a.ev.Attr(name); ok {
		return v
	}
	a.handle(a.missing(name, nil))
	return def
}

// deprecated prefers the current attribute name and falls back to the
// superseded one with a deprecation condition. Missing both is fatal.
func (a *attrReader) deprecated(preferred, old string) string {
	v, ok := a.optionalDeprecated(preferred, old)
	if !ok && a.err == nil {
		a.err = a.missing(preferred, nil)
	}
	return v
}

// optionalDeprecated is deprecated without the requirement that either be present.
func (a *attrReader) optionalDeprecated(preferred, old string) (string, bool) {
	if a.err != nil {
		return "", false
	}
	if v, ok := a.ev.Attr(preferred); ok {
		return v, true
	}
	if v, ok := a.ev.Attr(old); ok {
		a.handle(&warning.DeprecatedPropertyError{Tag: a.ev.Tag(), Old: old, Preferred: preferred, At: a.ev.Line})
		return v, true
	}
	return "", false
}

func (a *attrReader) parseInt(name, raw string) int {
	n, err := idreg.ParseInt(raw)
	if err != nil && a.err == nil {
		a.err = a.missing(name, err)
	}
	return n
}

func (a *attrReader) requiredInt(name string) int {
	raw := a.required(name)
	if a.err != nil {
		return 0
	}
	return a.parseInt(name, raw)
}

func (a *attrReader) optionalInt(name string, def int) int {
	raw, ok := a.ev.Attr(name)
	if !ok || a.err != nil {
		return def
	}
	return a.parseInt(name, raw)
}

func (a *attrReader) parseFloat(name, raw string) float64 {
	f, err := idreg.ParseFloat(raw)
	if err != nil && a.err == nil {
		a.err = a.missing(name, err)
	}
	return f
}

func (a *attrReader) requiredFloat(name string) float64 {
	raw := a.required(name)
	if a.err != nil {
		return 0
	}
	return a.parseFloat(name, raw)
}

func (a *attrReader) optionalFloat(name string, def float64) float64 {
	raw, ok := a.ev.Attr(name)
	if !ok || a.err != nil {
		return def
	}
	return a.parseFloat(name, raw)
}

func (a *attrReader) parseBool(name, raw string) bool {
	b, err := strconv.ParseBool(raw)
	if err != nil && a.err == nil {
		a.err = a.missing(name, fmt.Errorf("parsing %q as a boolean: %w", raw, err))
	}
	return b
}

func (a *attrReader) requiredBool(name string) bool {
	raw := a.required(name)
	if a.err != nil {
		return false
	}
	return a.parseBool(name, raw)
}

func (a *attrReader) optionalBool(name string, def bool) bool {
	raw, ok := a.ev.Attr(name)
	if !ok || a.err != nil {
		return def
	}
	return a.parseBool(name, raw)
}

// cultivated reads the "cultivated" flag, accepting its deprecated negation "wild".
func (a *attrReader) cultivated() bool {
	if a.err != nil {
		return false
	}
	if a.has("cultivated") {
		return a.requiredBool("cultivated")
	}
	if a.has("wild") {
		a.handle(&warning.DeprecatedPropertyError{Tag: a.ev.Tag(), Old: "wild", Preferred: "cultivated", At: a.ev.Line})
		return !a.requiredBool("wild")
	}
	a.err = a.missing("cultivated", nil)
	return false
}

// id returns the tag's ID, registering or generating it.
func (a *attrReader) id() int {
	if a.err != nil {
		return 0
	}
	raw, ok := a.ev.Attr("id")
	id, err := a.s.ids.GetOrGenerate(raw, ok, a.ev.Tag(), a.ev.Line)
	a.err = err
	return id
}

// owner returns the owning player's ID, or the independent player after a
// missing-property condition.
func (a *attrReader) owner() int {
	if a.err != nil {
		return world.IndependentPlayerID
	}
	if !a.has("owner") {
		a.handle(a.missing("owner", nil))
		return world.IndependentPlayerID
	}
	return a.requiredInt("owner")
}

func (a *attrReader) image() string    { return a.optional("image", "") }
func (a *attrReader) portrait() string { return a.optional("portrait", "") }

// enum parses a required attribute with parse, reporting failures as an
// invalid property.
func enum[T any](a *attrReader, name string, parse func(string) (T, error)) T {
	var zero T
	raw := a.required(name)
	if a.err != nil {
		return zero
	}
	v, err := parse(raw)
	if err != nil {
		a.err = a.missing(name, err)
		return zero
	}
	return v
}
