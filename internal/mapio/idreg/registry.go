// Package idreg issues and deduplicates fixture IDs for one document.
package idreg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
)

// Registry tracks every ID seen or issued while reading one document.
//
// Invariant: next is the smallest non-negative integer not in used.
type Registry struct {
	used    map[int]struct{}
	next    int
	handler *warning.Handler
}

// New returns an empty Registry reporting duplicates through handler.
//
// Precondition: handler must be non-nil.
func New(handler *warning.Handler) *Registry {
	return &Registry{used: make(map[int]struct{}), handler: handler}
}

// Register records an ID read from the document.
//
// Postcondition: Returns id. If id was already registered a DuplicateIDError
// is routed through the handler; the first registration stands and a
// non-nil error means the handler escalated it.
func (r *Registry) Register(id, line int) (int, error) {
	if _, dup := r.used[id]; dup {
		return id, r.handler.Handle(&warning.DuplicateIDError{ID: id, At: line})
	}
	r.used[id] = struct{}{}
	r.advance()
	return id, nil
}

// Generate issues the smallest unused non-negative ID.
//
// Postcondition: the returned ID is registered.
func (r *Registry) Generate() int {
	id := r.next
	r.used[id] = struct{}{}
	r.advance()
	return id
}

// GetOrGenerate registers the tag's explicit ID, or generates one when the
// tag has none. A missing ID is reported as a missing property.
//
// Precondition: raw is the attribute value and present says whether the
// attribute was on the tag.
// Postcondition: Returns the ID to use, or a fatal error.
func (r *Registry) GetOrGenerate(raw string, present bool, tag string, line int) (int, error) {
	if !present {
		if err := r.handler.Handle(&warning.MissingPropertyError{Tag: tag, Property: "id", At: line}); err != nil {
			return 0, err
		}
		return r.Generate(), nil
	}
	id, err := ParseInt(raw)
	if err != nil {
		return 0, &warning.MissingPropertyError{Tag: tag, Property: "id", At: line, Cause: err}
	}
	return r.Register(id, line)
}

// IsRegistered reports whether id has been seen or issued.
func (r *Registry) IsRegistered(id int) bool {
	_, ok := r.used[id]
	return ok
}

// Len returns the number of registered IDs.
func (r *Registry) Len() int {
	return len(r.used)
}

func (r *Registry) advance() {
	for {
		if _, ok := r.used[r.next]; !ok {
			return
		}
		r.next++
	}
}

// ParseInt parses a decimal integer that may contain comma grouping.
func ParseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return 0, fmt.Errorf("parsing %q as an integer: %w", s, err)
	}
	return n, nil
}

// ParseFloat parses a decimal number that may contain comma grouping.
func ParseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as a number: %w", s, err)
	}
	return f, nil
}
