// Package stream turns an XML document into a forward-only sequence of
// start, end and text events.
package stream

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
)

// Namespace is the XML namespace of map documents. Elements with no
// namespace are treated as belonging to it.
const Namespace = "https://shinecycle.com/strategicprimer"

// EventKind distinguishes the three event types.
type EventKind int

// Event kinds.
const (
	StartElement EventKind = iota
	EndElement
	Text
)

// Event is one token of the document.
type Event struct {
	Kind  EventKind
	Name  xml.Name
	Attrs []xml.Attr
	Text  string
	Line  int
}

// Tag returns the lowercase local name of a start or end element.
func (e Event) Tag() string {
	return strings.ToLower(e.Name.Local)
}

// InNamespace reports whether the element belongs to the map namespace.
func (e Event) InNamespace() bool {
	return e.Name.Space == "" || e.Name.Space == Namespace
}

// Attr returns the value of the named attribute and whether it was present.
// Attributes in foreign namespaces are ignored.
func (e Event) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name && (a.Name.Space == "" || a.Name.Space == Namespace) {
			return a.Value, true
		}
	}
	return "", false
}

// IsBlank reports whether a text event holds only whitespace.
func (e Event) IsBlank() bool {
	return strings.TrimSpace(e.Text) == ""
}

// Cursor yields the events of one document. It cannot be restarted.
type Cursor struct {
	dec     *xml.Decoder
	started bool
}

// NewCursor wraps r.
//
// Precondition: r must be non-nil.
func NewCursor(r io.Reader) *Cursor {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	return &Cursor{dec: dec}
}

// Next returns the next event.
//
// Postcondition: Returns io.EOF after the last event of a well-formed
// document, or a *warning.MalformedDocumentError if the input is not well
// formed or ends before any element.
func (c *Cursor) Next() (Event, error) {
	for {
		tok, err := c.dec.Token()
		line, _ := c.dec.InputPos()
		if err != nil {
			if errors.Is(err, io.EOF) && c.started {
				return Event{}, io.EOF
			}
			if errors.Is(err, io.EOF) {
				return Event{}, &warning.MalformedDocumentError{At: line, Cause: errors.New("no root element")}
			}
			return Event{}, &warning.MalformedDocumentError{At: line, Cause: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			c.started = true
			return Event{Kind: StartElement, Name: t.Name, Attrs: t.Attr, Line: line}, nil
		case xml.EndElement:
			return Event{Kind: EndElement, Name: t.Name, Line: line}, nil
		case xml.CharData:
			if !c.started {
				continue
			}
			return Event{Kind: Text, Text: string(t), Line: line}, nil
		}
	}
}
