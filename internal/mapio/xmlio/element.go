package xmlio

import (
	"bufio"
	"encoding/xml"
	"io"
	"sort"
	"strconv"
	"strings"
)

type attribute struct {
	name  string
	value string
}

// element is an output node. Attributes are kept in the order they were
// added; the dialect decides the order they are written in.
type element struct {
	tag      string
	attrs    []attribute
	text     string
	children []*element
}

func newElement(tag string) *element {
	return &element{tag: tag}
}

func (e *element) attr(name, value string) *element {
	e.attrs = append(e.attrs, attribute{name: name, value: value})
	return e
}

// attrUnless adds the attribute unless value equals its default.
func (e *element) attrUnless(name, value, def string) *element {
	if value == def {
		return e
	}
	return e.attr(name, value)
}

func (e *element) intAttr(name string, value int) *element {
	return e.attr(name, strconv.Itoa(value))
}

func (e *element) intUnless(name string, value, def int) *element {
	if value == def {
		return e
	}
	return e.intAttr(name, value)
}

func (e *element) floatAttr(name string, value float64) *element {
	return e.attr(name, strconv.FormatFloat(value, 'f', -1, 64))
}

func (e *element) floatUnless(name string, value, def float64) *element {
	if value == def {
		return e
	}
	return e.floatAttr(name, value)
}

func (e *element) boolAttr(name string, value bool) *element {
	return e.attr(name, strconv.FormatBool(value))
}

// flag adds name="true" when set and nothing otherwise.
func (e *element) flag(name string, set bool) *element {
	if !set {
		return e
	}
	return e.boolAttr(name, true)
}

func (e *element) image(value string) *element    { return e.attrUnless("image", value, "") }
func (e *element) portrait(value string) *element { return e.attrUnless("portrait", value, "") }

func (e *element) setText(text string) *element {
	e.text = text
	return e
}

func (e *element) add(children ...*element) *element {
	for _, c := range children {
		if c != nil {
			e.children = append(e.children, c)
		}
	}
	return e
}

// xmlWriter emits elements with tab indentation. The first write error is
// kept and later writes are skipped.
type xmlWriter struct {
	w       *bufio.Writer
	dialect Dialect
	err     error
}

func newXMLWriter(w io.Writer, d Dialect) *xmlWriter {
	return &xmlWriter{w: bufio.NewWriter(w), dialect: d}
}

func (x *xmlWriter) str(s string) {
	if x.err == nil {
		_, x.err = x.w.WriteString(s)
	}
}

func (x *xmlWriter) declaration() {
	x.str(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
}

func (x *xmlWriter) indent(depth int) {
	x.str(strings.Repeat("\t", depth))
}

func (x *xmlWriter) attrs(attrs []attribute) {
	ordered := attrs
	if x.dialect == DialectCanonical {
		ordered = append([]attribute(nil), attrs...)
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].name < ordered[j].name })
	}
	for _, a := range ordered {
		x.str(" " + a.name + `="`)
		x.escaped(a.value)
		x.str(`"`)
	}
}

// escaped writes s with markup characters escaped. Characters XML cannot
// carry at all are replaced with U+FFFD.
func (x *xmlWriter) escaped(s string) {
	if x.err == nil {
		x.err = xml.EscapeText(x.w, []byte(s))
	}
}

// open writes the start tag of e without closing it, for containers whose
// children are streamed.
func (x *xmlWriter) open(e *element, depth int) {
	x.indent(depth)
	x.str("<" + e.tag)
	x.attrs(e.attrs)
	x.str(">\n")
}

func (x *xmlWriter) close(tag string, depth int) {
	x.indent(depth)
	x.str("</" + tag + ">\n")
}

// element writes e and its subtree.
func (x *xmlWriter) element(e *element, depth int) {
	x.indent(depth)
	x.str("<" + e.tag)
	x.attrs(e.attrs)
	switch {
	case len(e.children) > 0:
		x.str(">\n")
		for _, c := range e.children {
			x.element(c, depth+1)
		}
		x.close(e.tag, depth)
	case e.text != "":
		x.str(">")
		x.escaped(e.text)
		x.str("</" + e.tag + ">\n")
	default:
		x.str(" />\n")
	}
}

func (x *xmlWriter) flush() error {
	if x.err != nil {
		return x.err
	}
	return x.w.Flush()
}
