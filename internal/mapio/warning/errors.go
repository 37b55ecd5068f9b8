package warning

import (
	"fmt"
	"strings"
)

// Kind classifies a format condition.
type Kind string

// Condition kinds.
const (
	KindMissingProperty    Kind = "missing_property"
	KindMissingChild       Kind = "missing_child"
	KindUnwantedChild      Kind = "unwanted_child"
	KindUnsupportedTag     Kind = "unsupported_tag"
	KindDeprecatedProperty Kind = "deprecated_property"
	KindDuplicateID        Kind = "duplicate_id"
	KindVersionMismatch    Kind = "version_mismatch"
	KindMalformedDocument  Kind = "malformed_document"
	KindUnsupportedElement Kind = "unsupported_element"
)

// Condition is implemented by every error in the format taxonomy.
type Condition interface {
	error
	Kind() Kind
	// Line is the document line the condition was detected on, or 0.
	Line() int
}

// MissingPropertyError reports a required attribute that is absent or has
// an unparseable value.
type MissingPropertyError struct {
	Tag      string
	Property string
	At       int
	Cause    error
}

func (e *MissingPropertyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("line %d: <%s> has invalid %q property: %v", e.At, e.Tag, e.Property, e.Cause)
	}
	return fmt.Sprintf("line %d: <%s> is missing required %q property", e.At, e.Tag, e.Property)
}

func (e *MissingPropertyError) Kind() Kind    { return KindMissingProperty }
func (e *MissingPropertyError) Line() int     { return e.At }
func (e *MissingPropertyError) Unwrap() error { return e.Cause }

// MissingChildError reports a required child element that never appeared.
type MissingChildError struct {
	Tag   string
	Child string
	At    int
}

func (e *MissingChildError) Error() string {
	return fmt.Sprintf("line %d: <%s> is missing required <%s> child", e.At, e.Tag, e.Child)
}

func (e *MissingChildError) Kind() Kind { return KindMissingChild }
func (e *MissingChildError) Line() int  { return e.At }

// UnwantedChildError reports an element in a position the grammar forbids.
type UnwantedChildError struct {
	Parent string
	Child  string
	At     int
	Reason string
}

func (e *UnwantedChildError) Error() string {
	msg := fmt.Sprintf("line %d: unexpected <%s> inside <%s>", e.At, e.Child, e.Parent)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *UnwantedChildError) Kind() Kind { return KindUnwantedChild }
func (e *UnwantedChildError) Line() int  { return e.At }

// UnsupportedTagError reports a reserved or retired tag that was skipped.
type UnsupportedTagError struct {
	Parent string
	Tag    string
	At     int
	// Retired is true for tags from older format versions and false for
	// tags reserved for future ones.
	Retired bool
}

func (e *UnsupportedTagError) Error() string {
	when := "future"
	if e.Retired {
		when = "retired"
	}
	return fmt.Sprintf("line %d: skipping %s tag <%s> inside <%s>", e.At, when, e.Tag, e.Parent)
}

func (e *UnsupportedTagError) Kind() Kind { return KindUnsupportedTag }
func (e *UnsupportedTagError) Line() int  { return e.At }

// DeprecatedPropertyError reports use of a superseded attribute name.
type DeprecatedPropertyError struct {
	Tag       string
	Old       string
	Preferred string
	At        int
}

func (e *DeprecatedPropertyError) Error() string {
	return fmt.Sprintf("line %d: <%s> uses deprecated %q property; use %q instead", e.At, e.Tag, e.Old, e.Preferred)
}

func (e *DeprecatedPropertyError) Kind() Kind { return KindDeprecatedProperty }
func (e *DeprecatedPropertyError) Line() int  { return e.At }

// DuplicateIDError reports an explicit ID that was already registered.
type DuplicateIDError struct {
	ID int
	At int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("line %d: duplicate ID %d", e.At, e.ID)
}

func (e *DuplicateIDError) Kind() Kind { return KindDuplicateID }
func (e *DuplicateIDError) Line() int  { return e.At }

// VersionMismatchError reports a document declaring an unsupported format version.
type VersionMismatchError struct {
	Declared  int
	Supported int
	At        int
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("line %d: map declares format version %d; only version %d is supported", e.At, e.Declared, e.Supported)
}

func (e *VersionMismatchError) Kind() Kind { return KindVersionMismatch }
func (e *VersionMismatchError) Line() int  { return e.At }

// MalformedDocumentError reports an input that is not a well-formed document.
// It is always fatal.
type MalformedDocumentError struct {
	At    int
	Cause error
}

func (e *MalformedDocumentError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("line %d: malformed document", e.At)
	}
	return fmt.Sprintf("line %d: malformed document: %v", e.At, e.Cause)
}

func (e *MalformedDocumentError) Kind() Kind    { return KindMalformedDocument }
func (e *MalformedDocumentError) Line() int     { return e.At }
func (e *MalformedDocumentError) Unwrap() error { return e.Cause }

// UnsupportedElementError reports an element in the map namespace that no
// reader understands. It is always fatal.
type UnsupportedElementError struct {
	Parent     string
	Tag        string
	At         int
	Suggestion string
}

func (e *UnsupportedElementError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %d: unknown element <%s> inside <%s>", e.At, e.Tag, e.Parent)
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean <%s>?)", e.Suggestion)
	}
	return b.String()
}

func (e *UnsupportedElementError) Kind() Kind { return KindUnsupportedElement }
func (e *UnsupportedElementError) Line() int  { return e.At }
