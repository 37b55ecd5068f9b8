package xmlio

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/cory-johannsen/worldmap/internal/mapio/idreg"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
)

// session is the private state of one read. Nothing in it is shared with
// other reads.
type session struct {
	ctx    context.Context
	cursor *stream.Cursor
	warner *warning.Handler
	ids    *idreg.Registry
	tables *tables
}

func newSession(ctx context.Context, src io.Reader, h *warning.Handler, t *tables) *session {
	return &session{
		ctx:    ctx,
		cursor: stream.NewCursor(src),
		warner: h,
		ids:    idreg.New(h),
		tables: t,
	}
}

// next returns the next event, honouring cancellation. Running out of
// events inside an element is a malformed document.
func (s *session) next() (stream.Event, error) {
	if err := s.ctx.Err(); err != nil {
		return stream.Event{}, err
	}
	ev, err := s.cursor.Next()
	if errors.Is(err, io.EOF) {
		return ev, &warning.MalformedDocumentError{Cause: errors.New("document ended inside an element")}
	}
	return ev, err
}

// root returns the document's first element.
func (s *session) root() (stream.Event, error) {
	for {
		ev, err := s.cursor.Next()
		if err != nil {
			return ev, err
		}
		if ev.Kind == stream.StartElement {
			return ev, nil
		}
	}
}

// skip consumes the rest of start's subtree without inspecting it.
func (s *session) skip(start stream.Event) error {
	depth := 1
	for depth > 0 {
		ev, err := s.next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case stream.StartElement:
			depth++
		case stream.EndElement:
			depth--
		}
	}
	return nil
}

// unexpected deals with a child element the current construct has no use
// for. Foreign elements are skipped silently, reserved tags and known tags
// in the wrong place are reported through the handler and skipped, and
// anything else is fatal.
func (s *session) unexpected(parent string, child stream.Event) error {
	if !child.InNamespace() {
		return s.skip(child)
	}
	tag := child.Tag()
	if retired, ok := reservedTags[tag]; ok {
		if err := s.warner.Handle(&warning.UnsupportedTagError{Parent: parent, Tag: tag, At: child.Line, Retired: retired}); err != nil {
			return err
		}
		return s.skip(child)
	}
	if s.tables.isKnown(tag) {
		if err := s.unwanted(parent, child, ""); err != nil {
			return err
		}
		return s.skip(child)
	}
	return &warning.UnsupportedElementError{Parent: parent, Tag: tag, At: child.Line, Suggestion: s.tables.suggest(tag)}
}

// unwanted reports child as out of place under parent. It does not
// consume anything.
func (s *session) unwanted(parent string, child stream.Event, reason string) error {
	return s.warner.Handle(&warning.UnwantedChildError{Parent: parent, Child: child.Tag(), At: child.Line, Reason: reason})
}

// finish consumes events through start's end tag. Child elements are
// handed to unexpected; text is ignored.
func (s *session) finish(start stream.Event) error {
	for {
		ev, err := s.next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case stream.StartElement:
			if err := s.unexpected(start.Tag(), ev); err != nil {
				return err
			}
		case stream.EndElement:
			return nil
		}
	}
}

// text collects the trimmed character data up to start's end tag.
func (s *session) text(start stream.Event) (string, error) {
	var b strings.Builder
	for {
		ev, err := s.next()
		if err != nil {
			return "", err
		}
		switch ev.Kind {
		case stream.StartElement:
			if err := s.unexpected(start.Tag(), ev); err != nil {
				return "", err
			}
		case stream.Text:
			b.WriteString(ev.Text)
		case stream.EndElement:
			return strings.TrimSpace(b.String()), nil
		}
	}
}
