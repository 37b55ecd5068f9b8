// Package xmlio reads and writes strategic maps and their constructs in the
// map XML dialect.
//
// Format conditions found while reading are routed through a
// warning.Handler, whose policy decides whether they are ignored, collected
// or fatal. Writers produce no conditions.
package xmlio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/stream"
	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
)

// Reader parses map documents. Its dispatch tables are built once and only
// read afterwards, so one Reader may serve concurrent parses as long as
// each is given its own Handler.
type Reader struct {
	tables *tables
	logger *zap.Logger
}

// NewReader builds a Reader. A nil logger disables logging.
func NewReader(logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{tables: newTables(), logger: logger}
}

// ReadMap parses a complete map document from src.
//
// Precondition: h must be non-nil and not shared with a concurrent read.
// Postcondition: Returns the map, or the first fatal condition, I/O error
// or context error.
func (r *Reader) ReadMap(ctx context.Context, src io.Reader, h *warning.Handler) (*world.Map, error) {
	start := time.Now()
	s := newSession(ctx, src, h, r.tables)
	root, err := s.root()
	if err != nil {
		return nil, err
	}
	if !root.InNamespace() {
		return nil, &warning.UnsupportedElementError{Parent: "document", Tag: root.Tag(), At: root.Line}
	}
	m, err := s.readDocumentMap(root)
	if err != nil {
		return nil, err
	}
	r.mapRead(s, m, start)
	return m, nil
}

func (r *Reader) mapRead(s *session, m *world.Map, start time.Time) {
	r.logger.Debug("map read",
		zap.String("session", s.warner.SessionID()),
		zap.Int("rows", m.Dimensions.Rows),
		zap.Int("columns", m.Dimensions.Columns),
		zap.Int("ids", s.ids.Len()),
		zap.Int("conditions", len(s.warner.Conditions())),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// ReadMapFile parses the map document at path.
//
// Postcondition: the file is closed on every return path.
func (r *Reader) ReadMapFile(ctx context.Context, path string, h *warning.Handler) (m *world.Map, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	m, err = r.ReadMap(ctx, f, h)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return m, nil
}

// ReadObject parses a document whose root is a map, a view, or any
// free-standing construct: a fixture, unit member, player, river,
// population, job, skill or stats block.
//
// Postcondition: Returns a *world.Map, a world.Fixture, a world.UnitMember,
// a world.Player, a world.River, a *world.CommunityStats, a *world.Job, a
// *world.Skill or a *world.WorkerStats; or an error.
func (r *Reader) ReadObject(ctx context.Context, src io.Reader, h *warning.Handler) (any, error) {
	start := time.Now()
	s := newSession(ctx, src, h, r.tables)
	root, err := s.root()
	if err != nil {
		return nil, err
	}
	tag := root.Tag()
	if !root.InNamespace() {
		return nil, &warning.UnsupportedElementError{Parent: "document", Tag: tag, At: root.Line}
	}
	if tag == "map" || tag == "view" {
		m, err := s.readDocumentMap(root)
		if err != nil {
			return nil, err
		}
		r.mapRead(s, m, start)
		return m, nil
	}
	if retired, ok := reservedTags[tag]; ok {
		// A document holding nothing but a reserved construct has nothing to return.
		return nil, &warning.UnsupportedTagError{Parent: "document", Tag: tag, At: root.Line, Retired: retired}
	}
	read, ok := r.tables.objects[tag]
	if !ok {
		return nil, &warning.UnsupportedElementError{Parent: "document", Tag: tag, At: root.Line, Suggestion: r.tables.suggest(tag)}
	}
	obj, err := read(s, root, "document")
	if err != nil {
		return nil, err
	}
	if err := s.trailing(); err != nil {
		return nil, err
	}
	return obj, nil
}

// trailing checks that nothing but whitespace and comments follows the root.
func (s *session) trailing() error {
	for {
		ev, err := s.cursor.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if ev.Kind != stream.Text || !ev.IsBlank() {
			return &warning.MalformedDocumentError{At: ev.Line, Cause: errors.New("content after the root element")}
		}
	}
}
