// Package importer normalizes batches of map documents: each document is
// read leniently, optionally filtered, written in one dialect and re-read
// strictly before the output is kept.
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/worldmap/internal/game/world"
	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
	"github.com/cory-johannsen/worldmap/internal/mapio/xmlio"
	"github.com/cory-johannsen/worldmap/internal/observability"
	"github.com/cory-johannsen/worldmap/internal/scripting"
)

// ErrRoundTrip is returned when a normalized document does not re-read to
// the map it was written from.
var ErrRoundTrip = errors.New("normalized document does not match its source map")

// Archive stores normalized documents. *postgres.MapArchiveRepository
// satisfies it.
type Archive interface {
	Save(ctx context.Context, name string, turn int, dialect string, document []byte) error
}

// Options configures an Importer.
type Options struct {
	// Policy governs the lenient first read. Strict re-reads always use warning.Strict.
	Policy warning.Policy
	// Dialect is the output dialect.
	Dialect xmlio.Dialect
	// Filter, when non-nil, runs over every map before it is written.
	Filter *scripting.Filter
	// Archive, when non-nil, receives every normalized document.
	Archive Archive
}

// Result describes one normalized document.
type Result struct {
	Name       string         `yaml:"name"`
	Source     string         `yaml:"source"`
	Output     string         `yaml:"output"`
	Report     string         `yaml:"report"`
	Turn       int            `yaml:"turn"`
	Conditions map[string]int `yaml:"conditions,omitempty"`
	Removed    int            `yaml:"removed,omitempty"`
	Archived   bool           `yaml:"archived,omitempty"`
}

// Summary lists the results of one Run, in document order.
type Summary struct {
	Dialect   string   `yaml:"dialect"`
	Policy    string   `yaml:"policy"`
	Filter    string   `yaml:"filter,omitempty"`
	Documents []Result `yaml:"documents"`
}

// Importer orchestrates normalization from a Source to an output directory.
type Importer struct {
	source Source
	reader *xmlio.Reader
	writer *xmlio.Writer
	opts   Options
	logger *zap.Logger
}

// New constructs an Importer backed by the given Source.
//
// Precondition: source must be non-nil. logger may be nil.
// Postcondition: returns a non-nil Importer.
func New(source Source, opts Options, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		source: source,
		reader: xmlio.NewReader(logger),
		writer: xmlio.NewWriter(opts.Dialect),
		opts:   opts,
		logger: logger,
	}
}

// Run normalizes every document in sourceDir into outputDir. For each
// document <name> it writes <name>.xml and <name>.report.yaml; a
// summary.yaml covering the whole run is written last.
//
// Precondition: sourceDir must satisfy the source's layout requirements;
// outputDir must exist or be creatable.
// Postcondition: returns the summary, or the first error. Documents
// processed before the error keep their outputs.
func (imp *Importer) Run(ctx context.Context, sourceDir, outputDir string) (*Summary, error) {
	done := observability.Timed(imp.logger, "import", zap.String("source", sourceDir))
	summary, err := imp.run(ctx, sourceDir, outputDir)
	done(err)
	return summary, err
}

func (imp *Importer) run(ctx context.Context, sourceDir, outputDir string) (*Summary, error) {
	docs, err := imp.source.Documents(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("loading source: %w", err)
	}
	imp.logger.Info("documents found", zap.Int("count", len(docs)))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	summary := &Summary{
		Dialect: imp.opts.Dialect.String(),
		Policy:  imp.opts.Policy.String(),
	}
	if imp.opts.Filter != nil {
		summary.Filter = imp.opts.Filter.Name()
	}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		res, err := imp.normalize(ctx, doc, outputDir)
		if err != nil {
			return summary, fmt.Errorf("document %q: %w", doc.Name, err)
		}
		summary.Documents = append(summary.Documents, *res)
	}

	data, err := yaml.Marshal(summary)
	if err != nil {
		return summary, fmt.Errorf("serialising summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "summary.yaml"), data, 0644); err != nil {
		return summary, fmt.Errorf("writing summary: %w", err)
	}
	return summary, nil
}

func (imp *Importer) normalize(ctx context.Context, doc Document, outputDir string) (*Result, error) {
	t0 := time.Now()
	logger := observability.ForDocument(imp.logger, doc.Path)

	h := warning.NewHandler(imp.opts.Policy, logger)
	m, err := imp.reader.ReadMapFile(ctx, doc.Path, h)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Name:   doc.Name,
		Source: doc.Path,
		Output: filepath.Join(outputDir, doc.Name+".xml"),
		Report: filepath.Join(outputDir, doc.Name+".report.yaml"),
		Turn:   m.CurrentTurn,
	}

	if imp.opts.Filter != nil {
		if res.Removed, err = imp.opts.Filter.Apply(ctx, m); err != nil {
			return nil, err
		}
	}

	// The writer omits empty jobs and skills; drop them first so the strict
	// re-read can be compared with m.
	if n := m.DropEmptyJobs(); n > 0 {
		logger.Debug("empty jobs dropped", zap.Int("jobs", n))
	}

	var buf bytes.Buffer
	if err := imp.writer.WriteMap(ctx, &buf, m); err != nil {
		return nil, fmt.Errorf("writing: %w", err)
	}
	if err := imp.validate(ctx, buf.Bytes(), m, logger); err != nil {
		return nil, err
	}

	if err := os.WriteFile(res.Output, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", res.Output, err)
	}
	report := h.Report(doc.Path)
	res.Conditions = report.Counts
	if err := writeReport(res.Report, report); err != nil {
		return nil, err
	}

	if imp.opts.Archive != nil {
		if err := imp.opts.Archive.Save(ctx, doc.Name, m.CurrentTurn, imp.opts.Dialect.String(), buf.Bytes()); err != nil {
			return nil, fmt.Errorf("archiving: %w", err)
		}
		res.Archived = true
	}

	logger.Info("document normalized",
		zap.String("output", res.Output),
		zap.Int("conditions", len(report.Conditions)),
		zap.Int("removed", res.Removed),
		zap.Duration("elapsed", time.Since(t0)),
	)
	return res, nil
}

// validate re-reads data strictly and checks it describes want.
func (imp *Importer) validate(ctx context.Context, data []byte, want *world.Map, logger *zap.Logger) error {
	strict := warning.NewHandler(warning.Strict, logger)
	got, err := imp.reader.ReadMap(ctx, bytes.NewReader(data), strict)
	if err != nil {
		return fmt.Errorf("strict re-read failed: %w", err)
	}
	if !got.Equals(want) {
		return ErrRoundTrip
	}
	return nil
}

func writeReport(path string, r *warning.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing report %s: %w", path, cerr)
		}
	}()
	return r.WriteYAML(f)
}
