package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document is one map document found by a Source.
type Document struct {
	// Name is the stable identifier used for output files and the archive.
	Name string
	// Path is the document's location on disk.
	Path string
}

// Source discovers the map documents to normalize.
//
// Precondition: sourceDir must exist and contain the expected layout.
// Postcondition: returns the documents in a deterministic order, or a non-nil error.
type Source interface {
	Documents(sourceDir string) ([]Document, error)
}

var _ Source = (*DirSource)(nil)

// DirSource lists the *.xml files directly inside a directory.
type DirSource struct{}

// NewDirSource constructs a DirSource.
func NewDirSource() *DirSource { return &DirSource{} }

// Documents returns every regular *.xml file in sourceDir, sorted by name.
//
// Postcondition: returns at least one Document, or a non-nil error; two files
// whose names normalize to the same identifier are rejected.
func (s *DirSource) Documents(sourceDir string) ([]Document, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", sourceDir, err)
	}

	var docs []Document
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			continue
		}
		name := NameToID(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		if name == "" {
			return nil, fmt.Errorf("document %q has no usable name", e.Name())
		}
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("documents %q and %q both normalize to %q", prev, e.Name(), name)
		}
		seen[name] = e.Name()
		docs = append(docs, Document{Name: name, Path: filepath.Join(sourceDir, e.Name())})
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no map documents in %s", sourceDir)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}
