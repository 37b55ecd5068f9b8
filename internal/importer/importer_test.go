package importer_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/worldmap/internal/importer"
	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
	"github.com/cory-johannsen/worldmap/internal/mapio/xmlio"
	"github.com/cory-johannsen/worldmap/internal/scripting"
	"github.com/cory-johannsen/worldmap/internal/storage/postgres"
)

var _ importer.Archive = (*postgres.MapArchiveRepository)(nil)

const legacyDoc = `<?xml version="1.0" encoding="UTF-8"?>
<view xmlns="https://shinecycle.com/strategicprimer" current_player="1" current_turn="4">
	<map version="2" rows="2" columns="2">
		<player number="1" code_name="Ann" />
		<row index="0">
			<tile row="0" column="0" type="plains">
				<animal kind="wolf" traces="" />
				<hill id="1" />
			</tile>
		</row>
	</map>
</view>
`

func docWithTurn(turn int) string {
	return strings.Replace(legacyDoc, `current_turn="4"`, fmt.Sprintf(`current_turn="%d"`, turn), 1)
}

func writeSource(t testing.TB, dir string, docs map[string]string) {
	t.Helper()
	for name, body := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
}

type recordingArchive struct {
	saved []string
}

func (a *recordingArchive) Save(_ context.Context, name string, turn int, dialect string, document []byte) error {
	a.saved = append(a.saved, fmt.Sprintf("%s@%d/%s/%t", name, turn, dialect, len(document) > 0))
	return nil
}

func newImporter(opts importer.Options) *importer.Importer {
	return importer.New(importer.NewDirSource(), opts, zap.NewNop())
}

func TestImporter_Run_WritesNormalizedOutputs(t *testing.T) {
	srcDir, outDir := t.TempDir(), t.TempDir()
	writeSource(t, srcDir, map[string]string{"Turn Four.xml": legacyDoc, "notes.txt": "ignored"})

	summary, err := newImporter(importer.Options{Policy: warning.Collect, Dialect: xmlio.DialectCanonical}).
		Run(context.Background(), srcDir, outDir)
	require.NoError(t, err)
	require.Len(t, summary.Documents, 1)

	res := summary.Documents[0]
	assert.Equal(t, "turn_four", res.Name)
	assert.Equal(t, 4, res.Turn)
	assert.Equal(t, 1, res.Conditions[string(warning.KindDeprecatedProperty)])

	out, err := os.ReadFile(filepath.Join(outDir, "turn_four.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `kind="plains"`)
	assert.NotContains(t, string(out), `type="plains"`)

	data, err := os.ReadFile(filepath.Join(outDir, "turn_four.report.yaml"))
	require.NoError(t, err)
	report, err := warning.ParseReport(data)
	require.NoError(t, err)
	assert.Equal(t, "collect", report.Policy)
	require.Len(t, report.Conditions, 1)
	assert.Equal(t, 6, report.Conditions[0].Line)

	data, err = os.ReadFile(filepath.Join(outDir, "summary.yaml"))
	require.NoError(t, err)
	var onDisk importer.Summary
	require.NoError(t, yaml.Unmarshal(data, &onDisk))
	assert.Equal(t, *summary, onDisk)
}

func TestImporter_Run_EmptyJobsAndSkillsAreDropped(t *testing.T) {
	srcDir, outDir := t.TempDir(), t.TempDir()
	doc := strings.Replace(legacyDoc, `<hill id="1" />`, `<hill id="1" />
				<unit owner="1" kind="smiths" name="Forge" id="2">
					<worker name="Hal" id="3">
						<job name="smith" level="1"><skill name="x" level="0" hours="0" /></job>
						<job name="idle" level="0" />
					</worker>
				</unit>`, 1)
	writeSource(t, srcDir, map[string]string{"a.xml": doc})

	summary, err := newImporter(importer.Options{Policy: warning.Collect, Dialect: xmlio.DialectCanonical}).
		Run(context.Background(), srcDir, outDir)
	require.NoError(t, err)
	require.Len(t, summary.Documents, 1)

	out, err := os.ReadFile(filepath.Join(outDir, "a.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `name="smith"`)
	assert.NotContains(t, string(out), `name="idle"`)
	assert.NotContains(t, string(out), "<skill")
}

func TestImporter_Run_StrictSourceFails(t *testing.T) {
	srcDir := t.TempDir()
	writeSource(t, srcDir, map[string]string{"a.xml": legacyDoc})

	_, err := newImporter(importer.Options{Policy: warning.Strict}).Run(context.Background(), srcDir, t.TempDir())
	var dep *warning.DeprecatedPropertyError
	assert.ErrorAs(t, err, &dep)
}

func TestImporter_Run_MalformedDocument(t *testing.T) {
	srcDir := t.TempDir()
	writeSource(t, srcDir, map[string]string{"broken.xml": `<view><map version="2"`})

	_, err := newImporter(importer.Options{Policy: warning.Collect}).Run(context.Background(), srcDir, t.TempDir())
	assert.ErrorContains(t, err, `document "broken"`)
}

func TestImporter_Run_AppliesFilter(t *testing.T) {
	srcDir, outDir := t.TempDir(), t.TempDir()
	writeSource(t, srcDir, map[string]string{"a.xml": legacyDoc})

	filter, err := scripting.NewFilter("no-tracks.lua", `function keep(f) return f.type ~= "tracks" end`, 0, nil)
	require.NoError(t, err)
	defer filter.Close()

	summary, err := newImporter(importer.Options{Policy: warning.Silent, Dialect: xmlio.DialectLegacy, Filter: filter}).
		Run(context.Background(), srcDir, outDir)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Documents[0].Removed)
	assert.Equal(t, "no-tracks.lua", summary.Filter)

	out, err := os.ReadFile(filepath.Join(outDir, "a.xml"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "traces")
	assert.Contains(t, string(out), `<hill id="1" />`)
}

func TestImporter_Run_Archives(t *testing.T) {
	srcDir := t.TempDir()
	writeSource(t, srcDir, map[string]string{"b.xml": docWithTurn(9), "a.xml": docWithTurn(3)})

	archive := &recordingArchive{}
	summary, err := newImporter(importer.Options{Policy: warning.Collect, Archive: archive}).
		Run(context.Background(), srcDir, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"a@3/canonical/true", "b@9/canonical/true"}, archive.saved)
	assert.True(t, summary.Documents[1].Archived)
}

func TestImporter_Run_InvalidSourceDir(t *testing.T) {
	_, err := newImporter(importer.Options{}).Run(context.Background(), "/nonexistent/dir", t.TempDir())
	require.Error(t, err)
}

func TestImporter_Run_Cancelled(t *testing.T) {
	srcDir := t.TempDir()
	writeSource(t, srcDir, map[string]string{"a.xml": legacyDoc})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newImporter(importer.Options{Policy: warning.Collect}).Run(ctx, srcDir, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDirSource_RejectsCollidingNames(t *testing.T) {
	srcDir := t.TempDir()
	writeSource(t, srcDir, map[string]string{"North March.xml": legacyDoc, "north-march.xml": legacyDoc})
	_, err := importer.NewDirSource().Documents(srcDir)
	assert.ErrorContains(t, err, "north_march")
}

func TestDirSource_EmptyDirectory(t *testing.T) {
	_, err := importer.NewDirSource().Documents(t.TempDir())
	assert.Error(t, err)
}

// TestImporter_Run_NDocumentsProduceNOutputs checks that N source documents
// produce N normalized documents, N reports and one summary.
func TestImporter_Run_NDocumentsProduceNOutputs(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(rt, "numDocs")

		srcDir, outDir := t.TempDir(), t.TempDir()
		docs := make(map[string]string, n)
		for i := 0; i < n; i++ {
			docs[fmt.Sprintf("map%d.xml", i)] = docWithTurn(i)
		}
		writeSource(t, srcDir, docs)

		summary, err := newImporter(importer.Options{Policy: warning.Collect}).Run(context.Background(), srcDir, outDir)
		if err != nil {
			rt.Fatalf("Run: %v", err)
		}
		if len(summary.Documents) != n {
			rt.Fatalf("expected %d results, got %d", n, len(summary.Documents))
		}
		entries, err := os.ReadDir(outDir)
		if err != nil {
			rt.Fatalf("ReadDir: %v", err)
		}
		if len(entries) != 2*n+1 {
			rt.Fatalf("expected %d output files, got %d", 2*n+1, len(entries))
		}
	})
}
