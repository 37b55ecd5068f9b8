package warning

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"
)

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{Silent, Collect, Strict} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePolicy("loud")
	assert.Error(t, err)
}

func TestHandler_Silent(t *testing.T) {
	h := NewHandler(Silent, nil)
	assert.NoError(t, h.Handle(&DuplicateIDError{ID: 4, At: 2}))
	assert.Empty(t, h.Conditions())
}

func TestHandler_CollectRecordsAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	h := NewHandler(Collect, zap.New(core))

	require.NoError(t, h.Handle(&DeprecatedPropertyError{Tag: "unit", Old: "type", Preferred: "kind", At: 7}))
	require.NoError(t, h.Handle(&DuplicateIDError{ID: 3, At: 9}))

	assert.Len(t, h.Conditions(), 2)
	assert.Equal(t, 1, h.Count(KindDuplicateID))
	assert.Equal(t, 0, h.Count(KindMissingChild))

	entries := logs.All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, h.SessionID(), fields["session"])
	assert.Equal(t, string(KindDeprecatedProperty), fields["kind"])
	assert.EqualValues(t, 7, fields["line"])
}

func TestHandler_StrictReturnsCondition(t *testing.T) {
	h := NewHandler(Strict, nil)
	cond := &MissingPropertyError{Tag: "town", Property: "name", At: 3}
	err := h.Handle(cond)
	var got *MissingPropertyError
	require.True(t, errors.As(err, &got))
	assert.Same(t, cond, got)
	assert.Empty(t, h.Conditions())
}

func TestHandler_ConditionsIsACopy(t *testing.T) {
	h := NewHandler(Collect, nil)
	require.NoError(t, h.Handle(&DuplicateIDError{ID: 1}))
	got := h.Conditions()
	got[0] = nil
	assert.NotNil(t, h.Conditions()[0])
}

func TestHandler_SessionIDsDiffer(t *testing.T) {
	assert.NotEqual(t, NewHandler(Collect, nil).SessionID(), NewHandler(Collect, nil).SessionID())
}

func TestReport_RoundTripsThroughYAML(t *testing.T) {
	h := NewHandler(Collect, nil)
	require.NoError(t, h.Handle(&UnsupportedTagError{Parent: "tile", Tag: "sandbar", At: 12, Retired: true}))
	require.NoError(t, h.Handle(&UnsupportedTagError{Parent: "tile", Tag: "cave", At: 14, Retired: true}))
	require.NoError(t, h.Handle(errors.New("something else")))

	report := h.Report("maps/world.xml")
	assert.Equal(t, []string{"other", string(KindUnsupportedTag)}, report.Kinds())
	assert.Equal(t, 2, report.Counts[string(KindUnsupportedTag)])

	var buf bytes.Buffer
	require.NoError(t, report.WriteYAML(&buf))
	parsed, err := ParseReport(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, report, parsed)
}

func TestUnsupportedElementError_Suggestion(t *testing.T) {
	err := &UnsupportedElementError{Parent: "tile", Tag: "forrest", At: 3, Suggestion: "forest"}
	assert.Contains(t, err.Error(), "did you mean <forest>?")
	assert.NotContains(t, (&UnsupportedElementError{Parent: "tile", Tag: "zzz"}).Error(), "did you mean")
}

func TestHandler_CountMatchesRecorded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		h := NewHandler(Collect, nil)
		dups := rapid.IntRange(0, 20).Draw(rt, "dups")
		deps := rapid.IntRange(0, 20).Draw(rt, "deps")
		for i := 0; i < dups; i++ {
			if err := h.Handle(&DuplicateIDError{ID: i}); err != nil {
				rt.Fatal(err)
			}
		}
		for i := 0; i < deps; i++ {
			if err := h.Handle(&DeprecatedPropertyError{Tag: "unit", Old: "type", Preferred: "kind", At: i}); err != nil {
				rt.Fatal(err)
			}
		}
		if h.Count(KindDuplicateID) != dups || h.Count(KindDeprecatedProperty) != deps {
			rt.Fatalf("counts %d/%d, want %d/%d", h.Count(KindDuplicateID), h.Count(KindDeprecatedProperty), dups, deps)
		}
		if len(h.Conditions()) != dups+deps {
			rt.Fatalf("recorded %d conditions, want %d", len(h.Conditions()), dups+deps)
		}
	})
}
