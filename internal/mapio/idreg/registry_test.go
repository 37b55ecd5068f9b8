package idreg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/worldmap/internal/mapio/warning"
)

func TestRegistry_GenerateIsSmallestUnused(t *testing.T) {
	r := New(warning.NewHandler(warning.Collect, nil))
	_, err := r.Register(0, 1)
	require.NoError(t, err)
	_, err = r.Register(2, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Generate())
	assert.Equal(t, 3, r.Generate())
	assert.True(t, r.IsRegistered(3))
	assert.Equal(t, 4, r.Len())
}

func TestRegistry_DuplicateCollected(t *testing.T) {
	h := warning.NewHandler(warning.Collect, nil)
	r := New(h)
	_, err := r.Register(5, 1)
	require.NoError(t, err)

	id, err := r.Register(5, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, id)
	require.Len(t, h.Conditions(), 1)

	var dup *warning.DuplicateIDError
	require.True(t, errors.As(h.Conditions()[0], &dup))
	assert.Equal(t, 5, dup.ID)
	assert.Equal(t, 2, dup.Line())
}

func TestRegistry_DuplicateStrict(t *testing.T) {
	r := New(warning.NewHandler(warning.Strict, nil))
	_, err := r.Register(5, 1)
	require.NoError(t, err)
	_, err = r.Register(5, 2)
	var dup *warning.DuplicateIDError
	assert.True(t, errors.As(err, &dup))
}

func TestRegistry_GetOrGenerate_Missing(t *testing.T) {
	h := warning.NewHandler(warning.Collect, nil)
	r := New(h)
	id, err := r.GetOrGenerate("", false, "hill", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, id)
	assert.Equal(t, 1, h.Count(warning.KindMissingProperty))

	_, err = New(warning.NewHandler(warning.Strict, nil)).GetOrGenerate("", false, "hill", 3)
	var missing *warning.MissingPropertyError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "id", missing.Property)
}

func TestRegistry_GetOrGenerate_Commas(t *testing.T) {
	r := New(warning.NewHandler(warning.Strict, nil))
	id, err := r.GetOrGenerate("1,234,567", true, "hill", 1)
	require.NoError(t, err)
	assert.Equal(t, 1234567, id)
}

func TestRegistry_GetOrGenerate_Invalid(t *testing.T) {
	r := New(warning.NewHandler(warning.Silent, nil))
	_, err := r.GetOrGenerate("twelve", true, "hill", 1)
	var missing *warning.MissingPropertyError
	require.True(t, errors.As(err, &missing))
	assert.Error(t, missing.Cause)
}

func TestParseFloat_Commas(t *testing.T) {
	f, err := ParseFloat("1,000.5")
	require.NoError(t, err)
	assert.Equal(t, 1000.5, f)
}

// Property: generated IDs never collide with each other or with explicit IDs.
func TestPropertyGeneratedIDsAreUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := warning.NewHandler(warning.Collect, nil)
		r := New(h)
		explicit := rapid.SliceOfDistinct(rapid.IntRange(0, 50), rapid.ID[int]).Draw(t, "explicit")
		for _, id := range explicit {
			if _, err := r.Register(id, 1); err != nil {
				t.Fatalf("Register(%d): %v", id, err)
			}
		}
		seen := make(map[int]bool, len(explicit))
		for _, id := range explicit {
			seen[id] = true
		}
		n := rapid.IntRange(1, 30).Draw(t, "generated")
		for i := 0; i < n; i++ {
			id := r.Generate()
			if seen[id] {
				t.Fatalf("generated ID %d collides", id)
			}
			if id < 0 {
				t.Fatalf("generated negative ID %d", id)
			}
			seen[id] = true
		}
		if len(h.Conditions()) != 0 {
			t.Fatalf("unexpected conditions: %v", h.Conditions())
		}
	})
}

// Property: Generate always returns the smallest non-negative integer not yet used.
func TestPropertyGenerateIsMinimal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := New(warning.NewHandler(warning.Silent, nil))
		explicit := rapid.SliceOf(rapid.IntRange(0, 20)).Draw(t, "explicit")
		used := make(map[int]bool)
		for _, id := range explicit {
			_, _ = r.Register(id, 1)
			used[id] = true
		}
		want := 0
		for used[want] {
			want++
		}
		if got := r.Generate(); got != want {
			t.Fatalf("Generate() = %d, want %d", got, want)
		}
	})
}
