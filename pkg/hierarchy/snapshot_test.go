package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/keypath"
	"github.com/adobe/kompos/pkg/value"
)

func flatOf(pairs map[string]string) *value.FlatMap {
	flat := value.NewFlatMap()
	for k, v := range pairs {
		flat.Set(keypath.Parse(k), value.String(v))
	}
	return flat
}

func TestValidateAcceptsMonotonicChain(t *testing.T) {
	path := &Path{
		ID: "data/env=dev",
		Layers: []*LayerSnapshot{
			{ID: "data", Ordinal: 0, Raw: flatOf(map[string]string{"a": "1"})},
			{ID: "data/env=dev", Ordinal: 1, Raw: flatOf(map[string]string{"a": "1", "b": "2"})},
		},
	}

	assert.NoError(t, path.Validate())
}

func TestValidateRejectsVanishedKey(t *testing.T) {
	path := &Path{
		ID: "data/env=dev",
		Layers: []*LayerSnapshot{
			{ID: "data", Ordinal: 0, Raw: flatOf(map[string]string{"a": "1", "b": "2"})},
			{ID: "data/env=dev", Ordinal: 1, Raw: flatOf(map[string]string{"a": "1"})},
		},
	}

	err := path.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMalformedSnapshot)
}

func TestValidateRejectsNonIncreasingOrdinals(t *testing.T) {
	path := &Path{
		Layers: []*LayerSnapshot{
			{ID: "data", Ordinal: 1, Raw: flatOf(nil)},
			{ID: "data/env=dev", Ordinal: 1, Raw: flatOf(map[string]string{"a": "1"})},
		},
	}

	err := path.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMalformedSnapshot)
}

func TestValidateRejectsEmptyPath(t *testing.T) {
	err := (&Path{}).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidRequest)

	var nilPath *Path
	assert.ErrorIs(t, nilPath.Validate(), errors.ErrInvalidRequest)
}

func TestFinal(t *testing.T) {
	leaf := &LayerSnapshot{ID: "leaf", Raw: flatOf(nil)}
	path := &Path{Layers: []*LayerSnapshot{{ID: "root", Raw: flatOf(nil)}, leaf}}

	assert.Same(t, leaf, path.Final())
	assert.Nil(t, (&Path{}).Final())
}

func TestLookupResolvedFallsBackToRaw(t *testing.T) {
	s := &LayerSnapshot{
		Raw: flatOf(map[string]string{"a": "{{b}}", "b": "x"}),
	}

	v, ok, resolved := s.LookupResolved("a")
	require.True(t, ok)
	assert.False(t, resolved)
	assert.Equal(t, "{{b}}", v.Scalar())

	s.Resolved = flatOf(map[string]string{"a": "x", "b": "x"})
	v, ok, resolved = s.LookupResolved("a")
	require.True(t, ok)
	assert.True(t, resolved)
	assert.Equal(t, "x", v.Scalar())

	_, ok, _ = s.LookupResolved("missing")
	assert.False(t, ok)
}
