package provenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/hierarchy"
	"github.com/adobe/kompos/pkg/keypath"
	"github.com/adobe/kompos/pkg/value"
)

func layer(id string, ordinal int, pairs map[string]value.Value) *hierarchy.LayerSnapshot {
	flat := value.NewFlatMap()
	for k, v := range pairs {
		flat.Set(keypath.Parse(k), v)
	}
	return &hierarchy.LayerSnapshot{ID: id, Ordinal: ordinal, Raw: flat}
}

func chain(layers ...*hierarchy.LayerSnapshot) *hierarchy.Path {
	return &hierarchy.Path{ID: layers[len(layers)-1].ID, Layers: layers}
}

func TestTraceKeyOneRecordPerLayer(t *testing.T) {
	path := chain(
		layer("data", 0, map[string]value.Value{"a": value.String("1")}),
		layer("data/env=dev", 1, map[string]value.Value{"a": value.String("1"), "b": value.String("2")}),
		layer("data/env=dev/cluster=c1", 2, map[string]value.Value{"a": value.String("1"), "b": value.String("2")}),
	)

	trace, err := TraceKey(path, keypath.Parse("b"), 0)
	require.NoError(t, err)

	require.Len(t, trace.Records, len(path.Layers))
	assert.Equal(t, "b", trace.Key)
	assert.Equal(t, path.ID, trace.ContextID)
	assert.False(t, trace.NotFound)

	assert.Equal(t, Undefined, trace.Records[0].Classification)
	assert.Nil(t, trace.Records[0].Raw)
	assert.Equal(t, New, trace.Records[1].Classification)
	assert.Equal(t, Unchanged, trace.Records[2].Classification)
}

func TestTraceKeyClassifiesTransitions(t *testing.T) {
	path := chain(
		layer("root", 0, map[string]value.Value{"bucket": value.String("logs-{{region}}")}),
		layer("root/env=dev", 1, map[string]value.Value{"bucket": value.String("logs-us-east-1")}),
		layer("root/env=dev/c1", 2, map[string]value.Value{"bucket": value.String("audit")}),
	)

	trace, err := TraceKey(path, keypath.Parse("bucket"), 0)
	require.NoError(t, err)

	assert.Equal(t, New, trace.Records[0].Classification)
	assert.Equal(t, Interpolated, trace.Records[1].Classification)
	assert.Equal(t, Overridden, trace.Records[2].Classification)
}

func TestTraceKeyDiffSpanHighlightsChange(t *testing.T) {
	path := chain(
		layer("root", 0, map[string]value.Value{"cidr": value.String("10.0.0.0/16")}),
		layer("root/env=dev", 1, map[string]value.Value{"cidr": value.String("10.1.0.0/16")}),
	)

	trace, err := TraceKey(path, keypath.Parse("cidr"), 0)
	require.NoError(t, err)

	diff := trace.Records[1].Diff
	curr := "10.1.0.0/16"
	assert.Equal(t, "1", curr[diff.Start:diff.End])

	// The introducing record carries no highlight.
	assert.Equal(t, NoSpan, trace.Records[0].Diff)
}

func TestTraceKeyNotFoundSuggests(t *testing.T) {
	path := chain(
		layer("root", 0, map[string]value.Value{
			"nodes.count": value.Number("3"),
			"nodes.type":  value.String("m5.large"),
			"region":      value.String("us-east-1"),
		}),
	)

	trace, err := TraceKey(path, keypath.Parse("nodes.cout"), 5)
	require.NoError(t, err)

	assert.True(t, trace.NotFound)
	require.NotEmpty(t, trace.Suggestions)
	assert.Equal(t, "nodes.count", trace.Suggestions[0])

	// One record per layer even when never found.
	require.Len(t, trace.Records, 1)
	assert.Equal(t, Undefined, trace.Records[0].Classification)
}

func TestTraceKeyEmptyKeyRejected(t *testing.T) {
	path := chain(layer("root", 0, nil))

	_, err := TraceKey(path, nil, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidRequest)
}

func TestTraceKeyEmptyPathRejected(t *testing.T) {
	_, err := TraceKey(&hierarchy.Path{}, keypath.Parse("a"), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidRequest)

	_, err = TraceKey(nil, keypath.Parse("a"), 0)
	assert.ErrorIs(t, err, errors.ErrInvalidRequest)
}

func TestDiffSpan(t *testing.T) {
	tests := []struct {
		name       string
		prev, curr string
		expected   Span
	}{
		{"identical", "abc", "abc", NoSpan},
		{"middle change", "10.0.0.0/16", "10.1.0.0/16", Span{Start: 3, End: 4}},
		{"suffix grown", "logs", "logs-dev", Span{Start: 4, End: 8}},
		{"full replacement", "abc", "xyz", Span{Start: 0, End: 3}},
		{"shrunk to empty", "abc", "", Span{Start: 0, End: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, diffSpan(tt.prev, tt.curr))
		})
	}
}
