package compare

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/hierarchy"
	"github.com/adobe/kompos/pkg/keypath"
	"github.com/adobe/kompos/pkg/value"
)

func contextOf(id string, resolved bool, pairs map[string]value.Value) *hierarchy.Path {
	flat := value.NewFlatMap()
	for k, v := range pairs {
		flat.Set(keypath.Parse(k), v)
	}
	snapshot := &hierarchy.LayerSnapshot{ID: id, Raw: flat}
	if resolved {
		snapshot.Resolved = flat
	}
	return &hierarchy.Path{ID: id, Layers: []*hierarchy.LayerSnapshot{snapshot}}
}

func keysOf(dotted ...string) []keypath.KeyPath {
	out := make([]keypath.KeyPath, 0, len(dotted))
	for _, d := range dotted {
		out = append(out, keypath.Parse(d))
	}
	return out
}

func TestCompareFlagsDiffering(t *testing.T) {
	dev := contextOf("dev", true, map[string]value.Value{
		"nodes.count": value.Number("3"),
		"region":      value.String("us-east-1"),
	})
	prod := contextOf("prod", true, map[string]value.Value{
		"nodes.count": value.Number("10"),
		"region":      value.String("us-east-1"),
	})

	matrix, err := Compare(context.Background(), []*hierarchy.Path{dev, prod}, keysOf("nodes.count", "region"))
	require.NoError(t, err)

	assert.Equal(t, []string{"dev", "prod"}, matrix.Contexts)
	require.Len(t, matrix.Rows, 2)

	count := matrix.Rows[0]
	assert.Equal(t, "nodes.count", count.Key)
	assert.True(t, count.Differs)
	assert.Equal(t, "3", count.Cells[0].Value.Scalar())
	assert.Equal(t, "10", count.Cells[1].Value.Scalar())

	region := matrix.Rows[1]
	assert.False(t, region.Differs)
}

func TestCompareAbsenceIsReportable(t *testing.T) {
	dev := contextOf("dev", true, map[string]value.Value{"only.dev": value.String("x")})
	prod := contextOf("prod", true, map[string]value.Value{})

	matrix, err := Compare(context.Background(), []*hierarchy.Path{dev, prod}, keysOf("only.dev"))
	require.NoError(t, err)

	row := matrix.Rows[0]
	assert.True(t, row.Cells[0].Present)
	assert.False(t, row.Cells[1].Present)
	// A single present cell cannot differ from anything.
	assert.False(t, row.Differs)
}

func TestCompareAllKeysIsSortedUnion(t *testing.T) {
	dev := contextOf("dev", true, map[string]value.Value{
		"b": value.String("1"),
		"a": value.String("1"),
	})
	prod := contextOf("prod", true, map[string]value.Value{
		"c": value.String("1"),
	})

	matrix, err := Compare(context.Background(), []*hierarchy.Path{dev, prod}, nil)
	require.NoError(t, err)

	got := make([]string, 0, len(matrix.Rows))
	for _, row := range matrix.Rows {
		got = append(got, row.Key)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestCompareSelfIsNeverDiffering(t *testing.T) {
	dev := contextOf("dev", true, map[string]value.Value{
		"a": value.Number("1"),
		"b": value.Sequence([]value.Value{value.String("x")}),
	})

	matrix, err := Compare(context.Background(), []*hierarchy.Path{dev, dev}, nil)
	require.NoError(t, err)

	for _, row := range matrix.Rows {
		assert.False(t, row.Differs, "key %s", row.Key)
	}
}

func TestCompareUnresolvedFallsBackToRaw(t *testing.T) {
	dev := contextOf("dev", false, map[string]value.Value{
		"host": value.String("{{missing}}"),
	})

	matrix, err := Compare(context.Background(), []*hierarchy.Path{dev}, keysOf("host"))
	require.NoError(t, err)

	cell := matrix.Rows[0].Cells[0]
	assert.True(t, cell.Present)
	assert.True(t, cell.Unresolved)
	assert.Equal(t, "{{missing}}", cell.Value.Scalar())
}

func TestCompareRejectsEmptyInput(t *testing.T) {
	_, err := Compare(context.Background(), nil, keysOf("a"))
	assert.ErrorIs(t, err, errors.ErrInvalidRequest)

	dev := contextOf("dev", true, map[string]value.Value{})
	_, err = Compare(context.Background(), []*hierarchy.Path{dev}, nil)
	assert.ErrorIs(t, err, errors.ErrInvalidRequest, "no keys to evaluate")

	_, err = Compare(context.Background(), []*hierarchy.Path{{}}, keysOf("a"))
	assert.ErrorIs(t, err, errors.ErrInvalidRequest)
}

func TestCompareNumberStringNeverEqual(t *testing.T) {
	dev := contextOf("dev", true, map[string]value.Value{"v": value.Number("10")})
	prod := contextOf("prod", true, map[string]value.Value{"v": value.String("10")})

	matrix, err := Compare(context.Background(), []*hierarchy.Path{dev, prod}, keysOf("v"))
	require.NoError(t, err)

	assert.True(t, matrix.Rows[0].Differs)
}
