package visualize

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adobe/kompos/pkg/analyze"
	"github.com/adobe/kompos/pkg/schema"
)

func plainColors(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func fixtureTree(t *testing.T) *Tree {
	t.Helper()
	path, reports := fixturePath(2, 5)
	reports[1].Files = []analyze.FileReport{
		{File: "env.yaml", Counts: analyze.Counts{New: 2, Overridden: 1}},
	}
	reports[1].Counts = analyze.Counts{New: 3, Overridden: 1, Unchanged: 1}

	tree, err := BuildTree(path, reports, schema.Explore{SmallThreshold: 3, MediumThreshold: 6})
	require.NoError(t, err)
	return tree
}

func TestRenderText(t *testing.T) {
	plainColors(t)
	out := RenderText(fixtureTree(t))

	assert.Contains(t, out, "CONFIGURATION HIERARCHY")
	assert.Contains(t, out, "Context: data/env=dev")
	assert.Contains(t, out, "Total Layers: 2")
	assert.Contains(t, out, "layer0")
	assert.Contains(t, out, "layer1")
	assert.Contains(t, out, "env.yaml")
	assert.Contains(t, out, "Legend:")
	// env.yaml accounts for 3 of the 3 gained keys, so no inheritance
	// line appears.
	assert.NotContains(t, out, "interpolation inheritance) (+")
}

func TestRenderTextInheritanceLine(t *testing.T) {
	plainColors(t)

	path, reports := fixturePath(2, 5)
	// No files account for the gained keys: all 3 came through the merge.
	tree, err := BuildTree(path, reports, schema.Explore{})
	require.NoError(t, err)

	out := RenderText(tree)
	assert.Contains(t, out, "(interpolation inheritance) (+3)")
}

func TestRenderTextDeterministic(t *testing.T) {
	plainColors(t)
	tree := fixtureTree(t)

	assert.Equal(t, RenderText(tree), RenderText(tree))
}

func TestRenderDOT(t *testing.T) {
	out := RenderDOT(fixtureTree(t))

	assert.True(t, strings.HasPrefix(out, "digraph hierarchy {"))
	assert.Contains(t, out, "cluster_legend")
	assert.Contains(t, out, "layer0 -> layer1")
	assert.Contains(t, out, `label="+3"`)
	// Bucket fills: layer0 small, layer1 medium.
	assert.Contains(t, out, `fillcolor="lightgreen"`)
	assert.Contains(t, out, `fillcolor="lightblue"`)
	assert.Contains(t, out, "env.yaml")
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestRenderDOTFileOverflow(t *testing.T) {
	path, reports := fixturePath(1)
	reports[0].Files = []analyze.FileReport{
		{File: "a.yaml"}, {File: "b.yaml"}, {File: "c.yaml"}, {File: "d.yaml"}, {File: "e.yaml"},
	}
	tree, err := BuildTree(path, reports, schema.Explore{})
	require.NoError(t, err)

	out := RenderDOT(tree)
	assert.Contains(t, out, "... +2 more")
	assert.NotContains(t, out, "d.yaml")
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(fixtureTree(t))

	assert.Contains(t, out, "# Configuration Hierarchy")
	assert.Contains(t, out, "Context: `data/env=dev`")
	assert.Contains(t, out, "### layer0")
	assert.Contains(t, out, "### layer1")
	assert.Contains(t, out, "- **Delta**: +3")
	assert.Contains(t, out, "`env.yaml` (+2 new, ~0 interpolated, !1 overridden)")
}
