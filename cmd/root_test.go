package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/adobe/kompos/errors"
)

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fixtureHierarchy(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	writeFixture(t, filepath.Join(dir, "clusters/common.yaml"), `
region: us-east-1
nodes:
  count: 3
`)
	writeFixture(t, filepath.Join(dir, "clusters/env=dev/env.yaml"), `
nodes:
  count: 1
`)

	chdir(t, dir)
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	RootCmd.SetArgs(args)
	return Execute()
}

func TestTraceCommand(t *testing.T) {
	fixtureHierarchy(t)
	out := filepath.Join(t.TempDir(), "trace.txt")

	err := runCLI(t, "trace", "clusters/env=dev", "--key", "nodes.count", "--output-file", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "VALUE TRACE: nodes.count")
}

func TestTraceCommandNotFoundExitsZero(t *testing.T) {
	fixtureHierarchy(t)
	out := filepath.Join(t.TempDir(), "trace.txt")

	err := runCLI(t, "trace", "clusters/env=dev", "--key", "no.such.key", "--output-file", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "not found in any layer")
}

func TestTraceCommandRequiresKey(t *testing.T) {
	fixtureHierarchy(t)

	err := runCLI(t, "trace", "clusters/env=dev", "--key", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrInvalidRequest)
	assert.Equal(t, 1, errUtils.GetExitCode(err))
}

func TestAnalyzeCommandJSON(t *testing.T) {
	fixtureHierarchy(t)
	out := filepath.Join(t.TempDir(), "analyze.json")

	err := runCLI(t, "analyze", "clusters/env=dev", "--format", "json", "--output-file", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"context": "clusters/env=dev"`)
}

func TestCompareCommand(t *testing.T) {
	fixtureHierarchy(t)
	out := filepath.Join(t.TempDir(), "compare.txt")

	err := runCLI(t, "compare", "clusters", "--keys", "nodes.count", "--output-file", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Key: nodes.count")
}

func TestVisualizeCommandDOT(t *testing.T) {
	fixtureHierarchy(t)
	out := filepath.Join(t.TempDir(), "tree.dot")

	err := runCLI(t, "visualize", "clusters/env=dev", "--format", "dot", "--output-file", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph hierarchy")
}

func TestUnknownFormatRejected(t *testing.T) {
	fixtureHierarchy(t)

	err := runCLI(t, "analyze", "clusters/env=dev", "--format", "xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrUnknownFormat)
}
