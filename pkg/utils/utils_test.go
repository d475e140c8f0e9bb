package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToYAML(t *testing.T) {
	out, err := ConvertToYAML(map[string]any{"b": 2, "a": "x"})
	require.NoError(t, err)

	assert.Contains(t, out, "a: x")
	assert.Contains(t, out, "b: 2")
}

func TestConvertToJSON(t *testing.T) {
	out, err := ConvertToJSON(map[string]any{"key": "value"})
	require.NoError(t, err)

	assert.Contains(t, out, `"key": "value"`)
}

func TestWriteToFileAsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.yaml")

	require.NoError(t, WriteToFileAsYAML(path, map[string]any{"a": 1}, 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a: 1")
}

func TestWriteTextToFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "file.txt")

	require.NoError(t, WriteTextToFile(path, "hello", 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
