package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	charm "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected charm.Level
		wantErr  bool
	}{
		{"", charm.InfoLevel, false},
		{"debug", charm.DebugLevel, false},
		{"info", charm.InfoLevel, false},
		{"warn", charm.WarnLevel, false},
		{"error", charm.ErrorLevel, false},
		{"verbose", charm.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConfigureLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	require.NoError(t, l.Configure("warn", ""))
	l.SetOutput(&buf)

	l.Debug("hidden")
	l.Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestConfigureWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kompos.log")

	l := NewLogger(os.Stderr)
	require.NoError(t, l.Configure("info", path))

	l.Info("logged to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "logged to file")
}

func TestConfigureRejectsBadLevel(t *testing.T) {
	l := New()
	assert.Error(t, l.Configure("nope", ""))
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(NewLogger(&buf))

	Error("through the global")
	assert.Contains(t, buf.String(), "through the global")

	// A nil logger must not replace the default.
	SetDefault(nil)
	assert.NotNil(t, Default())
}
