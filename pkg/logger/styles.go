package logger

import (
	"github.com/charmbracelet/lipgloss"
	charm "github.com/charmbracelet/log"
)

// Level badge colors. Kept in one place so the trace and visualize
// renderers stay the only other source of color in the output.
const (
	colorDebug = "63"  // purple
	colorInfo  = "86"  // cyan
	colorWarn  = "192" // yellow
	colorError = "204" // red
)

// Styles returns charm log styles with 4-character level badges so log
// lines align regardless of level.
func Styles() *charm.Styles {
	styles := charm.DefaultStyles()

	styles.Levels[charm.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBU").
		Foreground(lipgloss.Color(colorDebug)).
		Bold(true)
	styles.Levels[charm.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color(colorInfo)).
		Bold(true)
	styles.Levels[charm.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color(colorWarn)).
		Bold(true)
	styles.Levels[charm.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERRO").
		Foreground(lipgloss.Color(colorError)).
		Bold(true)
	styles.Levels[charm.FatalLevel] = lipgloss.NewStyle().
		SetString("FATA").
		Foreground(lipgloss.Color(colorError)).
		Bold(true)

	styles.Key = lipgloss.NewStyle().Faint(true)

	return styles
}
