package errors

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// OsExit is a variable for testing, so we can mock os.Exit.
var OsExit = os.Exit

// Format renders an error for the terminal: the message first, then any
// hints attached via the builder, each on its own line.
func Format(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(err.Error())

	for _, hint := range errors.GetAllHints(err) {
		sb.WriteString("\n  hint: ")
		sb.WriteString(hint)
	}

	return sb.String()
}

// CheckErrorAndPrint prints an error message with its hints to stderr.
func CheckErrorAndPrint(err error) {
	if err == nil {
		return
	}
	color.New(color.FgRed).Fprintln(os.Stderr, Format(err))
}

// CheckErrorPrintAndExit prints an error message and exits with the
// error's exit code (1 when none was attached).
func CheckErrorPrintAndExit(err error) {
	if err == nil {
		return
	}

	CheckErrorAndPrint(err)
	Exit(GetExitCode(err))
}

// Exit exits the program with the specified exit code.
func Exit(exitCode int) {
	OsExit(exitCode)
}
