package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/adobe/kompos/pkg/explore"
	u "github.com/adobe/kompos/pkg/utils"
)

// addOutputFlags registers the flags shared by every rendering command.
func addOutputFlags(cmd *cobra.Command, formats string) {
	cmd.Flags().StringP("format", "f", "", "Output format: "+formats)
	cmd.Flags().String("output-file", "", "Write the rendered output to a file instead of stdout")
}

// parseOutputFlags reads the shared rendering flags from a parsed flag set.
func parseOutputFlags(flags *pflag.FlagSet) (explore.Format, string, error) {
	raw, err := flags.GetString("format")
	if err != nil {
		return "", "", err
	}
	format, err := explore.ParseFormat(raw)
	if err != nil {
		return "", "", err
	}
	outputFile, err := flags.GetString("output-file")
	if err != nil {
		return "", "", err
	}
	return format, outputFile, nil
}

// writeOutput sends rendered output to the file from --output-file, or
// to stdout when none was given.
func writeOutput(rendered string, outputFile string) error {
	if outputFile != "" {
		return u.WriteTextToFile(outputFile, rendered, 0o644)
	}
	u.PrintMessage(strings.TrimRight(rendered, "\n"))
	return nil
}
