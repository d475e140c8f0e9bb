package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adobe/kompos/pkg/explore"
)

// analyzeCmd reports what every layer contributed to the merged result.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <config-path>",
	Short: "Report what each layer contributed to the merged configuration",
	Long: `Analyze walks the layer chain and reports, per layer, the keys it
introduced, overrode or advanced through interpolation, attributed to
the files that defined them.`,
	Example: "kompos analyze clusters/prod/us-east-1",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, outputFile, err := parseOutputFlags(cmd.Flags())
		if err != nil {
			return err
		}

		result, err := explore.ExecuteAnalyze(cmd.Context(), komposConfig, args[0])
		if err != nil {
			return err
		}

		rendered, err := explore.RenderAnalyze(result, format)
		if err != nil {
			return err
		}
		return writeOutput(rendered, outputFile)
	},
}

func init() {
	addOutputFlags(analyzeCmd, "text, yaml, json")
	RootCmd.AddCommand(analyzeCmd)
}
