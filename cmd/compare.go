package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adobe/kompos/pkg/explore"
)

// compareCmd compares final values across configuration contexts.
var compareCmd = &cobra.Command{
	Use:   "compare <config-path> [context-path...]",
	Short: "Compare final values across configuration contexts",
	Long: `Compare builds a matrix of final values across contexts. Explicit context
paths are compared directly; with none given, every leaf context under
the config path is discovered and compared. Rows where values differ
are marked.`,
	Example: `kompos compare clusters --keys nodes.count,region
kompos compare clusters clusters/prod/us-east-1 clusters/dev/us-east-1`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := cmd.Flags().GetStringSlice("keys")
		if err != nil {
			return err
		}

		format, outputFile, err := parseOutputFlags(cmd.Flags())
		if err != nil {
			return err
		}

		matrix, err := explore.ExecuteCompare(cmd.Context(), komposConfig, args[0], args[1:], keys)
		if err != nil {
			return err
		}

		rendered, err := explore.RenderCompare(matrix, format)
		if err != nil {
			return err
		}
		return writeOutput(rendered, outputFile)
	},
}

func init() {
	compareCmd.Flags().StringSlice("keys", nil, "Comma-separated keys to compare; all keys when omitted")
	addOutputFlags(compareCmd, "text, yaml, json")
	RootCmd.AddCommand(compareCmd)
}
