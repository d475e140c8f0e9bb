package cmd

import (
	"github.com/spf13/cobra"

	errUtils "github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/explore"
)

// traceCmd traces a single key through every layer of a configuration context.
var traceCmd = &cobra.Command{
	Use:   "trace <config-path>",
	Short: "Trace a key through every layer of a configuration context",
	Long: `Trace shows the full history of one key across the layer chain: the layer
that introduced it, every layer that changed it, and how interpolation
resolved it. A key that does not exist produces suggestions, not an error.`,
	Example: "kompos trace clusters/prod/us-east-1 --key nodes.count",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := cmd.Flags().GetString("key")
		if err != nil {
			return err
		}
		if key == "" {
			return errUtils.Build(errUtils.ErrInvalidRequest).
				WithExplanation("no key to trace").
				WithHint("pass --key <dotted.path>, for example --key nodes.count").
				Err()
		}

		format, outputFile, err := parseOutputFlags(cmd.Flags())
		if err != nil {
			return err
		}

		result, err := explore.ExecuteTrace(cmd.Context(), komposConfig, args[0], key)
		if err != nil {
			return err
		}

		rendered, err := explore.RenderTrace(result, format)
		if err != nil {
			return err
		}
		return writeOutput(rendered, outputFile)
	},
}

func init() {
	traceCmd.Flags().String("key", "", "Dotted path of the key to trace, for example nodes.count")
	addOutputFlags(traceCmd, "text, yaml, json")
	RootCmd.AddCommand(traceCmd)
}
