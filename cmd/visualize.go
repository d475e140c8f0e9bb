package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adobe/kompos/pkg/explore"
)

// visualizeCmd renders the layer hierarchy of a configuration context.
var visualizeCmd = &cobra.Command{
	Use:   "visualize <config-path>",
	Short: "Render the layer hierarchy of a configuration context",
	Long: `Visualize renders the layer chain of a context as a tree, with each node
sized by key count and annotated with per-file contributions. The dot
format produces a Graphviz document.`,
	Example: `kompos visualize clusters/prod/us-east-1
kompos visualize clusters/prod/us-east-1 --format dot --output-file hierarchy.dot`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, outputFile, err := parseOutputFlags(cmd.Flags())
		if err != nil {
			return err
		}

		result, err := explore.ExecuteVisualize(cmd.Context(), komposConfig, args[0])
		if err != nil {
			return err
		}

		rendered, err := explore.RenderVisualize(result, format)
		if err != nil {
			return err
		}
		return writeOutput(rendered, outputFile)
	},
}

func init() {
	addOutputFlags(visualizeCmd, "text, yaml, json, dot, markdown")
	RootCmd.AddCommand(visualizeCmd)
}
