package cmd

import (
	"github.com/spf13/cobra"

	errUtils "github.com/adobe/kompos/errors"
	cfg "github.com/adobe/kompos/pkg/config"
	"github.com/adobe/kompos/pkg/logger"
	"github.com/adobe/kompos/pkg/schema"
)

// komposConfig holds the CLI configuration loaded in Execute. All
// subcommands read it after PersistentPreRunE has run.
var komposConfig schema.KomposConfiguration

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "kompos",
	Short: "Explore hierarchically layered configuration",
	Long: `Kompos merges layered YAML configuration directories and explains the result:
where each value came from, which layer changed it, and how contexts differ.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// setupLogger configures the global logger from the loaded
// configuration, with the logs-level and logs-file flags taking
// precedence.
func setupLogger(cmd *cobra.Command) error {
	level := komposConfig.Logs.Level
	if flagLevel, err := cmd.Flags().GetString("logs-level"); err == nil && flagLevel != "" {
		level = flagLevel
	}
	file := komposConfig.Logs.File
	if flagFile, err := cmd.Flags().GetString("logs-file"); err == nil && flagFile != "" {
		file = flagFile
	}

	l := logger.New()
	if err := l.Configure(level, file); err != nil {
		return errUtils.Build(errUtils.ErrInvalidRequest).
			WithCause(err).
			WithHint("supported log levels are debug, info, warn, error").
			Err()
	}
	logger.SetDefault(l)
	return nil
}

// Execute loads the CLI configuration and runs the root command. It is
// called once by main.main().
func Execute() error {
	config, err := cfg.InitCliConfig("")
	if err != nil {
		return err
	}
	komposConfig = config

	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().String("logs-level", "", "Log level. Supported levels are debug, info, warn, error")
	RootCmd.PersistentFlags().String("logs-file", "", "The file to write logs to. Can be a file path, '/dev/stdout' or '/dev/stderr'")
}
