// Package config loads the kompos CLI configuration from kompos.yaml
// via viper, with environment overrides under the KOMPOS_ prefix.
package config

import (
	"github.com/spf13/viper"

	errUtils "github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/logger"
	"github.com/adobe/kompos/pkg/schema"
)

// ConfigFileName is the base name of the CLI configuration file.
const ConfigFileName = "kompos"

// InitCliConfig locates and loads kompos.yaml from the working
// directory (or the directory given in configDir), applies defaults and
// returns the configuration. A missing file is not an error; defaults
// apply.
func InitCliConfig(configDir string) (schema.KomposConfiguration, error) {
	var cfg schema.KomposConfiguration

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.AddConfigPath(".")
	v.SetEnvPrefix("KOMPOS")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return cfg, errUtils.Build(errUtils.ErrInvalidRequest).
				WithExplanation("cannot read kompos.yaml").
				WithCause(err).
				Err()
		}
		logger.Debug("no kompos.yaml found, using defaults")
	} else {
		logger.Debug("loaded configuration", "file", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errUtils.Build(errUtils.ErrInvalidRequest).
			WithExplanation("cannot decode kompos.yaml").
			WithCause(err).
			Err()
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// setDefaults seeds the viper instance with documented defaults.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logs.level", schema.DefaultLogLevel)
	v.SetDefault("settings.list_merge_strategy", "replace")
	v.SetDefault("explore.suggestion_limit", schema.DefaultSuggestionLimit)
	v.SetDefault("explore.small_threshold", schema.DefaultSmallThreshold)
	v.SetDefault("explore.medium_threshold", schema.DefaultMediumThreshold)
	v.SetDefault("interpolation.max_passes", schema.DefaultMaxPasses)
}
