package schema

// KomposConfiguration is the top-level CLI configuration, loaded from
// `kompos.yaml` (see pkg/config).
type KomposConfiguration struct {
	Logs          Logs          `yaml:"logs,omitempty" json:"logs,omitempty" mapstructure:"logs"`
	Settings      Settings      `yaml:"settings,omitempty" json:"settings,omitempty" mapstructure:"settings"`
	Explore       Explore       `yaml:"explore,omitempty" json:"explore,omitempty" mapstructure:"explore"`
	Interpolation Interpolation `yaml:"interpolation,omitempty" json:"interpolation,omitempty" mapstructure:"interpolation"`

	// Excluded lists key-path prefixes that compositions exclude from
	// generated output. Used only to derive the "excluded but referenced"
	// diagnostic for unresolved interpolation tokens.
	Excluded []string `yaml:"excluded,omitempty" json:"excluded,omitempty" mapstructure:"excluded"`
}

// Logs configures the logger level and destination.
type Logs struct {
	Level string `yaml:"level,omitempty" json:"level,omitempty" mapstructure:"level"`
	File  string `yaml:"file,omitempty" json:"file,omitempty" mapstructure:"file"`
}

// Settings holds merge behavior knobs.
type Settings struct {
	// ListMergeStrategy is one of replace (default), append, merge.
	ListMergeStrategy string `yaml:"list_merge_strategy,omitempty" json:"list_merge_strategy,omitempty" mapstructure:"list_merge_strategy"`
}

// Explore configures the provenance/diff/visualization engine.
type Explore struct {
	// SuggestionLimit caps the number of near-match keys offered when a
	// traced key is not found.
	SuggestionLimit int `yaml:"suggestion_limit,omitempty" json:"suggestion_limit,omitempty" mapstructure:"suggestion_limit"`

	// SmallThreshold and MediumThreshold bucket hierarchy tree nodes by
	// aggregate key count for visual classification. A node is small
	// below SmallThreshold, medium below MediumThreshold, large otherwise.
	SmallThreshold  int `yaml:"small_threshold,omitempty" json:"small_threshold,omitempty" mapstructure:"small_threshold"`
	MediumThreshold int `yaml:"medium_threshold,omitempty" json:"medium_threshold,omitempty" mapstructure:"medium_threshold"`
}

// Interpolation configures the placeholder resolver.
type Interpolation struct {
	// MaxPasses bounds iterative token substitution.
	MaxPasses int `yaml:"max_passes,omitempty" json:"max_passes,omitempty" mapstructure:"max_passes"`
}

// Default configuration values.
const (
	DefaultSuggestionLimit = 5
	DefaultSmallThreshold  = 100
	DefaultMediumThreshold = 200
	DefaultMaxPasses       = 10
	DefaultLogLevel        = "info"
)

// ApplyDefaults fills zero-valued fields with documented defaults.
func (c *KomposConfiguration) ApplyDefaults() {
	if c.Logs.Level == "" {
		c.Logs.Level = DefaultLogLevel
	}
	if c.Explore.SuggestionLimit <= 0 {
		c.Explore.SuggestionLimit = DefaultSuggestionLimit
	}
	if c.Explore.SmallThreshold <= 0 {
		c.Explore.SmallThreshold = DefaultSmallThreshold
	}
	if c.Explore.MediumThreshold <= 0 {
		c.Explore.MediumThreshold = DefaultMediumThreshold
	}
	if c.Interpolation.MaxPasses <= 0 {
		c.Interpolation.MaxPasses = DefaultMaxPasses
	}
}
