package explore

import (
	"github.com/adobe/kompos/errors"
)

// Format selects the output serialization.
type Format string

const (
	FormatText     Format = "text"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatDOT      Format = "dot"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatYAML, FormatJSON, FormatDOT, FormatMarkdown:
		return Format(s), nil
	case "":
		return FormatText, nil
	default:
		return "", errors.Build(errors.ErrUnknownFormat).
			WithExplanationf("format %q", s).
			WithHint("valid formats are text, yaml, json, dot, markdown").
			Err()
	}
}
