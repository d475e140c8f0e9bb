package errors

import "github.com/cockroachdb/errors"

// Sentinel errors for the provenance engine. Callers test for these with
// errors.Is; the builder in this package enriches them with hints and
// exit codes before they reach the user.
var (
	// ErrKeyNotFound is returned when a requested key path is absent from
	// every layer of a hierarchy. It is informational, not fatal: the
	// engine attaches key suggestions and the CLI exits 0.
	ErrKeyNotFound = errors.New("key path not found in any hierarchy layer")

	// ErrUnresolvedInterpolation is returned when interpolation tokens
	// remain after full resolution.
	ErrUnresolvedInterpolation = errors.New("unresolved interpolation tokens remain after resolution")

	// ErrMalformedSnapshot is returned when a layer snapshot violates the
	// monotonic-superset invariant or contains an unsupported value kind.
	// Fatal for the invocation; there is no safe partial interpretation.
	ErrMalformedSnapshot = errors.New("malformed layer snapshot")

	// ErrInvalidRequest is returned for user-facing validation failures
	// detected before any computation runs.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidConfigPath is returned when the supplied configuration
	// context path does not exist or contains no configuration layers.
	ErrInvalidConfigPath = errors.New("invalid configuration path")

	// ErrUnknownFormat is returned for an unsupported output format.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrUnknownListMergeStrategy is returned when the configured list
	// merge strategy is not one of replace, append, merge.
	ErrUnknownListMergeStrategy = errors.New("unknown list merge strategy")

	// ErrMerge is returned when deep-merging layer inputs fails.
	ErrMerge = errors.New("error merging configuration layers")

	// ErrEmptyPath is returned when a key path operation receives an
	// empty path.
	ErrEmptyPath = errors.New("empty key path")
)
