package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorBuilder provides a fluent API for constructing enriched errors.
type ErrorBuilder struct {
	err       error
	hints     []string
	exitCode  *int
	sentinels []error // Sentinel errors to mark with errors.Mark()
}

// Build creates a new ErrorBuilder from a base error.
// If the error is a sentinel error (simple errors.New() with no wrapping),
// it will be automatically marked as a sentinel for errors.Is() checks.
func Build(err error) *ErrorBuilder {
	builder := &ErrorBuilder{err: err}

	// If this looks like a sentinel error (simple error with no cause),
	// automatically mark it as a sentinel so errors.Is() keeps working
	// after the builder wraps it.
	if err != nil && errors.UnwrapOnce(err) == nil {
		builder.sentinels = append(builder.sentinels, err)
	}

	return builder
}

// WithHint adds a user-facing hint to the error.
// Multiple hints can be added and will be displayed to users.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.hints = append(b.hints, hint)
	return b
}

// WithHintf adds a formatted user-facing hint to the error.
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.hints = append(b.hints, fmt.Sprintf(format, args...))
	return b
}

// WithExplanation adds a detailed explanation to the error.
// The explanation provides context about what went wrong and why.
func (b *ErrorBuilder) WithExplanation(explanation string) *ErrorBuilder {
	b.err = errors.WithDetail(b.err, explanation)
	return b
}

// WithExplanationf adds a formatted explanation to the error.
func (b *ErrorBuilder) WithExplanationf(format string, args ...interface{}) *ErrorBuilder {
	return b.WithExplanation(fmt.Sprintf(format, args...))
}

// WithContext adds safe structured context to the error.
func (b *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	b.err = errors.WithDetailf(b.err, "%s: %v", key, value)
	return b
}

// WithExitCode attaches an exit code to the error.
func (b *ErrorBuilder) WithExitCode(code int) *ErrorBuilder {
	b.exitCode = &code
	return b
}

// WithCause wraps the builder's error around a causal error.
func (b *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	if cause != nil {
		b.err = errors.Wrapf(cause, "%v", b.err)
	}
	return b
}

// Wrapf wraps the error with a formatted message, preserving the chain.
func (b *ErrorBuilder) Wrapf(format string, args ...interface{}) *ErrorBuilder {
	b.err = errors.Wrapf(b.err, format, args...)
	return b
}

// Err finalizes and returns the enriched error.
// Returns nil if the base error was nil.
func (b *ErrorBuilder) Err() error {
	if b.err == nil {
		return nil
	}

	err := b.err

	// Mark with sentinels so errors.Is() checks succeed through the
	// enrichment layers.
	for _, sentinel := range b.sentinels {
		err = errors.Mark(err, sentinel)
	}

	for _, hint := range b.hints {
		err = errors.WithHint(err, hint)
	}

	if b.exitCode != nil {
		err = WithExitCode(err, *b.exitCode)
	}

	return err
}
