// Package provenance classifies value transitions between adjacent
// hierarchy layers and traces a key's evolution across a whole path.
package provenance

import (
	"strings"

	"github.com/adobe/kompos/pkg/value"
)

// Classification labels a key path's value transition between two
// adjacent layers.
type Classification int

const (
	// Undefined: the key is absent at this layer.
	Undefined Classification = iota
	// New: the key appears for the first time.
	New
	// Unchanged: the raw value is structurally equal to the previous layer's.
	Unchanged
	// Interpolated: the raw value differs only because interpolation
	// tokens resolved one step further.
	Interpolated
	// Overridden: the layer explicitly set a different value.
	Overridden
)

func (c Classification) String() string {
	switch c {
	case Undefined:
		return "undefined"
	case New:
		return "new"
	case Unchanged:
		return "unchanged"
	case Interpolated:
		return "interpolated"
	case Overridden:
		return "overridden"
	default:
		return "unknown"
	}
}

// Classify assigns a classification to the transition from the previous
// layer's raw value (nil when absent) to the current raw value.
//
// The interpolation signal is purely syntactic: the unresolved token
// count must strictly decrease while every literal substring of the
// previous value survives in order. A step that both resolves a token
// and edits literal text is Overridden.
func Classify(prev *value.Value, curr value.Value) Classification {
	if prev == nil {
		return New
	}

	if prev.Equal(curr) {
		return Unchanged
	}

	if prev.Kind() == value.KindString && curr.Kind() == value.KindString &&
		interpolationProgress(prev.Scalar(), curr.Scalar()) {
		return Interpolated
	}

	return Overridden
}

// CountTokens counts {{...}} interpolation token openings in a string.
// Nested tokens count once per opening.
func CountTokens(s string) int {
	return strings.Count(s, "{{")
}

// interpolationProgress reports whether curr is prev with some tokens
// resolved: strictly fewer tokens, and prev's literal (non-token)
// substrings present in curr in the same relative order.
func interpolationProgress(prev, curr string) bool {
	prevTokens := CountTokens(prev)
	currTokens := CountTokens(curr)
	if prevTokens == 0 || currTokens >= prevTokens {
		return false
	}

	pos := 0
	for _, literal := range literalFragments(prev) {
		idx := strings.Index(curr[pos:], literal)
		if idx < 0 {
			return false
		}
		pos += idx + len(literal)
	}

	return true
}

// literalFragments returns the parts of s outside {{...}} token spans,
// treating nested braces as part of the enclosing token.
func literalFragments(s string) []string {
	var fragments []string
	var current strings.Builder
	depth := 0

	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "{{"):
			if depth == 0 && current.Len() > 0 {
				fragments = append(fragments, current.String())
				current.Reset()
			}
			depth++
			i += 2
		case strings.HasPrefix(s[i:], "}}") && depth > 0:
			depth--
			i += 2
		default:
			if depth == 0 {
				current.WriteByte(s[i])
			}
			i++
		}
	}

	if current.Len() > 0 {
		fragments = append(fragments, current.String())
	}
	return fragments
}
