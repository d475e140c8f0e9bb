// Package exclude models the composition-level exclusion policy: key
// path prefixes removed from generated output. The engine's diffing is
// agnostic to exclusion; this policy only feeds the root-cause hint for
// unresolved interpolation tokens.
package exclude

import (
	"fmt"

	"github.com/adobe/kompos/pkg/keypath"
	"github.com/adobe/kompos/pkg/value"
)

// Policy is a set of excluded key-path prefixes.
type Policy struct {
	prefixes []keypath.KeyPath
}

// NewPolicy builds a policy from dotted prefix strings.
func NewPolicy(prefixes []string) *Policy {
	p := &Policy{}
	for _, raw := range prefixes {
		if parsed := keypath.Parse(raw); !parsed.IsEmpty() {
			p.prefixes = append(p.prefixes, parsed)
		}
	}
	return p
}

// IsExcluded reports whether the dotted path falls under an excluded
// prefix.
func (p *Policy) IsExcluded(path string) bool {
	if p == nil {
		return false
	}
	parsed := keypath.Parse(path)
	for _, prefix := range p.prefixes {
		if parsed.HasPrefix(prefix) {
			return true
		}
	}
	return false
}

// Diagnose explains why an interpolation reference stayed unresolved:
// either the referenced key is excluded but still referenced, or it was
// never defined anywhere in the final snapshot.
func (p *Policy) Diagnose(reference string, known *value.FlatMap) string {
	if p.IsExcluded(reference) {
		return fmt.Sprintf("key %q is excluded by the composition's exclusion policy but is still referenced; drop the reference or stop excluding the key", reference)
	}
	if known.Has(reference) {
		return fmt.Sprintf("key %q exists but its own value is still unresolved", reference)
	}
	return fmt.Sprintf("key %q is never defined in this hierarchy", reference)
}
