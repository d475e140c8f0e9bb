// Package hierarchy models the root-to-leaf chain of cumulative layer
// snapshots produced by the merge provider.
package hierarchy

import (
	"github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/value"
)

// LayerSnapshot is one directory level of the hierarchy, carrying the
// configuration as merged cumulatively through that layer.
type LayerSnapshot struct {
	// ID is the human-readable path segment, e.g. "env=dev".
	ID string

	// Ordinal is the layer's position in the hierarchy, root first.
	Ordinal int

	// Raw maps dotted key paths to values as merged through this layer,
	// before interpolation.
	Raw *value.FlatMap

	// Resolved maps dotted key paths to post-interpolation values when
	// the resolver ran; nil when only raw values are available.
	Resolved *value.FlatMap

	// Origins maps dotted key paths to the source files within this
	// layer that contributed them.
	Origins map[string][]string

	// Files lists the configuration files found at this layer.
	Files []string

	// Unresolved lists interpolation tokens the resolver could not
	// substitute at this layer.
	Unresolved []UnresolvedToken
}

// UnresolvedToken is a leftover interpolation placeholder reported by
// the resolver: the key whose value carries it and the key it points at.
type UnresolvedToken struct {
	Path      string
	Reference string
}

// Lookup returns the raw value for a dotted path.
func (s *LayerSnapshot) Lookup(path string) (value.Value, bool) {
	if s == nil {
		return value.Value{}, false
	}
	return s.Raw.Get(path)
}

// LookupResolved returns the post-interpolation value for a dotted path
// when resolution ran, falling back to the raw value. The second result
// reports presence, the third whether the returned value is resolved.
func (s *LayerSnapshot) LookupResolved(path string) (value.Value, bool, bool) {
	if s == nil {
		return value.Value{}, false, false
	}
	if s.Resolved != nil {
		if v, ok := s.Resolved.Get(path); ok {
			return v, true, true
		}
	}
	v, ok := s.Raw.Get(path)
	return v, ok, false
}

// Path is the ordered root-to-leaf chain of layer snapshots for one
// configuration context.
type Path struct {
	// ID identifies the context, e.g. "data/env=dev/cluster=c1".
	ID string

	Layers []*LayerSnapshot
}

// Final returns the leaf snapshot, or nil for an empty path.
func (p *Path) Final() *LayerSnapshot {
	if p == nil || len(p.Layers) == 0 {
		return nil
	}
	return p.Layers[len(p.Layers)-1]
}

// Validate checks the structural invariants: ordinals strictly
// increasing, and every key present at layer i-1 still present at layer
// i. A vanished key means the merge result is structurally broken, so
// the whole invocation fails with ErrMalformedSnapshot.
func (p *Path) Validate() error {
	if p == nil || len(p.Layers) == 0 {
		return errors.Build(errors.ErrInvalidRequest).
			WithExplanation("hierarchy path contains no layers").
			Err()
	}

	for i, layer := range p.Layers {
		if layer == nil || layer.Raw == nil {
			return errors.Build(errors.ErrMalformedSnapshot).
				WithExplanationf("layer %d of %q is missing its merged data", i, p.ID).
				Err()
		}

		if i == 0 {
			continue
		}

		prev := p.Layers[i-1]
		if layer.Ordinal <= prev.Ordinal {
			return errors.Build(errors.ErrMalformedSnapshot).
				WithExplanationf("layer ordinals not strictly increasing at %q (%d then %d)",
					layer.ID, prev.Ordinal, layer.Ordinal).
				Err()
		}

		for _, path := range prev.Raw.Paths() {
			if !layer.Raw.Has(path) {
				return errors.Build(errors.ErrMalformedSnapshot).
					WithExplanationf("key %q present at layer %q vanished at layer %q", path, prev.ID, layer.ID).
					WithHint("cumulative merge results must be monotonic; re-run the merge provider").
					Err()
			}
		}
	}

	return nil
}
