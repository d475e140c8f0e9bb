package provenance

import (
	"github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/hierarchy"
	"github.com/adobe/kompos/pkg/keypath"
	"github.com/adobe/kompos/pkg/perf"
	"github.com/adobe/kompos/pkg/suggest"
	"github.com/adobe/kompos/pkg/value"
)

// Span marks the contiguous character range of a display string that
// differs from the previous layer's display string. Start == -1 means
// no highlight.
type Span struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// NoSpan is the absent highlight span.
var NoSpan = Span{Start: -1, End: -1}

// ValueRecord is one layer's observation of a traced key.
type ValueRecord struct {
	LayerID        string
	Ordinal        int
	Raw            *value.Value // nil when the key is absent at this layer
	Resolved       *value.Value // nil when no resolved form is available
	Classification Classification
	Diff           Span
}

// Trace is the ordered evolution of one key across a hierarchy path.
// When the key is absent from every layer, NotFound is set and
// Suggestions carries near-match keys from the final snapshot.
type Trace struct {
	Key         string
	ContextID   string
	Records     []ValueRecord
	NotFound    bool
	Suggestions []string
}

// TraceKey walks every layer of the hierarchy path in order, looks up
// the key's raw value, classifies the transition against the previous
// layer and computes the diff-highlight span. The trace always has one
// record per layer.
//
// The path must have passed Validate; a key vanishing mid-path is a
// malformed snapshot, not a tracing concern.
func TraceKey(path *hierarchy.Path, key keypath.KeyPath, suggestionLimit int) (*Trace, error) {
	defer perf.Track("provenance.TraceKey")()

	if key.IsEmpty() {
		return nil, errors.Build(errors.ErrInvalidRequest).
			WithExplanation("trace requires a non-empty key path").
			WithHint("pass the key as a dotted path, e.g. --key vpc.cidr_block").
			Err()
	}
	if path == nil || len(path.Layers) == 0 {
		return nil, errors.Build(errors.ErrInvalidRequest).
			WithExplanation("trace requires a hierarchy path with at least one layer").
			Err()
	}

	dotted := key.String()
	trace := &Trace{
		Key:       dotted,
		ContextID: path.ID,
		Records:   make([]ValueRecord, 0, len(path.Layers)),
	}

	var prev *value.Value
	found := false

	for _, layer := range path.Layers {
		record := ValueRecord{
			LayerID:        layer.ID,
			Ordinal:        layer.Ordinal,
			Classification: Undefined,
			Diff:           NoSpan,
		}

		if curr, ok := layer.Lookup(dotted); ok {
			found = true
			record.Raw = &curr
			record.Classification = Classify(prev, curr)

			if resolved, ok, isResolved := layer.LookupResolved(dotted); ok && isResolved {
				record.Resolved = &resolved
			}

			if prev != nil && (record.Classification == Interpolated || record.Classification == Overridden) {
				record.Diff = diffSpan(prev.Display(), curr.Display())
			}

			prevCopy := curr
			prev = &prevCopy
		}

		trace.Records = append(trace.Records, record)
	}

	if !found {
		trace.NotFound = true
		trace.Suggestions = suggest.Suggest(key, path.Final().Raw.Paths(), suggestionLimit)
	}

	return trace, nil
}

// diffSpan computes the shortest contiguous range of curr covering all
// differing characters, by trimming the longest common prefix and
// suffix against prev.
func diffSpan(prev, curr string) Span {
	if prev == curr {
		return NoSpan
	}

	// Longest common prefix.
	i := 0
	for i < len(prev) && i < len(curr) && prev[i] == curr[i] {
		i++
	}

	// Longest common suffix not overlapping the prefix.
	jPrev, jCurr := len(prev), len(curr)
	for jPrev > i && jCurr > i && prev[jPrev-1] == curr[jCurr-1] {
		jPrev--
		jCurr--
	}

	return Span{Start: i, End: jCurr}
}
