// Package suggest proposes near-match key paths when a requested key is
// absent. The index is rebuilt per invocation from the snapshot in
// scope; nothing persists across commands.
package suggest

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/adobe/kompos/pkg/keypath"
)

// DefaultLimit caps suggestions when the caller passes a non-positive
// limit.
const DefaultLimit = 5

type candidate struct {
	path      string
	prefixLen int
	distance  int
}

// Suggest ranks knownKeys against the missing key: longest common
// leading segment sequence first, then smallest edit distance on the
// full dotted string, then lexicographic order for stability. The
// result is truncated to limit.
func Suggest(missing keypath.KeyPath, knownKeys []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(knownKeys) == 0 {
		return nil
	}

	dotted := missing.String()
	candidates := make([]candidate, 0, len(knownKeys))
	for _, known := range knownKeys {
		candidates = append(candidates, candidate{
			path:      known,
			prefixLen: keypath.CommonPrefixLen(missing, keypath.Parse(known)),
			distance:  levenshtein.ComputeDistance(dotted, known),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].prefixLen != candidates[j].prefixLen {
			return candidates[i].prefixLen > candidates[j].prefixLen
		}
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].path < candidates[j].path
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.path
	}
	return out
}
