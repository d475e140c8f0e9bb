// Package merge is the merge provider: it discovers hierarchy layers on
// disk, deep-merges their YAML files cumulatively (map-merge,
// list-replace by default) and produces layer snapshots with per-key
// origin files. The provenance engine treats its output as already
// correctly merged and never re-merges.
package merge

import (
	"sort"

	"dario.cat/mergo"

	errUtils "github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/perf"
	"github.com/adobe/kompos/pkg/schema"
	"github.com/adobe/kompos/pkg/value"
)

// List merge strategies.
const (
	ListMergeStrategyReplace = "replace"
	ListMergeStrategyAppend  = "append"
	ListMergeStrategyMerge   = "merge"
)

// Merge deep-merges the inputs in order: first is base, last wins.
// Mappings merge key-wise; slices follow the configured list merge
// strategy. Inputs are not mutated.
//
// Leaves are *value.Value so raw YAML scalar literals survive the merge
// verbatim; composites are plain maps and slices so mergo's semantics
// apply.
func Merge(cfg *schema.KomposConfiguration, inputs []map[string]any) (map[string]any, error) {
	defer perf.Track("merge.Merge")()

	if cfg == nil {
		return nil, errUtils.Build(errUtils.ErrMerge).
			WithExplanation("kompos configuration is nil").
			Err()
	}

	strategy := cfg.Settings.ListMergeStrategy
	if strategy == "" {
		strategy = ListMergeStrategyReplace
	}

	opts := []func(*mergo.Config){mergo.WithOverride}
	switch strategy {
	case ListMergeStrategyReplace:
		// mergo.WithOverride replaces slices wholesale.
	case ListMergeStrategyAppend:
		opts = append(opts, mergo.WithAppendSlice)
	case ListMergeStrategyMerge:
		opts = append(opts, mergo.WithSliceDeepCopy)
	default:
		return nil, errUtils.Build(errUtils.ErrUnknownListMergeStrategy).
			WithExplanationf("strategy %q", strategy).
			WithHint("valid strategies are replace, append, merge").
			Err()
	}

	result := map[string]any{}
	for _, input := range inputs {
		if err := mergo.Merge(&result, DeepCopyMap(input), opts...); err != nil {
			return nil, errUtils.Build(errUtils.ErrMerge).WithCause(err).Err()
		}
	}

	return result, nil
}

// ToMergeable converts a Value into the merge representation: mappings
// become map[string]any, sequences become []any, and every scalar stays
// a *value.Value so its raw literal is preserved through the merge.
func ToMergeable(v value.Value) any {
	switch v.Kind() {
	case value.KindMapping:
		out := make(map[string]any, len(v.MapKeys()))
		for _, key := range v.MapKeys() {
			child, _ := v.MapGet(key)
			out[key] = ToMergeable(child)
		}
		return out
	case value.KindSequence:
		out := make([]any, len(v.Seq()))
		for i, item := range v.Seq() {
			out[i] = ToMergeable(item)
		}
		return out
	default:
		leaf := v
		return &leaf
	}
}

// FromMergeable converts merged data back into a Value.
func FromMergeable(data any) (value.Value, error) {
	switch v := data.(type) {
	case nil:
		return value.Null(), nil
	case *value.Value:
		return *v, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		vals := make(map[string]value.Value, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			child, err := FromMergeable(v[key])
			if err != nil {
				return value.Null(), err
			}
			vals[key] = child
		}
		return value.Mapping(keys, vals), nil
	case []any:
		items := make([]value.Value, 0, len(v))
		for _, item := range v {
			converted, err := FromMergeable(item)
			if err != nil {
				return value.Null(), err
			}
			items = append(items, converted)
		}
		return value.Sequence(items), nil
	default:
		return value.FromAny(v)
	}
}

// DeepCopyMap copies the mergeable structure. Leaf *value.Value
// pointers are shared: values are immutable once produced.
func DeepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, val := range m {
		out[key] = deepCopyAny(val)
	}
	return out
}

func deepCopyAny(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return DeepCopyMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = deepCopyAny(item)
		}
		return out
	default:
		return v
	}
}
