// Package explore glues the merge provider, the provenance engine and
// the renderers behind the trace, analyze, compare and visualize
// commands. All results are plain data; every output format is a
// deterministic projection of the same result.
package explore

import (
	"context"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/analyze"
	"github.com/adobe/kompos/pkg/compare"
	"github.com/adobe/kompos/pkg/exclude"
	"github.com/adobe/kompos/pkg/hierarchy"
	"github.com/adobe/kompos/pkg/keypath"
	"github.com/adobe/kompos/pkg/logger"
	"github.com/adobe/kompos/pkg/merge"
	"github.com/adobe/kompos/pkg/perf"
	"github.com/adobe/kompos/pkg/provenance"
	"github.com/adobe/kompos/pkg/schema"
	"github.com/adobe/kompos/pkg/visualize"
)

// TraceResult is the outcome of a trace invocation.
type TraceResult struct {
	Trace *provenance.Trace

	// Diagnostics explains unresolved interpolation tokens touching the
	// traced key, cross-referenced against the exclusion policy.
	Diagnostics []string
}

// ExecuteTrace loads the hierarchy for configPath and traces the key
// across all its layers.
func ExecuteTrace(ctx context.Context, cfg schema.KomposConfiguration, configPath, key string) (*TraceResult, error) {
	defer perf.Track("explore.ExecuteTrace")()

	parsed := keypath.Parse(key)
	if parsed.IsEmpty() {
		return nil, errors.Build(errors.ErrInvalidRequest).
			WithExplanation("trace requires --key").
			WithHint("pass the key as a dotted path, e.g. --key vpc.cidr_block").
			Err()
	}

	path, err := loadValidated(cfg, configPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trace, err := provenance.TraceKey(path, parsed, cfg.Explore.SuggestionLimit)
	if err != nil {
		return nil, err
	}

	result := &TraceResult{Trace: trace}

	// Surface unresolved tokens for the traced key with a root-cause
	// hint: excluded-but-referenced vs never defined.
	policy := exclude.NewPolicy(cfg.Excluded)
	final := path.Final()
	for _, token := range final.Unresolved {
		if token.Path != trace.Key {
			continue
		}
		result.Diagnostics = append(result.Diagnostics, policy.Diagnose(token.Reference, final.Raw))
	}

	return result, nil
}

// AnalyzeResult is the outcome of an analyze invocation.
type AnalyzeResult struct {
	ContextID string                `yaml:"context" json:"context"`
	Reports   []analyze.LayerReport `yaml:"layers" json:"layers"`

	// Warnings lists unresolved interpolation tokens remaining at the
	// final layer.
	Warnings []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// ExecuteAnalyze loads the hierarchy for configPath and produces the
// per-layer reports.
func ExecuteAnalyze(ctx context.Context, cfg schema.KomposConfiguration, configPath string) (*AnalyzeResult, error) {
	defer perf.Track("explore.ExecuteAnalyze")()

	path, err := loadValidated(cfg, configPath)
	if err != nil {
		return nil, err
	}

	reports, err := analyze.Analyze(ctx, path)
	if err != nil {
		return nil, err
	}

	result := &AnalyzeResult{ContextID: path.ID, Reports: reports}

	policy := exclude.NewPolicy(cfg.Excluded)
	final := path.Final()
	for _, token := range final.Unresolved {
		result.Warnings = append(result.Warnings, policy.Diagnose(token.Reference, final.Raw))
	}

	return result, nil
}

// ExecuteCompare loads each context (the extra paths, or every leaf
// context under configPath when none are given) and builds the
// comparison matrix for the requested keys. Context loading and
// evaluation are independent per context and run concurrently.
func ExecuteCompare(ctx context.Context, cfg schema.KomposConfiguration, configPath string, extraPaths []string, keys []string) (*compare.Matrix, error) {
	defer perf.Track("explore.ExecuteCompare")()

	contextPaths := lo.Uniq(extraPaths)
	if len(contextPaths) == 0 {
		leaves, err := merge.DiscoverLeafPaths(configPath)
		if err != nil {
			return nil, err
		}
		contextPaths = leaves
	}
	if len(contextPaths) == 0 {
		return nil, errors.Build(errors.ErrInvalidRequest).
			WithExplanationf("no leaf configuration contexts found under %q", configPath).
			Err()
	}

	logger.Debug("comparing contexts", "count", len(contextPaths))

	paths := make([]*hierarchy.Path, len(contextPaths))
	g, gctx := errgroup.WithContext(ctx)
	for i, contextPath := range contextPaths {
		i, contextPath := i, contextPath
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path, err := loadValidated(cfg, contextPath)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	parsedKeys := lo.Map(keys, func(key string, _ int) keypath.KeyPath {
		return keypath.Parse(key)
	})

	return compare.Compare(ctx, paths, parsedKeys)
}

// VisualizeResult is the outcome of a visualize invocation.
type VisualizeResult struct {
	Tree *visualize.Tree
}

// ExecuteVisualize loads the hierarchy, analyzes it and folds the
// reports into a renderable tree.
func ExecuteVisualize(ctx context.Context, cfg schema.KomposConfiguration, configPath string) (*VisualizeResult, error) {
	defer perf.Track("explore.ExecuteVisualize")()

	path, err := loadValidated(cfg, configPath)
	if err != nil {
		return nil, err
	}

	reports, err := analyze.Analyze(ctx, path)
	if err != nil {
		return nil, err
	}

	tree, err := visualize.BuildTree(path, reports, cfg.Explore)
	if err != nil {
		return nil, err
	}

	return &VisualizeResult{Tree: tree}, nil
}

func loadValidated(cfg schema.KomposConfiguration, configPath string) (*hierarchy.Path, error) {
	path, err := merge.LoadHierarchy(&cfg, configPath)
	if err != nil {
		return nil, err
	}
	if err := path.Validate(); err != nil {
		return nil, err
	}
	return path, nil
}
