// Package analyze aggregates per-layer new/overridden/unchanged/
// interpolated statistics across a hierarchy path, attributing changes
// to the source files that contributed them.
package analyze

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/hierarchy"
	"github.com/adobe/kompos/pkg/perf"
	"github.com/adobe/kompos/pkg/provenance"
	"github.com/adobe/kompos/pkg/value"
)

// Counts aggregates classifications for one layer or one file.
type Counts struct {
	New          int `yaml:"new" json:"new"`
	Overridden   int `yaml:"overridden" json:"overridden"`
	Unchanged    int `yaml:"unchanged" json:"unchanged"`
	Interpolated int `yaml:"interpolated" json:"interpolated"`
}

// Total sums all classifications.
func (c Counts) Total() int {
	return c.New + c.Overridden + c.Unchanged + c.Interpolated
}

// FileReport is one source file's contribution within a layer.
type FileReport struct {
	File   string `yaml:"file" json:"file"`
	Counts Counts `yaml:"counts" json:"counts"`
}

// LayerReport is the aggregate for one layer relative to the previous.
type LayerReport struct {
	LayerID          string       `yaml:"layer" json:"layer"`
	Ordinal          int          `yaml:"ordinal" json:"ordinal"`
	TotalKeys        int          `yaml:"total_keys" json:"total_keys"`
	Delta            int          `yaml:"delta" json:"delta"`
	Counts           Counts       `yaml:"counts" json:"counts"`
	NewKeys          []string     `yaml:"new_keys,omitempty" json:"new_keys,omitempty"`
	OverriddenKeys   []string     `yaml:"overridden_keys,omitempty" json:"overridden_keys,omitempty"`
	InterpolatedKeys []string     `yaml:"interpolated_keys,omitempty" json:"interpolated_keys,omitempty"`
	Files            []FileReport `yaml:"files,omitempty" json:"files,omitempty"`
}

// Analyze walks the layers in ordinal order, diffing each snapshot
// against the previous and producing one LayerReport per layer. Layer 0
// reports all its keys as new. Keys within a layer are classified
// concurrently; output order follows the snapshot's declared key order
// regardless of completion order.
func Analyze(ctx context.Context, path *hierarchy.Path) ([]LayerReport, error) {
	defer perf.Track("analyze.Analyze")()

	if path == nil || len(path.Layers) == 0 {
		return nil, errors.Build(errors.ErrInvalidRequest).
			WithExplanation("analyze requires a hierarchy path with at least one layer").
			Err()
	}

	reports := make([]LayerReport, 0, len(path.Layers))
	var prev *hierarchy.LayerSnapshot

	for _, layer := range path.Layers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		report, err := analyzeLayer(ctx, prev, layer)
		if err != nil {
			return nil, err
		}
		if prev != nil {
			report.Delta = layer.Raw.Len() - prev.Raw.Len()
		}

		reports = append(reports, report)
		prev = layer
	}

	return reports, nil
}

func analyzeLayer(ctx context.Context, prev, layer *hierarchy.LayerSnapshot) (LayerReport, error) {
	report := LayerReport{
		LayerID:   layer.ID,
		Ordinal:   layer.Ordinal,
		TotalKeys: layer.Raw.Len(),
	}

	keys := layer.Raw.Paths()
	classifications, err := classifyKeys(ctx, prev, layer, keys)
	if err != nil {
		return LayerReport{}, err
	}

	fileCounts := make(map[string]*Counts)

	for i, key := range keys {
		cls := classifications[i]
		switch cls {
		case provenance.New:
			report.Counts.New++
			report.NewKeys = append(report.NewKeys, key)
		case provenance.Overridden:
			report.Counts.Overridden++
			report.OverriddenKeys = append(report.OverriddenKeys, key)
		case provenance.Interpolated:
			report.Counts.Interpolated++
			report.InterpolatedKeys = append(report.InterpolatedKeys, key)
		case provenance.Unchanged:
			report.Counts.Unchanged++
		}

		// Attribute new and changed keys to their originating files.
		if cls == provenance.Unchanged {
			continue
		}
		for _, file := range layer.Origins[key] {
			fc, ok := fileCounts[file]
			if !ok {
				fc = &Counts{}
				fileCounts[file] = fc
			}
			switch cls {
			case provenance.New:
				fc.New++
			case provenance.Overridden:
				fc.Overridden++
			case provenance.Interpolated:
				fc.Interpolated++
			}
		}
	}

	// Preserve the layer's file order; files with no attributed keys
	// still appear with zero counts.
	for _, file := range layer.Files {
		fc := fileCounts[file]
		if fc == nil {
			fc = &Counts{}
		}
		report.Files = append(report.Files, FileReport{File: file, Counts: *fc})
	}

	// A key that vanished relative to the previous layer means the merge
	// result is structurally broken.
	if prev != nil {
		for _, key := range prev.Raw.Paths() {
			if !layer.Raw.Has(key) {
				return LayerReport{}, errors.Build(errors.ErrMalformedSnapshot).
					WithExplanationf("key %q present at layer %q vanished at layer %q", key, prev.ID, layer.ID).
					Err()
			}
		}
	}

	return report, nil
}

// classifyKeys classifies every key of the current layer against the
// previous snapshot. Keys are mutually independent, so classification
// runs in parallel with results written by index.
func classifyKeys(ctx context.Context, prev, layer *hierarchy.LayerSnapshot, keys []string) ([]provenance.Classification, error) {
	classifications := make([]provenance.Classification, len(keys))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			curr, _ := layer.Raw.Get(key)

			var prevVal *value.Value
			if prev != nil {
				if pv, ok := prev.Raw.Get(key); ok {
					prevVal = &pv
				}
			}

			classifications[i] = provenance.Classify(prevVal, curr)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return classifications, nil
}
