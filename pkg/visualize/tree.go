// Package visualize folds per-layer aggregates into a hierarchy tree
// and renders it as indented text, a GraphViz DOT graph, markdown, or
// structured data.
package visualize

import (
	"github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/analyze"
	"github.com/adobe/kompos/pkg/hierarchy"
	"github.com/adobe/kompos/pkg/perf"
	"github.com/adobe/kompos/pkg/schema"
)

// Bucket classifies a tree node's size for visual styling. Thresholds
// are configuration, not dataset constants.
type Bucket int

const (
	BucketSmall Bucket = iota
	BucketMedium
	BucketLarge
)

func (b Bucket) String() string {
	switch b {
	case BucketSmall:
		return "small"
	case BucketMedium:
		return "medium"
	case BucketLarge:
		return "large"
	default:
		return "unknown"
	}
}

// Node is one hierarchy layer in the rendered tree.
type Node struct {
	ID       string
	Depth    int
	KeyCount int
	Delta    int
	Bucket   Bucket
	Report   analyze.LayerReport
	Children []*Node
}

// Tree is the renderable hierarchy. It is purely derived from the
// snapshots and reports; rendering never mutates it.
type Tree struct {
	ContextID string
	Root      *Node
}

// BuildTree folds the layer reports into a root-to-leaf chain of nodes.
// reports must parallel path.Layers.
func BuildTree(path *hierarchy.Path, reports []analyze.LayerReport, cfg schema.Explore) (*Tree, error) {
	defer perf.Track("visualize.BuildTree")()

	if path == nil || len(path.Layers) == 0 {
		return nil, errors.Build(errors.ErrInvalidRequest).
			WithExplanation("visualize requires a hierarchy path with at least one layer").
			Err()
	}
	if len(reports) != len(path.Layers) {
		return nil, errors.Build(errors.ErrInvalidRequest).
			WithExplanationf("layer report count %d does not match layer count %d", len(reports), len(path.Layers)).
			Err()
	}

	tree := &Tree{ContextID: path.ID}
	var parent *Node

	for i, layer := range path.Layers {
		node := &Node{
			ID:       layer.ID,
			Depth:    i,
			KeyCount: layer.Raw.Len(),
			Bucket:   bucketFor(layer.Raw.Len(), cfg),
			Report:   reports[i],
		}
		if parent != nil {
			node.Delta = node.KeyCount - parent.KeyCount
			parent.Children = append(parent.Children, node)
		} else {
			tree.Root = node
		}
		parent = node
	}

	return tree, nil
}

func bucketFor(count int, cfg schema.Explore) Bucket {
	small := cfg.SmallThreshold
	medium := cfg.MediumThreshold
	if small <= 0 {
		small = schema.DefaultSmallThreshold
	}
	if medium <= 0 {
		medium = schema.DefaultMediumThreshold
	}

	switch {
	case count < small:
		return BucketSmall
	case count < medium:
		return BucketMedium
	default:
		return BucketLarge
	}
}

// Walk visits nodes root-first.
func (t *Tree) Walk(fn func(*Node)) {
	var visit func(*Node)
	visit = func(n *Node) {
		if n == nil {
			return
		}
		fn(n)
		for _, child := range n.Children {
			visit(child)
		}
	}
	visit(t.Root)
}

// Nodes returns the chain root-first as a flat slice.
func (t *Tree) Nodes() []*Node {
	var nodes []*Node
	t.Walk(func(n *Node) { nodes = append(nodes, n) })
	return nodes
}

// ToDoc converts the tree to plain data for YAML/JSON output.
func (t *Tree) ToDoc() map[string]any {
	layers := make([]map[string]any, 0)
	t.Walk(func(n *Node) {
		files := make([]map[string]any, 0, len(n.Report.Files))
		for _, f := range n.Report.Files {
			files = append(files, map[string]any{
				"file":         f.File,
				"new":          f.Counts.New,
				"overridden":   f.Counts.Overridden,
				"interpolated": f.Counts.Interpolated,
			})
		}
		layers = append(layers, map[string]any{
			"layer":     n.ID,
			"depth":     n.Depth,
			"key_count": n.KeyCount,
			"delta":     n.Delta,
			"bucket":    n.Bucket.String(),
			"files":     files,
		})
	})

	return map[string]any{
		"context": t.ContextID,
		"layers":  layers,
	}
}
