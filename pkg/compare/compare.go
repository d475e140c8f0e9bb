// Package compare evaluates key paths against independently resolved
// hierarchy contexts and produces a matrix with pairwise difference
// flags.
package compare

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/hierarchy"
	"github.com/adobe/kompos/pkg/keypath"
	"github.com/adobe/kompos/pkg/perf"
	"github.com/adobe/kompos/pkg/value"
)

// Cell is one (context, key) observation. Absence is a valid,
// reportable state, not an error.
type Cell struct {
	ContextID string
	Present   bool
	Value     *value.Value
	// Unresolved is set when no post-interpolation form was available
	// and the raw value is reported instead.
	Unresolved bool
}

// Row is one key's cells across all contexts plus the derived differs
// flag.
type Row struct {
	Key     string
	Cells   []Cell
	Differs bool
}

// Matrix is the full comparison result. Rows follow the requested key
// order (or sorted union order for "all"); cells follow the supplied
// context order.
type Matrix struct {
	Contexts []string
	Rows     []Row
}

// Compare evaluates the requested keys (all final-snapshot keys when
// keys is empty) against every context. Contexts are independent and
// evaluated concurrently; the assembled matrix is deterministic
// regardless of completion order.
func Compare(ctx context.Context, paths []*hierarchy.Path, keys []keypath.KeyPath) (*Matrix, error) {
	defer perf.Track("compare.Compare")()

	if len(paths) == 0 {
		return nil, errors.Build(errors.ErrInvalidRequest).
			WithExplanation("compare requires at least one hierarchy context").
			Err()
	}
	for _, p := range paths {
		if p == nil || p.Final() == nil {
			return nil, errors.Build(errors.ErrInvalidRequest).
				WithExplanation("compare received an empty hierarchy context").
				Err()
		}
	}

	requested := requestedKeys(paths, keys)
	if len(requested) == 0 {
		return nil, errors.Build(errors.ErrInvalidRequest).
			WithExplanation("compare has no keys to evaluate").
			WithHint("pass --keys or point at contexts that define configuration").
			Err()
	}

	// Evaluate each context's column concurrently. Each evaluation only
	// reads its own snapshots.
	columns := make([]map[string]Cell, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			columns[i] = evaluateColumn(path, requested)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matrix := &Matrix{Rows: make([]Row, 0, len(requested))}
	for _, path := range paths {
		matrix.Contexts = append(matrix.Contexts, path.ID)
	}

	for _, key := range requested {
		row := Row{Key: key, Cells: make([]Cell, 0, len(paths))}
		for i := range paths {
			row.Cells = append(row.Cells, columns[i][key])
		}
		row.Differs = differs(row.Cells)
		matrix.Rows = append(matrix.Rows, row)
	}

	return matrix, nil
}

// requestedKeys returns the dotted keys to evaluate: the caller's
// filter verbatim, or the sorted union of all final snapshots' keys.
func requestedKeys(paths []*hierarchy.Path, keys []keypath.KeyPath) []string {
	if len(keys) > 0 {
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			if !k.IsEmpty() {
				out = append(out, k.String())
			}
		}
		return out
	}

	union := make(map[string]struct{})
	for _, path := range paths {
		for _, key := range path.Final().Raw.Paths() {
			union[key] = struct{}{}
		}
	}

	out := make([]string, 0, len(union))
	for key := range union {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func evaluateColumn(path *hierarchy.Path, keys []string) map[string]Cell {
	final := path.Final()
	column := make(map[string]Cell, len(keys))

	for _, key := range keys {
		cell := Cell{ContextID: path.ID}
		if v, ok, resolved := final.LookupResolved(key); ok {
			vCopy := v
			cell.Present = true
			cell.Value = &vCopy
			cell.Unresolved = !resolved
		}
		column[key] = cell
	}

	return column
}

// differs reports structural inequality across present cells. A key
// with at most one present cell is trivially non-differing.
func differs(cells []Cell) bool {
	var first *value.Value
	for _, cell := range cells {
		if !cell.Present {
			continue
		}
		if first == nil {
			first = cell.Value
			continue
		}
		if !first.Equal(*cell.Value) {
			return true
		}
	}
	return false
}
