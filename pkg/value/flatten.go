package value

import (
	"github.com/adobe/kompos/pkg/keypath"
)

// FlatMap is an ordered mapping of canonical dotted key paths to leaf
// values. Order is insertion order unless rearranged with OrderBy.
type FlatMap struct {
	order  []string
	values map[string]Value
}

// NewFlatMap returns an empty FlatMap.
func NewFlatMap() *FlatMap {
	return &FlatMap{values: make(map[string]Value)}
}

// Set adds or replaces an entry. New paths append to the order.
func (f *FlatMap) Set(path keypath.KeyPath, v Value) {
	key := path.String()
	if _, exists := f.values[key]; !exists {
		f.order = append(f.order, key)
	}
	f.values[key] = v
}

// Get looks up a value by canonical dotted path.
func (f *FlatMap) Get(path string) (Value, bool) {
	if f == nil {
		return Value{}, false
	}
	v, ok := f.values[path]
	return v, ok
}

// Has reports whether the path is present.
func (f *FlatMap) Has(path string) bool {
	if f == nil {
		return false
	}
	_, ok := f.values[path]
	return ok
}

// Len returns the number of entries.
func (f *FlatMap) Len() int {
	if f == nil {
		return 0
	}
	return len(f.values)
}

// Paths returns the dotted paths in iteration order. The caller must
// not mutate the returned slice.
func (f *FlatMap) Paths() []string {
	if f == nil {
		return nil
	}
	return f.order
}

// OrderBy rearranges iteration order to follow the given path list.
// Paths not named keep their relative order after the named ones; named
// paths not present are ignored.
func (f *FlatMap) OrderBy(paths []string) {
	if f == nil {
		return
	}

	seen := make(map[string]bool, len(paths))
	reordered := make([]string, 0, len(f.order))
	for _, p := range paths {
		if _, ok := f.values[p]; ok && !seen[p] {
			reordered = append(reordered, p)
			seen[p] = true
		}
	}
	for _, p := range f.order {
		if !seen[p] {
			reordered = append(reordered, p)
			seen[p] = true
		}
	}
	f.order = reordered
}

// Flatten projects a nested Value onto dotted key paths. Mappings
// recurse; sequences and scalars terminate recursion as leaves. Empty
// mappings produce no leaves. A non-mapping root produces an empty
// result: configuration documents are mappings by construction.
func Flatten(root Value) *FlatMap {
	flat := NewFlatMap()
	if root.Kind() == KindMapping {
		flattenInto(flat, nil, root)
	}
	return flat
}

func flattenInto(flat *FlatMap, prefix keypath.KeyPath, v Value) {
	for _, key := range v.MapKeys() {
		child, _ := v.MapGet(key)
		childPath := prefix.Child(key)
		if child.Kind() == KindMapping {
			flattenInto(flat, childPath, child)
			continue
		}
		flat.Set(childPath, child)
	}
}
