// Package keypath defines the canonical dotted key-path addressing one
// leaf in a merged configuration mapping.
package keypath

import "strings"

// Separator joins key-path segments in canonical string form.
const Separator = "."

// KeyPath is an ordered sequence of mapping-key segments.
type KeyPath []string

// Parse splits a canonical dotted string into a KeyPath.
// An empty string parses to a nil path.
func Parse(s string) KeyPath {
	if s == "" {
		return nil
	}
	return strings.Split(s, Separator)
}

// String returns the canonical dotted form.
func (k KeyPath) String() string {
	return strings.Join(k, Separator)
}

// IsEmpty reports whether the path has no segments.
func (k KeyPath) IsEmpty() bool {
	return len(k) == 0
}

// Child returns a new path extended by one segment.
func (k KeyPath) Child(segment string) KeyPath {
	child := make(KeyPath, len(k)+1)
	copy(child, k)
	child[len(k)] = segment
	return child
}

// HasPrefix reports whether prefix is a leading segment sequence of k.
func (k KeyPath) HasPrefix(prefix KeyPath) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, seg := range prefix {
		if k[i] != seg {
			return false
		}
	}
	return true
}

// CommonPrefixLen returns the number of leading segments shared by two
// paths.
func CommonPrefixLen(a, b KeyPath) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
