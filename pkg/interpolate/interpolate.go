// Package interpolate substitutes {{key.path}} placeholder tokens in a
// flattened configuration view. It is the only place token semantics
// are evaluated; the provenance engine observes token counts only.
package interpolate

import (
	"regexp"
	"strings"

	"github.com/adobe/kompos/pkg/keypath"
	"github.com/adobe/kompos/pkg/value"
)

// tokenRe matches the innermost {{...}} token, so nested tokens like
// {{outer.{{inner}}}} resolve inside-out across passes.
var tokenRe = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// Token is an interpolation placeholder found in a value.
type Token struct {
	// Path is the dotted key whose value contains the token.
	Path string

	// Reference is the dotted key the token points at.
	Reference string
}

// Result carries the resolved view plus any tokens left unresolved
// after the final pass.
type Result struct {
	Resolved   *value.FlatMap
	Unresolved []Token
}

// Resolve substitutes tokens in all string values of flat, iterating
// until a fixed point or maxPasses. The input is not mutated.
func Resolve(flat *value.FlatMap, maxPasses int) *Result {
	if maxPasses <= 0 {
		maxPasses = 1
	}

	resolved := value.NewFlatMap()
	for _, path := range flat.Paths() {
		v, _ := flat.Get(path)
		resolved.Set(keypath.Parse(path), v)
	}

	for pass := 0; pass < maxPasses; pass++ {
		if !resolvePass(resolved) {
			break
		}
	}

	return &Result{
		Resolved:   resolved,
		Unresolved: collectUnresolved(resolved),
	}
}

// resolvePass performs one substitution sweep and reports whether any
// value changed.
func resolvePass(flat *value.FlatMap) bool {
	changed := false

	for _, path := range flat.Paths() {
		v, _ := flat.Get(path)
		if v.Kind() != value.KindString {
			continue
		}

		next, substituted := substitute(v.Scalar(), flat)
		if !substituted {
			continue
		}

		flat.Set(keypath.Parse(path), next)
		changed = true
	}

	return changed
}

// substitute resolves tokens in one string. When the entire string is a
// single token, the referenced value replaces it wholesale, preserving
// its kind; otherwise references are spliced in textual form.
func substitute(s string, flat *value.FlatMap) (value.Value, bool) {
	if m := tokenRe.FindStringSubmatch(s); m != nil && m[0] == s {
		if target, ok := flat.Get(m[1]); ok && !containsToken(target) {
			return target, true
		}
		return value.String(s), false
	}

	substituted := false
	next := tokenRe.ReplaceAllStringFunc(s, func(match string) string {
		ref := tokenRe.FindStringSubmatch(match)[1]
		target, ok := flat.Get(ref)
		if !ok || containsToken(target) {
			return match
		}
		substituted = true
		return target.Display()
	})

	if !substituted {
		return value.String(s), false
	}
	return value.String(next), true
}

// containsToken reports whether a value still carries unresolved tokens
// in its string form. Substituting such a value would smuggle foreign
// tokens into the target.
func containsToken(v value.Value) bool {
	return v.Kind() == value.KindString && strings.Contains(v.Scalar(), "{{")
}

func collectUnresolved(flat *value.FlatMap) []Token {
	var unresolved []Token
	for _, path := range flat.Paths() {
		v, _ := flat.Get(path)
		if v.Kind() != value.KindString {
			continue
		}
		for _, m := range tokenRe.FindAllStringSubmatch(v.Scalar(), -1) {
			unresolved = append(unresolved, Token{Path: path, Reference: m[1]})
		}
	}
	return unresolved
}
