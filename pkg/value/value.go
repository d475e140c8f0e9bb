// Package value defines the tagged variant over YAML configuration
// values and the flattener that projects nested mappings onto dotted
// key paths.
//
// Scalars preserve their raw YAML text verbatim: the number 10 and the
// string "10" are distinct values, and equality never coerces between
// numeric, string and boolean forms.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	errUtils "github.com/adobe/kompos/errors"
)

// Kind discriminates the Value variant.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is an immutable tagged variant over YAML data. The zero value
// is Null.
type Value struct {
	kind    Kind
	boolVal bool
	scalar  string // raw literal text for Number and String
	seq     []Value
	mapKeys []string
	mapVals map[string]Value
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolVal: b}
}

// Number returns a numeric value carrying its raw YAML literal.
func Number(literal string) Value {
	return Value{kind: KindNumber, scalar: literal}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, scalar: s}
}

// Sequence returns a sequence value. The slice is not copied; callers
// must not mutate it afterwards.
func Sequence(items []Value) Value {
	return Value{kind: KindSequence, seq: items}
}

// Mapping returns a mapping value with the given key order. Keys and
// values are not copied; callers must not mutate them afterwards.
func Mapping(keys []string, vals map[string]Value) Value {
	return Value{kind: KindMapping, mapKeys: keys, mapVals: vals}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// BoolValue returns the boolean payload. Valid only for KindBool.
func (v Value) BoolValue() bool {
	return v.boolVal
}

// Scalar returns the raw literal text of a Number or String.
func (v Value) Scalar() string {
	return v.scalar
}

// Seq returns the sequence payload. Valid only for KindSequence.
func (v Value) Seq() []Value {
	return v.seq
}

// MapKeys returns the mapping's keys in insertion order.
func (v Value) MapKeys() []string {
	return v.mapKeys
}

// MapGet looks up a mapping entry.
func (v Value) MapGet(key string) (Value, bool) {
	val, ok := v.mapVals[key]
	return val, ok
}

// Equal reports structural equality. Mapping comparison is
// order-insensitive; scalar comparison is verbatim on the raw literal,
// never coercing between kinds.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == other.boolVal
	case KindNumber, KindString:
		return v.scalar == other.scalar
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.mapVals) != len(other.mapVals) {
			return false
		}
		for key, val := range v.mapVals {
			otherVal, ok := other.mapVals[key]
			if !ok || !val.Equal(otherVal) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Display returns the single-line form used in traces, comparison cells
// and diff highlighting.
func (v Value) Display() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.boolVal)
	case KindNumber, KindString:
		return v.scalar
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, item := range v.seq {
			parts[i] = item.Display()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMapping:
		return fmt.Sprintf("<mapping with %d keys>", len(v.mapKeys))
	default:
		return ""
	}
}

// ToAny converts the value to plain Go data for structured (YAML/JSON)
// output. Numbers are emitted as int64 or float64 when their literal
// parses; otherwise the literal is kept as a string.
func (v Value) ToAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolVal
	case KindNumber:
		if i, err := strconv.ParseInt(v.scalar, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(v.scalar, 64); err == nil {
			return f
		}
		return v.scalar
	case KindString:
		return v.scalar
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.ToAny()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.mapVals))
		for key, val := range v.mapVals {
			out[key] = val.ToAny()
		}
		return out
	default:
		return nil
	}
}

// FromYAMLNode converts a parsed YAML node into a Value, preserving
// mapping key order and raw scalar literals.
func FromYAMLNode(node *yaml.Node) (Value, error) {
	if node == nil || node.Kind == 0 {
		// An empty document parses to a zero node.
		return Null(), nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return FromYAMLNode(node.Content[0])

	case yaml.AliasNode:
		return FromYAMLNode(node.Alias)

	case yaml.ScalarNode:
		return scalarFromNode(node)

	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := FromYAMLNode(child)
			if err != nil {
				return Null(), err
			}
			items = append(items, item)
		}
		return Sequence(items), nil

	case yaml.MappingNode:
		keys := make([]string, 0, len(node.Content)/2)
		vals := make(map[string]Value, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return Null(), errUtils.Build(errUtils.ErrMalformedSnapshot).
					WithExplanationf("non-scalar mapping key at line %d", keyNode.Line).
					Err()
			}
			key := keyNode.Value
			val, err := FromYAMLNode(node.Content[i+1])
			if err != nil {
				return Null(), err
			}
			if _, exists := vals[key]; !exists {
				keys = append(keys, key)
			}
			vals[key] = val
		}
		return Mapping(keys, vals), nil

	default:
		return Null(), errUtils.Build(errUtils.ErrMalformedSnapshot).
			WithExplanationf("unsupported YAML node kind %d", node.Kind).
			Err()
	}
}

func scalarFromNode(node *yaml.Node) (Value, error) {
	switch node.Tag {
	case "!!null", "":
		if node.Tag == "" && node.Value != "" {
			return String(node.Value), nil
		}
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(node.Value))
		if err != nil {
			// YAML allows yes/no/on/off spellings.
			switch strings.ToLower(node.Value) {
			case "yes", "on":
				b = true
			case "no", "off":
				b = false
			default:
				return Null(), errUtils.Build(errUtils.ErrMalformedSnapshot).
					WithExplanationf("invalid boolean literal %q at line %d", node.Value, node.Line).
					Err()
			}
		}
		return Bool(b), nil
	case "!!int", "!!float":
		return Number(node.Value), nil
	case "!!str":
		return String(node.Value), nil
	default:
		// Custom tags keep their textual form.
		return String(node.Value), nil
	}
}

// FromAny converts plain Go data (e.g. the result of a deep merge) into
// a Value. Mapping keys are ordered alphabetically; callers that need
// source ordering reorder the flattened view instead.
func FromAny(data any) (Value, error) {
	switch v := data.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(v), nil
	case int:
		return Number(strconv.Itoa(v)), nil
	case int64:
		return Number(strconv.FormatInt(v, 10)), nil
	case uint64:
		return Number(strconv.FormatUint(v, 10)), nil
	case float64:
		return Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case string:
		return String(v), nil
	case Value:
		return v, nil
	case []any:
		items := make([]Value, 0, len(v))
		for _, item := range v {
			converted, err := FromAny(item)
			if err != nil {
				return Null(), err
			}
			items = append(items, converted)
		}
		return Sequence(items), nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		vals := make(map[string]Value, len(v))
		for _, key := range keys {
			converted, err := FromAny(v[key])
			if err != nil {
				return Null(), err
			}
			vals[key] = converted
		}
		return Mapping(keys, vals), nil
	default:
		return Null(), errUtils.Build(errUtils.ErrMalformedSnapshot).
			WithExplanationf("unsupported value type %T", data).
			Err()
	}
}
