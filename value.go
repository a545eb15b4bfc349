package yamlstream

import (
	"iter"
	"time"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTimestamp
	KindSequence
	KindMapping
	KindUnsupported
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTimestamp:
		return "timestamp"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Value is an immutable node of the tree being serialized. The zero Value is
// null.
//
// Constructors copy the slices they are given, so a Value can never contain
// itself.
type Value struct {
	kind Kind

	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string
	timeVal  time.Time

	items []Value
	pairs []Pair
}

// Pair is one mapping entry.
type Pair struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolVal: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, intVal: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, floatVal: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, strVal: s} }

// Timestamp returns a timestamp value. Its text is decided by the
// [Policy] at serialization time.
func Timestamp(t time.Time) Value { return Value{kind: KindTimestamp, timeVal: t} }

// Unsupported returns a value with no YAML representation, such as a function.
// It produces no node when serialized.
func Unsupported() Value { return Value{kind: KindUnsupported} }

// Seq returns a sequence of the given items, in order.
func Seq(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindSequence, items: cp}
}

// Map returns a mapping holding pairs in insertion order. A key given more
// than once keeps the position of its first occurrence and the value of its
// last.
func Map(pairs ...Pair) Value {
	cp := make([]Pair, 0, len(pairs))
	index := make(map[string]int, len(pairs))
	for _, p := range pairs {
		if i, ok := index[p.Key]; ok {
			cp[i].Value = p.Value
			continue
		}
		index[p.Key] = len(cp)
		cp = append(cp, p)
	}
	return Value{kind: KindMapping, pairs: cp}
}

// P is shorthand for building a [Pair].
func P(key string, v Value) Pair { return Pair{Key: key, Value: v} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload, or false for other kinds.
func (v Value) Bool() bool { return v.boolVal }

// Int returns the integer payload, or 0 for other kinds.
func (v Value) Int() int64 { return v.intVal }

// Float returns the float payload, or 0 for other kinds.
func (v Value) Float() float64 { return v.floatVal }

// Str returns the string payload, or "" for other kinds.
func (v Value) Str() string { return v.strVal }

// Time returns the timestamp payload, or the zero time for other kinds.
func (v Value) Time() time.Time { return v.timeVal }

// Len returns the number of items of a sequence or entries of a mapping.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.pairs)
	default:
		return 0
	}
}

// Index returns the i-th sequence item. It panics if i is out of range.
func (v Value) Index(i int) Value { return v.items[i] }

// Items iterates the items of a sequence in order.
func (v Value) Items() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, item := range v.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Entries iterates the entries of a mapping in insertion order.
func (v Value) Entries() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, p := range v.pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Pairs returns a copy of the entries of a mapping.
func (v Value) Pairs() []Pair {
	if v.kind != KindMapping {
		return nil
	}
	out := make([]Pair, len(v.pairs))
	copy(out, v.pairs)
	return out
}

// Lookup returns the value stored under key in a mapping.
func (v Value) Lookup(key string) (Value, bool) {
	for _, p := range v.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}
