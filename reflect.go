package yamlstream

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	stdregexp "regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/grafana/regexp"
	"gopkg.in/yaml.v3"
)

var (
	valueType    = reflect.TypeFor[Value]()
	timeType     = reflect.TypeFor[time.Time]()
	nodeType     = reflect.TypeFor[yaml.Node]()
	numberType   = reflect.TypeFor[json.Number]()
	regexpType   = reflect.TypeFor[regexp.Regexp]()
	stdRegexType = reflect.TypeFor[stdregexp.Regexp]()
)

// ValueOf builds a [Value] from an arbitrary Go value.
//
//   - nil, nil pointers, nil interfaces → null
//   - bool → bool; signed integers → int; unsigned integers → int, or float
//     above math.MaxInt64; float32/float64 → float
//   - string → string; json.Number → int, float or string
//   - time.Time → timestamp
//   - slices and arrays → sequence
//   - maps → mapping sorted by key; non-string keys are formatted with fmt.Sprint
//   - structs → mapping of exported fields in declaration order, keyed by
//     the lowercased field name unless a `yaml:"name,omitempty,inline"` tag
//     says otherwise; "-" skips the field
//   - yaml.Node → converted with [FromNode]
//   - functions, channels, complex numbers, unsafe pointers and compiled
//     regular expressions → unsupported
//
// A value that refers back to itself through pointers, maps or slices fails
// with [ErrCycle].
func ValueOf(x any) (Value, error) {
	c := &converter{seen: make(map[visit]struct{})}
	return c.value(reflect.ValueOf(x))
}

type visit struct {
	ptr uintptr
	typ reflect.Type
	len int
}

type converter struct {
	seen map[visit]struct{}
}

func (c *converter) enter(rv reflect.Value) (func(), error) {
	key := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if rv.Kind() == reflect.Slice {
		key.len = rv.Len()
	}
	if key.ptr == 0 {
		return func() {}, nil
	}
	if _, ok := c.seen[key]; ok {
		return nil, fmt.Errorf("%w: %s", ErrCycle, rv.Type())
	}
	c.seen[key] = struct{}{}
	return func() { delete(c.seen, key) }, nil
}

func (c *converter) value(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}

	switch rv.Type() {
	case valueType:
		return rv.Interface().(Value), nil
	case timeType:
		return Timestamp(rv.Interface().(time.Time)), nil
	case nodeType:
		n := rv.Interface().(yaml.Node)
		return FromNode(&n)
	case numberType:
		return numberValue(rv.Interface().(json.Number)), nil
	case regexpType, stdRegexType:
		return Unsupported(), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Float(float64(u)), nil
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return c.value(rv.Elem())
	case reflect.Pointer:
		if rv.IsNil() {
			return Null(), nil
		}
		leave, err := c.enter(rv)
		if err != nil {
			return Value{}, err
		}
		defer leave()
		return c.value(rv.Elem())
	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		leave, err := c.enter(rv)
		if err != nil {
			return Value{}, err
		}
		defer leave()
		return c.sequence(rv)
	case reflect.Array:
		return c.sequence(rv)
	case reflect.Map:
		if rv.IsNil() {
			return Null(), nil
		}
		leave, err := c.enter(rv)
		if err != nil {
			return Value{}, err
		}
		defer leave()
		return c.mapping(rv)
	case reflect.Struct:
		pairs, err := c.fields(rv, nil)
		if err != nil {
			return Value{}, err
		}
		return Map(pairs...), nil
	default:
		return Unsupported(), nil
	}
}

func (c *converter) sequence(rv reflect.Value) (Value, error) {
	items := make([]Value, rv.Len())
	for i := range items {
		v, err := c.value(rv.Index(i))
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}
	return Value{kind: KindSequence, items: items}, nil
}

func (c *converter) mapping(rv reflect.Value) (Value, error) {
	pairs := make([]Pair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		v, err := c.value(iter.Value())
		if err != nil {
			return Value{}, err
		}
		pairs = append(pairs, Pair{Key: mapKey(iter.Key()), Value: v})
	}
	slices.SortFunc(pairs, func(a, b Pair) int { return cmp.Compare(a.Key, b.Key) })
	return Map(pairs...), nil
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

// fields appends the mapping entries of a struct to pairs.
func (c *converter) fields(rv reflect.Value, pairs []Pair) ([]Pair, error) {
	t := rv.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, omitEmpty, inline, skip := parseTag(f)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if inline || (f.Anonymous && f.Tag.Get("yaml") == "") {
			if fv.Kind() == reflect.Pointer && !fv.IsNil() {
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct && fv.Type() != timeType {
				var err error
				if pairs, err = c.fields(fv, pairs); err != nil {
					return nil, err
				}
				continue
			}
		}
		if omitEmpty && fv.IsZero() {
			continue
		}
		v, err := c.value(fv)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		pairs = append(pairs, Pair{Key: name, Value: v})
	}
	return pairs, nil
}

func parseTag(f reflect.StructField) (name string, omitEmpty, inline, skip bool) {
	tag := f.Tag.Get("yaml")
	if tag == "-" {
		return "", false, false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	for opt := range strings.SplitSeq(opts, ",") {
		switch opt {
		case "omitempty":
			omitEmpty = true
		case "inline":
			inline = true
		}
	}
	if name == "" {
		name = strings.ToLower(f.Name)
	}
	return name, omitEmpty, inline, false
}

func numberValue(n json.Number) Value {
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return Int(i)
	}
	if f, err := n.Float64(); err == nil {
		return Float(f)
	}
	return String(string(n))
}
