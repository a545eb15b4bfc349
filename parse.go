package yamlstream

import (
	"fmt"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

const maxNodeDepth = 1000

// Parse reads the first YAML document in text into a [Value]. An empty
// document is null. Aliases are expanded; mapping keys must be scalars.
func Parse(text string) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return FromNode(&doc)
}

// FromNode converts a yaml.v3 node tree into a [Value].
func FromNode(n *yaml.Node) (Value, error) {
	return fromNode(n, 0)
}

func fromNode(n *yaml.Node, depth int) (Value, error) {
	if n == nil {
		return Null(), nil
	}
	if depth > maxNodeDepth {
		return Value{}, fmt.Errorf("%w: nesting deeper than %d at line %d", ErrParse, maxNodeDepth, n.Line)
	}
	switch n.Kind {
	case 0:
		return Null(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromNode(n.Content[0], depth+1)
	case yaml.AliasNode:
		return fromNode(n.Alias, depth+1)
	case yaml.ScalarNode:
		return fromScalar(n)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Value{kind: KindSequence, items: items}, nil
	case yaml.MappingNode:
		pairs := make([]Pair, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			for k.Kind == yaml.AliasNode && k.Alias != nil {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("%w: non-scalar mapping key at line %d", ErrParse, k.Line)
			}
			v, err := fromNode(n.Content[i+1], depth+1)
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, Pair{Key: k.Value, Value: v})
		}
		return Map(pairs...), nil
	}
	return Value{}, fmt.Errorf("%w: unknown node kind %d at line %d", ErrParse, n.Kind, n.Line)
}

func fromScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil && u > math.MaxInt64 {
			return Float(float64(u)), nil
		}
		return Value{}, fmt.Errorf("%w: integer %q out of range at line %d", ErrParse, n.Value, n.Line)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return Float(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return String(n.Value), nil
		}
		return Timestamp(t), nil
	default:
		return String(n.Value), nil
	}
}
