package yamlstream

// Class is the semantic YAML type a [Value] serializes as.
type Class uint8

const (
	ClassNull Class = iota
	ClassBool
	ClassInt
	ClassFloat
	ClassString
	ClassTimestamp
	ClassSequence
	ClassMapping
	// ClassSkip marks values that produce no node.
	ClassSkip
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassNull:
		return "null"
	case ClassBool:
		return "bool"
	case ClassInt:
		return "int"
	case ClassFloat:
		return "float"
	case ClassString:
		return "str"
	case ClassTimestamp:
		return "timestamp"
	case ClassSequence:
		return "seq"
	case ClassMapping:
		return "map"
	default:
		return "skip"
	}
}

// IsScalar reports whether values of class c are emitted as a single scalar.
func (c Class) IsScalar() bool { return c <= ClassTimestamp }

// Classify returns the YAML class of v.
func Classify(v Value) Class {
	switch v.kind {
	case KindNull:
		return ClassNull
	case KindBool:
		return ClassBool
	case KindInt:
		return ClassInt
	case KindFloat:
		return ClassFloat
	case KindString:
		return ClassString
	case KindTimestamp:
		return ClassTimestamp
	case KindSequence:
		return ClassSequence
	case KindMapping:
		return ClassMapping
	default:
		return ClassSkip
	}
}
