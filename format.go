package yamlstream

import (
	"math"
	"strconv"
	"strings"
)

// LiteralThreshold is the length, in code units of the output encoding, above
// which string and timestamp scalars are always written in literal style.
const LiteralThreshold = 50

// Scalar is a formatted leaf node.
type Scalar struct {
	Tag   Tag
	Text  string
	Style ScalarStyle
}

// FormatScalar resolves the tag, text and style of v. It reports false for
// sequences, mappings and unsupported values.
func FormatScalar(v Value, p Policy, enc Encoding) (Scalar, bool, error) {
	switch Classify(v) {
	case ClassNull:
		return Scalar{Tag: NullTag}, true, nil
	case ClassBool:
		return Scalar{Tag: BoolTag, Text: strconv.FormatBool(v.boolVal)}, true, nil
	case ClassInt:
		return Scalar{Tag: IntTag, Text: strconv.FormatInt(v.intVal, 10)}, true, nil
	case ClassFloat:
		return Scalar{Tag: FloatTag, Text: formatFloat(v.floatVal)}, true, nil
	case ClassString:
		choice, err := stringStyle(p, v.strVal)
		if err != nil {
			return Scalar{}, false, err
		}
		s := Scalar{Tag: StrTag, Text: v.strVal, Style: choiceStyle(choice)}
		return literalOverride(s, enc), true, nil
	case ClassTimestamp:
		text, err := timestampText(p, v.timeVal)
		if err != nil {
			return Scalar{}, false, err
		}
		s := Scalar{Tag: TimestampTag, Text: text}
		return literalOverride(s, enc), true, nil
	default:
		return Scalar{}, false, nil
	}
}

func choiceStyle(c StyleChoice) ScalarStyle {
	switch c {
	case PreferSingleQuoted:
		return SingleQuotedStyle
	case PreferDoubleQuoted:
		return DoubleQuotedStyle
	default:
		return PlainStyle
	}
}

func literalOverride(s Scalar, enc Encoding) Scalar {
	if enc.units(s.Text) > LiteralThreshold {
		s.Style = LiteralStyle
	}
	return s
}

// formatFloat writes f the way a YAML reader will resolve back to a float:
// shortest round-trip digits, exponent form outside [1e-6, 1e21), and always
// a fraction or exponent.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
