package yamlstream

import (
	"fmt"
	"strings"
	"time"

	"github.com/grafana/regexp"
)

// StyleChoice is a policy's preference for how a string scalar is quoted.
type StyleChoice int

const (
	NoPreference StyleChoice = iota
	PreferSingleQuoted
	PreferDoubleQuoted
)

// String returns the choice name.
func (c StyleChoice) String() string {
	switch c {
	case PreferSingleQuoted:
		return "single-quoted"
	case PreferDoubleQuoted:
		return "double-quoted"
	default:
		return "no-preference"
	}
}

// Policy decides how strings and timestamps are written. It is called
// synchronously during a walk and must not start another walk on the same
// call.
type Policy interface {
	// StringStyle returns the preferred quoting for s.
	StringStyle(s string) (StyleChoice, error)
	// TimestampText returns the text emitted for t.
	TimestampText(t time.Time) (string, error)
}

// PolicyFuncs adapts a pair of functions to [Policy]. A nil field behaves like
// [PlainPolicy].
type PolicyFuncs struct {
	String    func(string) (StyleChoice, error)
	Timestamp func(time.Time) (string, error)
}

func (p PolicyFuncs) StringStyle(s string) (StyleChoice, error) {
	if p.String == nil {
		return NoPreference, nil
	}
	return p.String(s)
}

func (p PolicyFuncs) TimestampText(t time.Time) (string, error) {
	if p.Timestamp == nil {
		return PlainPolicy.TimestampText(t)
	}
	return p.Timestamp(t)
}

// ISOTimeLayout is the timestamp layout used by [DefaultPolicy]: UTC with
// millisecond precision.
const ISOTimeLayout = "2006-01-02T15:04:05.000Z"

// Patterns from http://yaml.org/type/.
const (
	nullPattern     = `(?:null|~)`
	boolPattern     = `(?:y|yes|n|no|true|false|on|off)`
	int2Pattern     = `(?:[-+]?0b[0-1_]+)`
	int8Pattern     = `(?:[-+]?0[0-7_]+)`
	int8oPattern    = `(?:[-+]?0o[0-7_]+)`
	zeroPadPattern  = `(?:[-+]?0[0-9_]+(?:\.[0-9_]*)?)`
	int10Pattern    = `(?:[-+]?(?:0|[1-9][0-9_]*))`
	int16Pattern    = `(?:[-+]?0x[0-9a-f_]+)`
	int60Pattern    = `(?:[-+]?[1-9][0-9_]*(?::[0-5]?[0-9])+)`
	float10Pattern  = `(?:[-+]?(?:[0-9][0-9_]*)?\.[0-9.]*(?:e[-+]?[0-9]+)?)`
	floatExpPattern = `(?:[-+]?[0-9][0-9_]*e[-+]?[0-9]+)`
	float60Pattern  = `(?:[-+]?[0-9][0-9_]*(?::[0-5]?[0-9])+\.[0-9_]*)`
	infPattern      = `(?:[-+]?\.inf)`
	nanPattern      = `(?:\.nan)`
	ts1Pattern      = `(?:[0-9]{4}-[0-9]{2}-[0-9]{2})`
	ts2Pattern      = `(?:[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}` +
		`(?:[Tt]|[\s\t]+)[0-9]{1,2}` +
		`:[0-9]{1,2}` +
		`:[0-9]{1,2}` +
		`(?:\.[0-9]*)?` +
		`(?:[\s\t]*(?:Z|[-+][0-9][0-9]?(?::[0-9][0-9])?))?)`
)

func literalRegexp(patterns ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*(?:` + strings.Join(patterns, "|") + `)\s*$`)
}

var (
	yamlLiteral = literalRegexp(
		nullPattern, boolPattern,
		int2Pattern, int8Pattern, int8oPattern, int10Pattern, int16Pattern, int60Pattern, zeroPadPattern,
		float10Pattern, floatExpPattern, float60Pattern, infPattern, nanPattern,
		ts1Pattern, ts2Pattern,
	)
	timestampLiteral = literalRegexp(ts1Pattern, ts2Pattern)
)

// LooksLikeLiteral reports whether s, written as a plain scalar, could be read
// back as something other than a string.
func LooksLikeLiteral(s string) bool {
	return s == "" || yamlLiteral.MatchString(s)
}

type defaultPolicy struct{}

func (defaultPolicy) StringStyle(s string) (StyleChoice, error) {
	if LooksLikeLiteral(s) {
		return PreferDoubleQuoted, nil
	}
	return NoPreference, nil
}

func (defaultPolicy) TimestampText(t time.Time) (string, error) {
	return t.UTC().Format(ISOTimeLayout), nil
}

type plainPolicy struct{}

func (plainPolicy) StringStyle(string) (StyleChoice, error) { return NoPreference, nil }

func (plainPolicy) TimestampText(t time.Time) (string, error) {
	return t.Format(time.RFC3339Nano), nil
}

var (
	// DefaultPolicy double-quotes strings that would otherwise read back as
	// null, bool, number or timestamp, and writes timestamps as UTC ISO-8601
	// with milliseconds.
	DefaultPolicy Policy = defaultPolicy{}

	// PlainPolicy expresses no quoting preference and writes timestamps as
	// RFC 3339 with nanoseconds.
	PlainPolicy Policy = plainPolicy{}
)

func stringStyle(p Policy, s string) (StyleChoice, error) {
	c, err := p.StringStyle(s)
	if err != nil {
		return NoPreference, fmt.Errorf("%w: string %q: %w", ErrPolicy, s, err)
	}
	return c, nil
}

func timestampText(p Policy, t time.Time) (string, error) {
	s, err := p.TimestampText(t)
	if err != nil {
		return "", fmt.Errorf("%w: timestamp %s: %w", ErrPolicy, t.Format(time.RFC3339Nano), err)
	}
	return s, nil
}
