// Package yamlstream renders in-memory values as block-style YAML documents.
//
// A [Value] is a closed tagged union of null, bool, int, float, string,
// timestamp, sequence and ordered mapping. Values are built directly with
// the constructors ([String], [Seq], [Map], ...) or converted from ordinary Go
// values with [ValueOf]. The central entry point is [Stringify]:
//
//	v := yamlstream.Map(
//	    yamlstream.P("a", yamlstream.Int(1)),
//	    yamlstream.P("b", yamlstream.Seq(yamlstream.Bool(true), yamlstream.Null())),
//	)
//	out, err := yamlstream.Stringify(v, yamlstream.DefaultPolicy)
//	// a: 1
//	// b:
//	// - true
//	// -
//
// # Pipeline
//
// Rendering is a walk over the value that produces an event stream
// (STREAM-START, DOCUMENT-START, nodes, DOCUMENT-END, STREAM-END). Events go
// to an [Emitter]; the built-in emitter writes block YAML and hands each
// fragment to an accumulator of immutable chunks that is concatenated once
// when the walk succeeds. Use [Walk] or [Events] to drive a custom
// [Emitter], and [NewEmitter] to write events straight to an [io.Writer].
//
// # Scalar Styles
//
// Null, bool, int and float scalars are always plain. Strings and timestamps
// consult a [Policy]: [Policy.StringStyle] may ask for single or double
// quotes, and [Policy.TimestampText] produces the text of a timestamp.
// Whatever the policy says, a string or timestamp longer than
// [LiteralThreshold] code units of the output encoding is written as a
// literal block scalar. The emitter falls back to a quoted style when the
// requested one cannot represent the text faithfully.
//
// [DefaultPolicy] double-quotes strings that would read back as another type
// ("true", "1e3", "2001-12-14", ...) and writes timestamps in UTC ISO-8601
// with milliseconds.
//
// # Unsupported Values
//
// Functions, channels and compiled regular expressions have no YAML
// representation. They produce no node: a root unsupported value yields an
// empty document, and a mapping entry whose value is unsupported still emits
// its key with no value node after it. The following nodes then pair up
// shifted by one, and the block emitter fails with [EmitterError] when the
// mapping closes on a key without a value. Use [WithOmitUnsupported] to drop
// such entries entirely.
//
// # Encodings
//
// [WithEncoding] selects [UTF8] (default) or [UTF16] output. The encoding
// decides the width of the accumulated code units and the unit in which the
// literal threshold is measured. [StringifyUTF16] returns the raw units.
//
// # Errors
//
// Emission failures are returned as [*Error] with one of the kinds
// [MemoryError], [WriterError], [EmitterError] or [InternalError], matching
// the sentinels [ErrMemory], [ErrWriter], [ErrEmitter] and [ErrInternal].
// Policy failures wrap [ErrPolicy]. The first failure aborts the walk and no
// partial output is returned.
//
// # Parsing
//
// [Parse] reads YAML back into a [Value] using gopkg.in/yaml.v3.
package yamlstream
