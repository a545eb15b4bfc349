package yamlstream

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Emitter consumes an event stream.
type Emitter interface {
	Emit(ev Event) error
}

// EmitterFunc adapts a function to [Emitter].
type EmitterFunc func(Event) error

func (f EmitterFunc) Emit(ev Event) error { return f(ev) }

const (
	bestIndent   = 2
	maxSimpleKey = 128
)

type emitterState int

const (
	emitStreamStartState emitterState = iota
	emitFirstDocumentStartState
	emitDocumentStartState
	emitDocumentContentState
	emitDocumentEndState
	emitEmptySequenceState
	emitEmptyMappingState
	emitBlockSequenceFirstItemState
	emitBlockSequenceItemState
	emitBlockMappingFirstKeyState
	emitBlockMappingKeyState
	emitBlockMappingSimpleValueState
	emitBlockMappingValueState
	emitEndState
)

// blockEmitter writes events as block-style YAML. Events are queued until
// enough look-ahead is available to decide on empty collections and simple
// keys; the text produced by each call to Emit is handed to out as one chunk.
type blockEmitter struct {
	out output
	buf []byte

	encoding Encoding
	events   []Event
	state    emitterState
	states   []emitterState
	indent   int
	indents  []int

	column     int
	whitespace bool
	indention  bool
	forceBreak bool

	mappingContext   bool
	simpleKeyContext bool

	failed error
}

// NewEmitter returns an [Emitter] writing UTF-8 block-style YAML to w.
// Failures of w are reported as [WriterError].
func NewEmitter(w io.Writer) Emitter {
	return newBlockEmitter(writerOutput{w: w})
}

func newBlockEmitter(out output) *blockEmitter {
	return &blockEmitter{out: out, state: emitStreamStartState}
}

// Emit queues ev, processes every event that has enough look-ahead and
// flushes the resulting text. After the first failure every call returns
// that failure.
func (e *blockEmitter) Emit(ev Event) error {
	if e.failed != nil {
		return e.failed
	}
	if e.state == emitStreamStartState && len(e.events) == 0 && ev.Type != StreamStartEvent {
		return e.fail(emitterError("expected STREAM-START"))
	}
	e.events = append(e.events, ev)
	for !e.needMoreEvents() {
		if err := e.stateMachine(e.events[0]); err != nil {
			return e.fail(err)
		}
		e.events = e.events[1:]
	}
	if err := e.flush(); err != nil {
		return e.fail(err)
	}
	return nil
}

func (e *blockEmitter) fail(err error) error {
	e.failed = err
	e.buf = nil
	e.events = nil
	return err
}

func (e *blockEmitter) flush() error {
	if len(e.buf) == 0 {
		return nil
	}
	err := e.out.write(e.buf, e.encoding)
	e.buf = e.buf[:0]
	return err
}

// needMoreEvents reports whether the head of the queue must wait for
// following events before it can be processed.
func (e *blockEmitter) needMoreEvents() bool {
	if len(e.events) == 0 {
		return true
	}
	var accumulate int
	switch e.events[0].Type {
	case DocumentStartEvent:
		accumulate = 1
	case SequenceStartEvent:
		accumulate = 2
	case MappingStartEvent:
		accumulate = 3
	default:
		return false
	}
	if len(e.events)-1 >= accumulate {
		return false
	}
	level := 0
	for _, ev := range e.events {
		switch ev.Type {
		case StreamStartEvent, DocumentStartEvent, SequenceStartEvent, MappingStartEvent:
			level++
		case StreamEndEvent, DocumentEndEvent, SequenceEndEvent, MappingEndEvent:
			level--
		}
		if level == 0 {
			return false
		}
	}
	return true
}

func (e *blockEmitter) stateMachine(ev Event) error {
	switch e.state {
	case emitStreamStartState:
		return e.emitStreamStart(ev)
	case emitFirstDocumentStartState:
		return e.emitDocumentStart(ev, true)
	case emitDocumentStartState:
		return e.emitDocumentStart(ev, false)
	case emitDocumentContentState:
		if ev.Type == DocumentEndEvent {
			return e.emitDocumentEnd(ev)
		}
		e.pushState(emitDocumentEndState)
		return e.emitNode(ev, false, false)
	case emitDocumentEndState:
		return e.emitDocumentEnd(ev)
	case emitEmptySequenceState:
		return e.emitEmptyEnd(ev, SequenceEndEvent, "]")
	case emitEmptyMappingState:
		return e.emitEmptyEnd(ev, MappingEndEvent, "}")
	case emitBlockSequenceFirstItemState:
		return e.emitBlockSequenceItem(ev, true)
	case emitBlockSequenceItemState:
		return e.emitBlockSequenceItem(ev, false)
	case emitBlockMappingFirstKeyState:
		return e.emitBlockMappingKey(ev, true)
	case emitBlockMappingKeyState:
		return e.emitBlockMappingKey(ev, false)
	case emitBlockMappingSimpleValueState:
		return e.emitBlockMappingValue(ev, true)
	case emitBlockMappingValueState:
		return e.emitBlockMappingValue(ev, false)
	case emitEndState:
		return emitterError("expected nothing after STREAM-END")
	}
	return &Error{Kind: InternalError, Problem: "invalid emitter state " + strconv.Itoa(int(e.state))}
}

func (e *blockEmitter) emitStreamStart(ev Event) error {
	if ev.Type != StreamStartEvent {
		return emitterError("expected STREAM-START")
	}
	if !ev.Encoding.valid() {
		return emitterError("unsupported encoding " + ev.Encoding.String())
	}
	e.encoding = ev.Encoding
	e.indent = -1
	e.column = 0
	e.whitespace = true
	e.indention = true
	e.state = emitFirstDocumentStartState
	return nil
}

func (e *blockEmitter) emitDocumentStart(ev Event, first bool) error {
	switch ev.Type {
	case DocumentStartEvent:
		if !ev.Implicit || !first {
			e.writeIndent()
			e.writeIndicator("---", true, false, false)
		}
		e.state = emitDocumentContentState
		return nil
	case StreamEndEvent:
		e.state = emitEndState
		return nil
	}
	return emitterError("expected DOCUMENT-START or STREAM-END")
}

func (e *blockEmitter) emitDocumentEnd(ev Event) error {
	if ev.Type != DocumentEndEvent {
		return emitterError("expected DOCUMENT-END")
	}
	if e.column != 0 || e.forceBreak {
		e.writeBreak()
	}
	if !ev.Implicit {
		e.writeIndicator("...", true, false, false)
		e.writeBreak()
	}
	e.whitespace = true
	e.indention = true
	e.indent = -1
	e.indents = e.indents[:0]
	e.state = emitDocumentStartState
	return nil
}

func (e *blockEmitter) emitEmptyEnd(ev Event, want EventType, indicator string) error {
	if ev.Type != want {
		return emitterError("expected " + want.String())
	}
	e.writeIndicator(indicator, false, false, false)
	e.state = e.popState()
	return nil
}

func (e *blockEmitter) emitBlockSequenceItem(ev Event, first bool) error {
	if first {
		e.increaseIndent(e.mappingContext && !e.indention)
	}
	if ev.Type == SequenceEndEvent {
		e.indent = e.popIndent()
		e.state = e.popState()
		return nil
	}
	e.writeIndent()
	e.writeIndicator("-", true, false, true)
	e.pushState(emitBlockSequenceItemState)
	return e.emitNode(ev, false, false)
}

func (e *blockEmitter) emitBlockMappingKey(ev Event, first bool) error {
	if first {
		e.increaseIndent(false)
	}
	if ev.Type == MappingEndEvent {
		e.indent = e.popIndent()
		e.state = e.popState()
		return nil
	}
	e.writeIndent()
	if e.checkSimpleKey() {
		e.pushState(emitBlockMappingSimpleValueState)
		return e.emitNode(ev, true, true)
	}
	e.writeIndicator("?", true, false, true)
	e.pushState(emitBlockMappingValueState)
	return e.emitNode(ev, true, false)
}

func (e *blockEmitter) emitBlockMappingValue(ev Event, simple bool) error {
	if simple {
		e.writeIndicator(":", false, false, false)
	} else {
		e.writeIndent()
		e.writeIndicator(":", true, false, true)
	}
	e.pushState(emitBlockMappingKeyState)
	return e.emitNode(ev, true, false)
}

func (e *blockEmitter) emitNode(ev Event, mapping, simpleKey bool) error {
	e.mappingContext = mapping
	e.simpleKeyContext = simpleKey

	switch ev.Type {
	case ScalarEvent:
		e.emitScalar(ev)
		e.state = e.popState()
		return nil
	case SequenceStartEvent:
		if e.checkEmpty(SequenceEndEvent) {
			e.writeIndicator("[", true, true, false)
			e.state = emitEmptySequenceState
		} else {
			e.state = emitBlockSequenceFirstItemState
		}
		return nil
	case MappingStartEvent:
		if e.checkEmpty(MappingEndEvent) {
			e.writeIndicator("{", true, true, false)
			e.state = emitEmptyMappingState
		} else {
			e.state = emitBlockMappingFirstKeyState
		}
		return nil
	}
	return emitterError("expected SCALAR, SEQUENCE-START, MAPPING-START, or ALIAS")
}

// checkEmpty reports whether the collection opened by the head event is
// closed by the next one.
func (e *blockEmitter) checkEmpty(end EventType) bool {
	return len(e.events) > 1 && e.events[1].Type == end
}

// checkSimpleKey reports whether the key at the head of the queue fits on
// one line before its ':'.
func (e *blockEmitter) checkSimpleKey() bool {
	ev := e.events[0]
	switch ev.Type {
	case ScalarEvent:
		if len(ev.Value) > maxSimpleKey {
			return false
		}
		return !analyzeScalar(ev.Value).multiline
	case SequenceStartEvent:
		return e.checkEmpty(SequenceEndEvent)
	case MappingStartEvent:
		return e.checkEmpty(MappingEndEvent)
	}
	return false
}

func (e *blockEmitter) selectStyle(ev Event) ScalarStyle {
	a := analyzeScalar(ev.Value)
	style := ev.Style
	if style == PlainStyle {
		if !a.plainAllowed ||
			(e.simpleKeyContext && (a.multiline || a.empty)) ||
			!plainKeepsTag(ev.Tag, ev.Value) {
			style = SingleQuotedStyle
		}
	}
	if style == SingleQuotedStyle && !a.singleAllowed {
		style = DoubleQuotedStyle
	}
	if style == LiteralStyle && (!a.blockAllowed || e.simpleKeyContext) {
		style = DoubleQuotedStyle
	}
	return style
}

func (e *blockEmitter) emitScalar(ev Event) {
	switch e.selectStyle(ev) {
	case PlainStyle:
		e.writePlain(ev.Value)
	case SingleQuotedStyle:
		e.writeSingleQuoted(ev.Value)
	case DoubleQuotedStyle:
		e.writeDoubleQuoted(ev.Value)
	default:
		e.writeLiteral(ev.Value)
	}
}

func (e *blockEmitter) increaseIndent(indentless bool) {
	e.indents = append(e.indents, e.indent)
	switch {
	case e.indent < 0:
		e.indent = 0
	case !indentless:
		e.indent += bestIndent
	}
}

func (e *blockEmitter) popIndent() int {
	n := len(e.indents) - 1
	indent := e.indents[n]
	e.indents = e.indents[:n]
	return indent
}

func (e *blockEmitter) pushState(s emitterState) {
	e.states = append(e.states, s)
}

func (e *blockEmitter) popState() emitterState {
	n := len(e.states) - 1
	s := e.states[n]
	e.states = e.states[:n]
	return s
}

// Writers.

func (e *blockEmitter) put(s string) {
	e.buf = append(e.buf, s...)
	e.column += utf8.RuneCountInString(s)
}

func (e *blockEmitter) writeBreak() {
	e.buf = append(e.buf, '\n')
	e.column = 0
	e.forceBreak = false
}

func (e *blockEmitter) writeIndent() {
	indent := max(e.indent, 0)
	if !e.indention || e.forceBreak || e.column > indent ||
		(e.column == indent && !e.whitespace) {
		e.writeBreak()
	}
	for e.column < indent {
		e.put(" ")
	}
	e.whitespace = true
	e.indention = true
}

func (e *blockEmitter) writeIndicator(indicator string, needWhitespace, isWhitespace, isIndention bool) {
	if needWhitespace && !e.whitespace {
		e.put(" ")
	}
	e.put(indicator)
	e.whitespace = isWhitespace
	e.indention = e.indention && isIndention
}

func (e *blockEmitter) writePlain(value string) {
	if value == "" {
		return
	}
	if !e.whitespace {
		e.put(" ")
	}
	e.put(value)
	e.whitespace = false
	e.indention = false
}

func (e *blockEmitter) writeSingleQuoted(value string) {
	e.writeIndicator("'", true, false, false)
	e.put(strings.ReplaceAll(value, "'", "''"))
	e.writeIndicator("'", false, false, false)
}

func (e *blockEmitter) writeDoubleQuoted(value string) {
	e.writeIndicator("\"", true, false, false)
	var sb strings.Builder
	for i := 0; i < len(value); {
		r, size := utf8.DecodeRuneInString(value[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteString(`\x`)
			sb.WriteString(hex(uint32(value[i]), 2))
			i += size
			continue
		}
		i += size
		switch r {
		case 0:
			sb.WriteString(`\0`)
		case '\a':
			sb.WriteString(`\a`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\v':
			sb.WriteString(`\v`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		case 0x1B:
			sb.WriteString(`\e`)
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case 0x85:
			sb.WriteString(`\N`)
		case 0xA0:
			sb.WriteString(`\_`)
		case 0x2028:
			sb.WriteString(`\L`)
		case 0x2029:
			sb.WriteString(`\P`)
		default:
			switch {
			case isPrintable(r):
				sb.WriteRune(r)
			case r <= 0xFF:
				sb.WriteString(`\x` + hex(uint32(r), 2))
			case r <= 0xFFFF:
				sb.WriteString(`\u` + hex(uint32(r), 4))
			default:
				sb.WriteString(`\U` + hex(uint32(r), 8))
			}
		}
	}
	e.put(sb.String())
	e.writeIndicator("\"", false, false, false)
}

func hex(v uint32, width int) string {
	s := strings.ToUpper(strconv.FormatUint(uint64(v), 16))
	return strings.Repeat("0", width-len(s)) + s
}

// writeLiteral writes value as a "|" block scalar indented one level deeper
// than the enclosing collection.
func (e *blockEmitter) writeLiteral(value string) {
	e.writeIndicator("|", true, false, false)
	if value != "" && (value[0] == ' ' || value[0] == '\n') {
		e.put(strconv.Itoa(bestIndent))
	}
	body, clipped := strings.CutSuffix(value, "\n")
	switch {
	case !clipped:
		e.put("-")
	case body == "" || strings.HasSuffix(body, "\n"):
		e.put("+")
	}

	indent := max(e.indent, 0) + bestIndent
	pad := strings.Repeat(" ", indent)
	if body != "" || clipped {
		for _, line := range strings.Split(body, "\n") {
			e.writeBreak()
			if line != "" {
				e.put(pad)
				e.put(line)
			}
		}
	}
	e.whitespace = false
	e.indention = false
	e.forceBreak = true
}
