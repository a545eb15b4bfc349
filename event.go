package yamlstream

import "fmt"

// EventType identifies a token of the event stream.
type EventType int

const (
	NoEvent EventType = iota
	StreamStartEvent
	StreamEndEvent
	DocumentStartEvent
	DocumentEndEvent
	SequenceStartEvent
	SequenceEndEvent
	MappingStartEvent
	MappingEndEvent
	ScalarEvent
)

var eventNames = [...]string{
	NoEvent:            "NONE",
	StreamStartEvent:   "STREAM-START",
	StreamEndEvent:     "STREAM-END",
	DocumentStartEvent: "DOCUMENT-START",
	DocumentEndEvent:   "DOCUMENT-END",
	SequenceStartEvent: "SEQUENCE-START",
	SequenceEndEvent:   "SEQUENCE-END",
	MappingStartEvent:  "MAPPING-START",
	MappingEndEvent:    "MAPPING-END",
	ScalarEvent:        "SCALAR",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventNames[t]
}

// ScalarStyle is the presentation of a scalar node.
type ScalarStyle int

const (
	PlainStyle ScalarStyle = iota
	SingleQuotedStyle
	DoubleQuotedStyle
	LiteralStyle
)

func (s ScalarStyle) String() string {
	switch s {
	case PlainStyle:
		return "plain"
	case SingleQuotedStyle:
		return "single-quoted"
	case DoubleQuotedStyle:
		return "double-quoted"
	case LiteralStyle:
		return "literal"
	default:
		return fmt.Sprintf("ScalarStyle(%d)", int(s))
	}
}

// Tag is a YAML type identifier.
type Tag string

const (
	NullTag      Tag = "tag:yaml.org,2002:null"
	BoolTag      Tag = "tag:yaml.org,2002:bool"
	IntTag       Tag = "tag:yaml.org,2002:int"
	FloatTag     Tag = "tag:yaml.org,2002:float"
	StrTag       Tag = "tag:yaml.org,2002:str"
	TimestampTag Tag = "tag:yaml.org,2002:timestamp"
	SeqTag       Tag = "tag:yaml.org,2002:seq"
	MapTag       Tag = "tag:yaml.org,2002:map"
)

const tagPrefix = "tag:yaml.org,2002:"

// Short returns the tag without the yaml.org prefix, e.g. "str".
func (t Tag) Short() string {
	if len(t) > len(tagPrefix) && string(t[:len(tagPrefix)]) == tagPrefix {
		return string(t[len(tagPrefix):])
	}
	return string(t)
}

// Event is one token of the stream handed to an [Emitter]. Tags are always
// implicit: they are carried for consumers but never written.
type Event struct {
	Type     EventType
	Encoding Encoding    // StreamStartEvent
	Implicit bool        // DocumentStartEvent, DocumentEndEvent
	Tag      Tag         // ScalarEvent, SequenceStartEvent, MappingStartEvent
	Value    string      // ScalarEvent
	Style    ScalarStyle // ScalarEvent
}

func (e Event) String() string {
	switch e.Type {
	case ScalarEvent:
		return fmt.Sprintf("%s(%s %q %s)", e.Type, e.Tag.Short(), e.Value, e.Style)
	case StreamStartEvent:
		return fmt.Sprintf("%s(%s)", e.Type, e.Encoding)
	default:
		return e.Type.String()
	}
}

func streamStart(enc Encoding) Event {
	return Event{Type: StreamStartEvent, Encoding: enc}
}

func streamEnd() Event { return Event{Type: StreamEndEvent} }

func documentStart() Event { return Event{Type: DocumentStartEvent, Implicit: true} }

func documentEnd() Event { return Event{Type: DocumentEndEvent, Implicit: true} }

func sequenceStart() Event { return Event{Type: SequenceStartEvent, Tag: SeqTag} }

func sequenceEnd() Event { return Event{Type: SequenceEndEvent} }

func mappingStart() Event { return Event{Type: MappingStartEvent, Tag: MapTag} }

func mappingEnd() Event { return Event{Type: MappingEndEvent} }

func scalar(tag Tag, value string, style ScalarStyle) Event {
	return Event{Type: ScalarEvent, Tag: tag, Value: value, Style: style}
}
