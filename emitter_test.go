package yamlstream_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/yamlstream"
)

func plainScalar(tag yamlstream.Tag, value string) yamlstream.Event {
	return yamlstream.Event{Type: yamlstream.ScalarEvent, Tag: tag, Value: value}
}

var (
	evStreamStart = yamlstream.Event{Type: yamlstream.StreamStartEvent, Encoding: yamlstream.UTF8}
	evStreamEnd   = yamlstream.Event{Type: yamlstream.StreamEndEvent}
	evDocStart    = yamlstream.Event{Type: yamlstream.DocumentStartEvent, Implicit: true}
	evDocEnd      = yamlstream.Event{Type: yamlstream.DocumentEndEvent, Implicit: true}
	evSeqStart    = yamlstream.Event{Type: yamlstream.SequenceStartEvent, Tag: yamlstream.SeqTag}
	evSeqEnd      = yamlstream.Event{Type: yamlstream.SequenceEndEvent}
	evMapStart    = yamlstream.Event{Type: yamlstream.MappingStartEvent, Tag: yamlstream.MapTag}
	evMapEnd      = yamlstream.Event{Type: yamlstream.MappingEndEvent}
)

func document(nodes ...yamlstream.Event) []yamlstream.Event {
	events := []yamlstream.Event{evStreamStart, evDocStart}
	events = append(events, nodes...)
	return append(events, evDocEnd, evStreamEnd)
}

func TestEventsExample(t *testing.T) {
	t.Parallel()
	v := yamlstream.Map(
		P("a", I(1)),
		P("b", yamlstream.Seq(yamlstream.Bool(true), yamlstream.Null())),
	)
	got, err := yamlstream.Events(v, yamlstream.PlainPolicy)
	require.NoError(t, err)

	want := document(
		evMapStart,
		plainScalar(yamlstream.StrTag, "a"),
		plainScalar(yamlstream.IntTag, "1"),
		plainScalar(yamlstream.StrTag, "b"),
		evSeqStart,
		plainScalar(yamlstream.BoolTag, "true"),
		plainScalar(yamlstream.NullTag, ""),
		evSeqEnd,
		evMapEnd,
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestEventsEmptySequence(t *testing.T) {
	t.Parallel()
	got, err := yamlstream.Events(yamlstream.Seq(), nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(document(evSeqStart, evSeqEnd), got))
}

func TestEventsDanglingKey(t *testing.T) {
	t.Parallel()
	v := yamlstream.Map(P("f", yamlstream.Unsupported()))
	got, err := yamlstream.Events(v, nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(document(evMapStart, plainScalar(yamlstream.StrTag, "f"), evMapEnd), got))

	got, err = yamlstream.Events(v, nil, yamlstream.WithOmitUnsupported(true))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(document(evMapStart, evMapEnd), got))
}

func TestEventsUnsupportedRoot(t *testing.T) {
	t.Parallel()
	got, err := yamlstream.Events(yamlstream.Unsupported(), nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(document(), got))
}

func TestEventsKeysAreNeverPolicyStyled(t *testing.T) {
	t.Parallel()
	var asked []string
	p := yamlstream.PolicyFuncs{
		String: func(s string) (yamlstream.StyleChoice, error) {
			asked = append(asked, s)
			return yamlstream.PreferDoubleQuoted, nil
		},
	}
	got, err := yamlstream.Events(yamlstream.Map(P("key", S("value"))), p)
	require.NoError(t, err)
	assert.Equal(t, []string{"value"}, asked)
	require.Len(t, got, 8)
	assert.Equal(t, plainScalar(yamlstream.StrTag, "key"), got[3])
	assert.Equal(t, yamlstream.DoubleQuotedStyle, got[4].Style)
}

func TestEventsEncoding(t *testing.T) {
	t.Parallel()
	got, err := yamlstream.Events(I(1), nil, yamlstream.WithEncoding(yamlstream.UTF16))
	require.NoError(t, err)
	assert.Equal(t, yamlstream.UTF16, got[0].Encoding)
}

func TestWalkStopsAtFirstError(t *testing.T) {
	t.Parallel()
	boom := errors.New("sink closed")
	var seen []yamlstream.EventType
	em := yamlstream.EmitterFunc(func(ev yamlstream.Event) error {
		seen = append(seen, ev.Type)
		if ev.Type == yamlstream.SequenceStartEvent {
			return boom
		}
		return nil
	})
	err := yamlstream.Walk(em, yamlstream.Seq(I(1), I(2)), nil)
	require.Error(t, err)

	var yerr *yamlstream.Error
	require.ErrorAs(t, err, &yerr)
	assert.Equal(t, yamlstream.InternalError, yerr.Kind)
	assert.Equal(t, "Internal error: sink closed", err.Error())
	assert.Equal(t, []yamlstream.EventType{
		yamlstream.StreamStartEvent,
		yamlstream.DocumentStartEvent,
		yamlstream.SequenceStartEvent,
	}, seen)
}

func TestWalkPassesThroughEmitterErrors(t *testing.T) {
	t.Parallel()
	em := yamlstream.EmitterFunc(func(yamlstream.Event) error {
		return &yamlstream.Error{Kind: yamlstream.WriterError, Problem: "disk full"}
	})
	err := yamlstream.Walk(em, I(1), nil)
	assert.ErrorIs(t, err, yamlstream.ErrWriter)
	assert.Equal(t, "Writer error: disk full", err.Error())
}

// --- NewEmitter ---

func emitAll(t *testing.T, events []yamlstream.Event) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	em := yamlstream.NewEmitter(&buf)
	for _, ev := range events {
		if err := em.Emit(ev); err != nil {
			return buf.String(), err
		}
	}
	return buf.String(), nil
}

func TestNewEmitter(t *testing.T) {
	t.Parallel()
	out, err := emitAll(t, document(
		evMapStart,
		plainScalar(yamlstream.StrTag, "name"),
		yamlstream.Event{Type: yamlstream.ScalarEvent, Tag: yamlstream.StrTag, Value: "x", Style: yamlstream.DoubleQuotedStyle},
		plainScalar(yamlstream.StrTag, "items"),
		evSeqStart,
		plainScalar(yamlstream.IntTag, "1"),
		evMapStart,
		plainScalar(yamlstream.StrTag, "k"),
		yamlstream.Event{Type: yamlstream.ScalarEvent, Tag: yamlstream.StrTag, Value: "it's", Style: yamlstream.SingleQuotedStyle},
		evMapEnd,
		evSeqEnd,
		evMapEnd,
	))
	require.NoError(t, err)
	assert.Equal(t, "name: \"x\"\nitems:\n- 1\n- k: 'it''s'\n", out)
}

func TestNewEmitterEmptyDocument(t *testing.T) {
	t.Parallel()
	out, err := emitAll(t, document())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNewEmitterMultipleDocuments(t *testing.T) {
	t.Parallel()
	out, err := emitAll(t, []yamlstream.Event{
		evStreamStart,
		evDocStart, plainScalar(yamlstream.IntTag, "1"), evDocEnd,
		evDocStart, plainScalar(yamlstream.IntTag, "2"), evDocEnd,
		evStreamEnd,
	})
	require.NoError(t, err)
	assert.Equal(t, "1\n--- 2\n", out)
}

func TestNewEmitterOrderErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		events []yamlstream.Event
		want   string
	}{
		{
			"missing stream start",
			[]yamlstream.Event{evDocStart},
			"Emitter error: expected STREAM-START",
		},
		{
			"scalar before document",
			[]yamlstream.Event{evStreamStart, plainScalar(yamlstream.StrTag, "x")},
			"Emitter error: expected DOCUMENT-START or STREAM-END",
		},
		{
			"two root nodes",
			[]yamlstream.Event{evStreamStart, evDocStart, plainScalar(yamlstream.StrTag, "x"), plainScalar(yamlstream.StrTag, "y")},
			"Emitter error: expected DOCUMENT-END",
		},
		{
			"mapping closed on a key",
			[]yamlstream.Event{evStreamStart, evDocStart, evMapStart, plainScalar(yamlstream.StrTag, "k"), evMapEnd},
			"Emitter error: expected SCALAR, SEQUENCE-START, MAPPING-START, or ALIAS",
		},
		{
			"event after stream end",
			[]yamlstream.Event{evStreamStart, evStreamEnd, evStreamStart},
			"Emitter error: expected nothing after STREAM-END",
		},
		{
			"unsupported encoding",
			[]yamlstream.Event{{Type: yamlstream.StreamStartEvent, Encoding: yamlstream.Encoding(9)}},
			"Emitter error: unsupported encoding Encoding(9)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := emitAll(t, tt.events)
			require.Error(t, err)
			assert.ErrorIs(t, err, yamlstream.ErrEmitter)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestNewEmitterErrorIsSticky(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	em := yamlstream.NewEmitter(&buf)
	first := em.Emit(evDocStart)
	require.Error(t, first)
	assert.Equal(t, first, em.Emit(evStreamStart))
	assert.Empty(t, buf.String())
}

func TestNewEmitterWriterError(t *testing.T) {
	t.Parallel()
	em := yamlstream.NewEmitter(errWriter{})
	require.NoError(t, em.Emit(evStreamStart))
	require.NoError(t, em.Emit(evDocStart))
	err := em.Emit(plainScalar(yamlstream.StrTag, "x"))
	assert.ErrorIs(t, err, yamlstream.ErrWriter)
}

func TestNewEmitterFallsBackFromRequestedStyle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		value string
		style yamlstream.ScalarStyle
		want  string
	}{
		{"plain with indicator", "[x]", yamlstream.PlainStyle, "'[x]'\n"},
		{"single with break", "a\nb", yamlstream.SingleQuotedStyle, "\"a\\nb\"\n"},
		{"literal with trailing space", "a \nb", yamlstream.LiteralStyle, "\"a \\nb\"\n"},
		{"literal with control", "a\x01b", yamlstream.LiteralStyle, "\"a\\x01b\"\n"},
		{"double escapes", "q\"\\\u2028", yamlstream.DoubleQuotedStyle, "\"q\\\"\\\\\\L\"\n"},
		{"empty literal", "", yamlstream.LiteralStyle, "\"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := emitAll(t, document(
				yamlstream.Event{Type: yamlstream.ScalarEvent, Tag: yamlstream.StrTag, Value: tt.value, Style: tt.style},
			))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestNewEmitterLiteralKeyIsQuoted(t *testing.T) {
	t.Parallel()
	key := strings.Repeat("k", 60)
	out, err := emitAll(t, document(
		evMapStart,
		yamlstream.Event{Type: yamlstream.ScalarEvent, Tag: yamlstream.StrTag, Value: key, Style: yamlstream.LiteralStyle},
		plainScalar(yamlstream.IntTag, "1"),
		evMapEnd,
	))
	require.NoError(t, err)
	assert.Equal(t, "\""+key+"\": 1\n", out)
}

func TestEventString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "STREAM-START(utf-16)", yamlstream.Event{Type: yamlstream.StreamStartEvent, Encoding: yamlstream.UTF16}.String())
	assert.Equal(t, `SCALAR(str "x" literal)`, yamlstream.Event{Type: yamlstream.ScalarEvent, Tag: yamlstream.StrTag, Value: "x", Style: yamlstream.LiteralStyle}.String())
	assert.Equal(t, "MAPPING-END", evMapEnd.String())
	assert.Equal(t, "timestamp", yamlstream.TimestampTag.Short())
}
