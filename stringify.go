package yamlstream

import (
	"io"
	"unicode/utf16"

	"github.com/go-kit/log/level"
)

// Stringify renders v as one YAML document. With [WithEncoding](UTF16) the
// document is produced as UTF-16 code units and decoded into the returned
// string. On error no partial output is returned. A nil policy means
// [DefaultPolicy].
func Stringify(v Value, p Policy, opts ...Option) (string, error) {
	cfg := newConfig(opts)
	if cfg.encoding == UTF16 {
		units, err := render(v, p, cfg, newUTF16Output)
		if err != nil {
			return "", err
		}
		return string(utf16.Decode(units)), nil
	}
	b, err := render(v, p, cfg, newUTF8Output)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// StringifyUTF16 renders v as one YAML document in UTF-16 code units.
func StringifyUTF16(v Value, p Policy, opts ...Option) ([]uint16, error) {
	cfg := newConfig(opts)
	cfg.encoding = UTF16
	return render(v, p, cfg, newUTF16Output)
}

// Write renders v and writes the finished document to w in a single call,
// as UTF-16LE when [WithEncoding](UTF16) is given.
func Write(w io.Writer, v Value, p Policy, opts ...Option) error {
	cfg := newConfig(opts)
	var data []byte
	if cfg.encoding == UTF16 {
		units, err := render(v, p, cfg, newUTF16Output)
		if err != nil {
			return err
		}
		data = appendUTF16LE(make([]byte, 0, 2*len(units)), units)
	} else {
		b, err := render(v, p, cfg, newUTF8Output)
		if err != nil {
			return err
		}
		data = b
	}
	if _, err := w.Write(data); err != nil {
		return &Error{Kind: WriterError, Problem: err.Error()}
	}
	return nil
}

// Marshal converts x with [ValueOf] and renders it with [DefaultPolicy].
func Marshal(x any, opts ...Option) ([]byte, error) {
	v, err := ValueOf(x)
	if err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	if cfg.encoding == UTF16 {
		units, err := render(v, DefaultPolicy, cfg, newUTF16Output)
		if err != nil {
			return nil, err
		}
		return appendUTF16LE(make([]byte, 0, 2*len(units)), units), nil
	}
	return render(v, DefaultPolicy, cfg, newUTF8Output)
}

// Events returns the event stream [Walk] produces for v.
func Events(v Value, p Policy, opts ...Option) ([]Event, error) {
	var events []Event
	rec := EmitterFunc(func(ev Event) error {
		events = append(events, ev)
		return nil
	})
	if err := Walk(rec, v, p, opts...); err != nil {
		return nil, err
	}
	return events, nil
}

func newUTF8Output(c *chunkList[byte]) output { return utf8Output{chunks: c} }

func newUTF16Output(c *chunkList[uint16]) output { return utf16Output{chunks: c} }

// render walks v into a block emitter whose output is collected as chunks,
// then concatenates the chunks once. On failure the chunks are dropped.
func render[T unit](v Value, p Policy, cfg *config, newOutput func(*chunkList[T]) output) ([]T, error) {
	chunks := &chunkList[T]{limit: cfg.maxSize}
	var em Emitter = newBlockEmitter(newOutput(chunks))
	if cfg.wrap != nil {
		em = cfg.wrap(em)
	}
	if err := walk(em, v, p, cfg); err != nil {
		chunks.reset()
		level.Debug(cfg.logger).Log("msg", "yaml emission failed", "encoding", cfg.encoding, "err", err)
		return nil, err
	}
	count := chunks.count
	out := chunks.finalize()
	level.Debug(cfg.logger).Log("msg", "yaml document emitted", "encoding", cfg.encoding, "units", len(out), "chunks", count)
	return out, nil
}
