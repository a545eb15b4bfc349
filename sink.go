package yamlstream

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf16"
)

// Encoding selects the code unit width of the output.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF16
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF16:
		return "utf-16"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding parses "utf-8" or "utf-16" (also "utf8", "utf16").
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "utf-8", "utf8", "UTF-8", "UTF8":
		return UTF8, nil
	case "utf-16", "utf16", "UTF-16", "UTF16":
		return UTF16, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, s)
}

func (e Encoding) valid() bool { return e == UTF8 || e == UTF16 }

// units returns the length of s in code units of e.
func (e Encoding) units(s string) int {
	if e != UTF16 {
		return len(s)
	}
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// output receives the UTF-8 text produced by the emitter together with the
// encoding announced by the stream.
type output interface {
	write(p []byte, enc Encoding) error
}

type utf8Output struct {
	chunks *chunkList[byte]
}

func (o utf8Output) write(p []byte, _ Encoding) error { return o.chunks.push(p) }

type utf16Output struct {
	chunks *chunkList[uint16]
}

func (o utf16Output) write(p []byte, _ Encoding) error {
	return o.chunks.push(utf16.Encode([]rune(string(p))))
}

// writerOutput forwards text to an io.Writer, as UTF-16LE when the stream
// asks for UTF-16.
type writerOutput struct {
	w io.Writer
}

func (o writerOutput) write(p []byte, enc Encoding) error {
	if enc == UTF16 {
		p = appendUTF16LE(nil, utf16.Encode([]rune(string(p))))
	}
	if _, err := o.w.Write(p); err != nil {
		return &Error{Kind: WriterError, Problem: err.Error()}
	}
	return nil
}

func appendUTF16LE(dst []byte, units []uint16) []byte {
	for _, u := range units {
		dst = binary.LittleEndian.AppendUint16(dst, u)
	}
	return dst
}
