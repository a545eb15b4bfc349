package yamlstream

import "errors"

// Sentinel errors for programmatic error handling.
var (
	ErrMemory   = errors.New("memory error")
	ErrWriter   = errors.New("writer error")
	ErrEmitter  = errors.New("emitter error")
	ErrInternal = errors.New("internal error")

	ErrPolicy              = errors.New("style policy failed")
	ErrCycle               = errors.New("value contains a cycle")
	ErrParse               = errors.New("cannot convert YAML")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// ErrorKind classifies an [Error].
type ErrorKind int

const (
	InternalError ErrorKind = iota
	MemoryError
	WriterError
	EmitterError
)

// Error is a failure raised while emitting events.
type Error struct {
	Kind    ErrorKind
	Problem string
}

func (e *Error) Error() string {
	switch e.Kind {
	case MemoryError:
		return "Memory error: Not enough memory for emitting"
	case WriterError:
		return "Writer error: " + e.Problem
	case EmitterError:
		return "Emitter error: " + e.Problem
	default:
		if e.Problem != "" {
			return "Internal error: " + e.Problem
		}
		return "Internal error"
	}
}

// Unwrap returns the sentinel matching e.Kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case MemoryError:
		return ErrMemory
	case WriterError:
		return ErrWriter
	case EmitterError:
		return ErrEmitter
	default:
		return ErrInternal
	}
}

func emitterError(problem string) error {
	return &Error{Kind: EmitterError, Problem: problem}
}

// asEmitError normalizes err into an *Error. Policy failures are passed
// through untouched.
func asEmitError(err error) error {
	var e *Error
	if errors.As(err, &e) || errors.Is(err, ErrPolicy) {
		return err
	}
	return &Error{Kind: InternalError, Problem: err.Error()}
}
