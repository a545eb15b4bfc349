package yamlstream

import (
	"fmt"
	"io"
	"iter"

	"github.com/go-kit/log/level"
)

// WriteIter writes items from an iterator to w as the elements of one block
// sequence document. Each item is written as soon as it arrives, so a
// failure can leave a partial document in w. The iterator is not resumed
// after an error.
func WriteIter(w io.Writer, seq iter.Seq[Value], p Policy, opts ...Option) error {
	cfg := newConfig(opts)
	if !cfg.encoding.valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedEncoding, cfg.encoding)
	}
	if p == nil {
		p = DefaultPolicy
	}
	var em Emitter = newBlockEmitter(writerOutput{w: w})
	if cfg.wrap != nil {
		em = cfg.wrap(em)
	}
	wk := &walker{em: em, policy: p, cfg: cfg}

	n, err := streamSequence(wk, seq)
	if err != nil {
		level.Debug(cfg.logger).Log("msg", "yaml stream failed", "items", n, "err", err)
		return err
	}
	level.Debug(cfg.logger).Log("msg", "yaml stream written", "items", n)
	return nil
}

// WriteChan writes items received from ch until it is closed.
// It is a thin wrapper around [WriteIter].
func WriteChan(w io.Writer, ch <-chan Value, p Policy, opts ...Option) error {
	return WriteIter(w, chanToIter(ch), p, opts...)
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}

func streamSequence(wk *walker, seq iter.Seq[Value]) (int, error) {
	for _, ev := range []Event{streamStart(wk.cfg.encoding), documentStart(), sequenceStart()} {
		if err := wk.emit(ev); err != nil {
			return 0, err
		}
	}
	var (
		n      int
		encErr error
	)
	seq(func(item Value) bool {
		if err := wk.node(item); err != nil {
			encErr = err
			return false
		}
		n++
		return true
	})
	if encErr != nil {
		return n, encErr
	}
	for _, ev := range []Event{sequenceEnd(), documentEnd(), streamEnd()} {
		if err := wk.emit(ev); err != nil {
			return n, err
		}
	}
	return n, nil
}
