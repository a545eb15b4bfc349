package yamlstream

import "fmt"

// Walk emits the complete event stream of a single document holding v into
// em: STREAM-START, DOCUMENT-START, the node, DOCUMENT-END, STREAM-END. The
// first error aborts the walk. A nil policy means [DefaultPolicy].
func Walk(em Emitter, v Value, p Policy, opts ...Option) error {
	return walk(em, v, p, newConfig(opts))
}

func walk(em Emitter, v Value, p Policy, cfg *config) error {
	if !cfg.encoding.valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedEncoding, cfg.encoding)
	}
	if p == nil {
		p = DefaultPolicy
	}
	w := &walker{em: em, policy: p, cfg: cfg}
	if err := w.emit(streamStart(cfg.encoding)); err != nil {
		return err
	}
	if err := w.emit(documentStart()); err != nil {
		return err
	}
	if err := w.node(v); err != nil {
		return err
	}
	if err := w.emit(documentEnd()); err != nil {
		return err
	}
	return w.emit(streamEnd())
}

type walker struct {
	em     Emitter
	policy Policy
	cfg    *config
}

func (w *walker) emit(ev Event) error {
	if err := w.em.Emit(ev); err != nil {
		return asEmitError(err)
	}
	return nil
}

func (w *walker) node(v Value) error {
	switch Classify(v) {
	case ClassSkip:
		return nil
	case ClassSequence:
		return w.sequence(v)
	case ClassMapping:
		return w.mapping(v)
	}
	s, _, err := FormatScalar(v, w.policy, w.cfg.encoding)
	if err != nil {
		return err
	}
	return w.emit(scalar(s.Tag, s.Text, s.Style))
}

func (w *walker) sequence(v Value) error {
	if err := w.emit(sequenceStart()); err != nil {
		return err
	}
	for _, item := range v.items {
		if err := w.node(item); err != nil {
			return err
		}
	}
	return w.emit(sequenceEnd())
}

// mapping writes every key followed by its value. A key whose value is
// unsupported is still written unless omitUnsupported is set, leaving the
// key without a value node.
func (w *walker) mapping(v Value) error {
	if err := w.emit(mappingStart()); err != nil {
		return err
	}
	for _, p := range v.pairs {
		if w.cfg.omitUnsupported && Classify(p.Value) == ClassSkip {
			continue
		}
		if err := w.emit(scalar(StrTag, p.Key, PlainStyle)); err != nil {
			return err
		}
		if err := w.node(p.Value); err != nil {
			return err
		}
	}
	return w.emit(mappingEnd())
}
