package yamlstream

import (
	"github.com/go-kit/log"
)

// Option configures a serialization call.
type Option func(*config)

type config struct {
	encoding        Encoding
	logger          log.Logger
	maxSize         int
	omitUnsupported bool

	// wrap decorates the emitter built for a call. Used by tests to inject
	// failures.
	wrap func(Emitter) Emitter
}

func newConfig(opts []Option) *config {
	cfg := &config{
		encoding: UTF8,
		logger:   log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithEncoding selects the output encoding. The default is [UTF8].
func WithEncoding(enc Encoding) Option {
	return func(c *config) { c.encoding = enc }
}

// WithLogger logs failed and completed documents at debug level.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxSize limits the output to n code units. Exceeding it fails the call
// with [MemoryError]. Zero means no limit.
func WithMaxSize(n int) Option {
	return func(c *config) { c.maxSize = n }
}

// WithOmitUnsupported drops mapping entries whose value is unsupported,
// key included. By default the key is still written.
func WithOmitUnsupported(omit bool) Option {
	return func(c *config) { c.omitUnsupported = omit }
}
