package paramstr

import (
	"log/slog"

	"github.com/randalmurphal/paramstr/pkg/paramstr/observability"
)

// Default delimiters used when WithDelimiters is not given.
const (
	DefaultOpen  = "{"
	DefaultClose = "}"
)

// options holds construction settings for Compile and New.
type options struct {
	openDelim      string
	closeDelim     string
	defaultValue   any
	convertDefault bool
	logger         *slog.Logger
	metrics        observability.MetricsRecorder
}

// defaultOptions returns the default construction settings.
func defaultOptions() options {
	return options{
		openDelim:  DefaultOpen,
		closeDelim: DefaultClose,
		metrics:    observability.NoopMetrics{},
	}
}

// Option configures Compile and New.
type Option func(*options)

// WithDelimiters sets the strings that open and close a parameter.
//
// Default: "{" and "}"
//
// Both must be non-blank; Compile fails with ErrInvalidArgument otherwise.
//
// Example:
//
//	p, _ := paramstr.New("www.google.com/(normal)/{curly}", paramstr.WithDelimiters("(", ")"))
//	p.Names() // [normal]
func WithDelimiters(openDelim, closeDelim string) Option {
	return func(o *options) {
		o.openDelim = openDelim
		o.closeDelim = closeDelim
	}
}

// WithDefaultValue sets the value rendered for parameters without a value.
// Ignored by Compile; a nil default leaves unset parameters untouched.
func WithDefaultValue(v any) Option {
	return func(o *options) {
		o.defaultValue = v
	}
}

// WithConvertDefaultToAbsent makes values equal to the default value be
// stored as absent. Ignored by Compile.
func WithConvertDefaultToAbsent(enabled bool) Option {
	return func(o *options) {
		o.convertDefault = enabled
	}
}

// WithLogger sets the logger used for debug output on compile and parse.
// A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets the recorder for compile, render and parse metrics.
//
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
