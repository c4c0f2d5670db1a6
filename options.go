package codes

import (
	"github.com/gofhir/codes/pkg/constraint"
	"github.com/gofhir/codes/pkg/logger"
)

// Option configures builders.
type Option func(*Options)

// Options holds the configuration shared by a builder and every builder
// derived from its codes through ToBuilder.
type Options struct {
	// Constraints evaluates FHIRPath invariants against every extension.
	Constraints *constraint.Validator

	// Metrics receives build counters; nil disables recording.
	Metrics *Metrics

	// Logger receives debug output; nil uses logger.Default().
	Logger *logger.Logger

	// MaxIssues caps the issues kept in a ValidationError. 0 is unlimited.
	MaxIssues int

	// Path is the expression used for the element in issues.
	Path string
}

// DefaultPath is the issue expression used when no path is configured.
const DefaultPath = "code"

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		MaxIssues: 0, // unlimited
		Path:      DefaultPath,
	}
}

// defaultOptions is shared by builders created without options. It is never mutated.
var defaultOptions = DefaultOptions()

func resolveOptions(opts []Option) *Options {
	if len(opts) == 0 {
		return defaultOptions
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Options) logger() *logger.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logger.Default()
}

// WithConstraints evaluates the validator's invariants against every
// extension at build time.
func WithConstraints(v *constraint.Validator) Option {
	return func(o *Options) {
		o.Constraints = v
	}
}

// WithMetrics records builds, rejections and hash computations.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *logger.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMaxIssues caps the number of issues reported by one Build.
// Use 0 for unlimited.
func WithMaxIssues(max int) Option {
	return func(o *Options) {
		o.MaxIssues = max
	}
}

// WithPath sets the expression used for the element in issues, e.g.
// "Observation.status". An empty path keeps DefaultPath.
func WithPath(path string) Option {
	return func(o *Options) {
		if path != "" {
			o.Path = path
		}
	}
}
