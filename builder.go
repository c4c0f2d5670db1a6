package codes

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofhir/codes/pkg/element"
	"github.com/gofhir/codes/pkg/issue"
	"github.com/gofhir/codes/pkg/logger"
	"github.com/gofhir/codes/pkg/vocabulary"
)

// Builder assembles a Code. It is open until Build is called and closed
// afterwards. A Builder is not safe for concurrent use.
//
// Setters never panic. A rejected argument is recorded and reported by
// Build together with any validation issues, so one Build call shows
// every problem.
type Builder[V comparable] struct {
	vocab     *vocabulary.Vocabulary[V]
	opts      *Options
	id        *string
	extension []*element.Extension
	value     *string
	errs      []error
	built     bool
}

// NewBuilder returns an open builder for codes of vocab.
func NewBuilder[V comparable](vocab *vocabulary.Vocabulary[V], opts ...Option) *Builder[V] {
	return newBuilder(vocab, resolveOptions(opts))
}

func newBuilder[V comparable](vocab *vocabulary.Vocabulary[V], opts *Options) *Builder[V] {
	b := &Builder[V]{vocab: vocab, opts: opts}
	if vocab == nil {
		b.reject(fmt.Errorf("%w: vocabulary is nil", ErrNullReference))
	}
	return b
}

// ID sets the element id, replacing any previous id. Whitespace is
// reported by Build.
func (b *Builder[V]) ID(id string) *Builder[V] {
	if b.closed() {
		return b
	}
	b.id = &id
	return b
}

// Extension appends extensions to the current list.
func (b *Builder[V]) Extension(ext ...*element.Extension) *Builder[V] {
	if b.closed() {
		return b
	}
	for i, e := range ext {
		if e == nil {
			b.reject(fmt.Errorf("%w: extension argument %d is nil", ErrNullReference, i))
			continue
		}
		b.extension = append(b.extension, e)
	}
	return b
}

// Extensions replaces the whole extension list with a copy of list.
// A nil list is rejected with ErrNullReference and leaves the current
// list unchanged; pass an empty, non-nil slice to clear it.
func (b *Builder[V]) Extensions(list []*element.Extension) *Builder[V] {
	if b.closed() {
		return b
	}
	if list == nil {
		b.reject(fmt.Errorf("%w: extension list is nil", ErrNullReference))
		return b
	}
	replaced := make([]*element.Extension, 0, len(list))
	for i, e := range list {
		if e == nil {
			b.reject(fmt.Errorf("%w: extension list entry %d is nil", ErrNullReference, i))
			continue
		}
		replaced = append(replaced, e)
	}
	b.extension = replaced
	return b
}

// Member sets the value to the wire string of m.
func (b *Builder[V]) Member(m V) *Builder[V] {
	if b.closed() || b.vocab == nil {
		return b
	}
	if !b.vocab.Has(m) {
		b.reject(fmt.Errorf("%w: %v is not a member of %s", ErrInvalidArgument, m, b.vocab.Name()))
		return b
	}
	wire := b.vocab.ToWireString(m)
	b.value = &wire
	return b
}

// Value sets the value after checking that s is the wire string of a
// member. Unknown strings are rejected with ErrInvalidArgument.
func (b *Builder[V]) Value(s string) *Builder[V] {
	if b.closed() || b.vocab == nil {
		return b
	}
	if _, err := b.vocab.FromWireString(s); err != nil {
		b.reject(fmt.Errorf("%w: %w", ErrInvalidArgument, err))
		return b
	}
	b.value = &s
	return b
}

// RawValue sets the value without consulting the vocabulary. It exists
// for decoders that must keep codes added to a value set after this
// vocabulary was defined. The value must still be a well-formed code.
func (b *Builder[V]) RawValue(s string) *Builder[V] {
	if b.closed() {
		return b
	}
	b.value = &s
	return b
}

// Build validates the assembled code and freezes it. It returns every
// rejected setter argument and a *ValidationError listing every
// structural issue, joined into one error. The builder is closed
// afterwards, whatever the outcome.
func (b *Builder[V]) Build() (*Code[V], error) {
	if b.built {
		return nil, ErrBuilderClosed
	}
	b.built = true
	if b.vocab == nil {
		return nil, errors.Join(b.errs...)
	}

	start := time.Now()
	c := &Code[V]{
		Base:  element.NewBase(b.id, b.extension),
		vocab: b.vocab,
		opts:  b.opts,
	}
	if b.value != nil {
		v := *b.value
		c.value = &v
	}

	errs := b.errs
	if verr := b.validate(c); verr != nil {
		errs = append(errs, verr)
	}

	valid := len(errs) == 0
	if b.opts.Metrics != nil {
		b.opts.Metrics.RecordBuild(b.vocab.Name(), time.Since(start), valid)
	}
	if valid {
		return c, nil
	}

	var err error
	if len(errs) == 1 {
		err = errs[0]
	} else {
		err = errors.Join(errs...)
	}
	if log := b.opts.logger(); log.Enabled(logger.LevelDebug) {
		log.Debug("%s: build rejected: %v", b.vocab.Name(), err)
	}
	return nil, err
}

func (b *Builder[V]) validate(c *Code[V]) *ValidationError {
	result := issue.GetPooledResult()
	defer issue.ReleaseResult(result)
	result.SetLimit(b.opts.MaxIssues)

	path := b.opts.Path
	element.Validate(c, path, result)
	if c.value != nil && !b.vocab.Extensible() && !b.vocab.Contains(*c.value) {
		result.AddWarningWithID(issue.DiagValueNotInVocab, map[string]any{
			"value":    *c.value,
			"valueSet": b.vocab.Name(),
		}, path)
	}
	if b.opts.Constraints != nil {
		b.opts.Constraints.ValidateExtensions(c.Extensions(), path, result)
	}

	if b.opts.Metrics != nil {
		b.opts.Metrics.RecordIssues(result.ErrorCount(), result.WarningCount())
	}
	if !result.HasErrors() {
		return nil
	}
	return &ValidationError{
		Path:      path,
		Issues:    result.Clone(),
		Truncated: result.Truncated(),
	}
}

func (b *Builder[V]) reject(err error) {
	b.errs = append(b.errs, err)
	if b.opts.Metrics != nil {
		switch {
		case errors.Is(err, ErrInvalidArgument):
			b.opts.Metrics.RecordRejectedValue()
		case errors.Is(err, ErrNullReference):
			b.opts.Metrics.RecordNullReference()
		}
	}
	if b.vocab == nil {
		return
	}
	if log := b.opts.logger(); log.Enabled(logger.LevelDebug) {
		log.Debug("%s: %v", b.vocab.Name(), err)
	}
}

// closed records ErrBuilderClosed when the builder was already built.
func (b *Builder[V]) closed() bool {
	if b.built {
		b.errs = append(b.errs, ErrBuilderClosed)
	}
	return b.built
}
