package codes

import (
	"sync/atomic"

	"github.com/gofhir/codes/pkg/element"
	"github.com/gofhir/codes/pkg/vocabulary"
)

// Code is a FHIR code element bound to the vocabulary of V.
//
// A Code is immutable once built and safe to share between goroutines.
// Its value is expected, but not required, to be the wire string of a
// member of V: codes built through Member, Value or Of are always
// members, while RawValue and Decode on an extensible vocabulary keep
// strings the vocabulary does not know yet.
type Code[V comparable] struct {
	element.Base
	vocab *vocabulary.Vocabulary[V]
	value *string
	opts  *Options

	// hash memoizes Hash; 0 means not yet computed.
	hash atomic.Uint64
}

var _ element.Primitive = (*Code[string])(nil)

// Kind implements element.Element.
func (c *Code[V]) Kind() element.Kind {
	return element.KindCode
}

// Value returns the wire string.
func (c *Code[V]) Value() (string, bool) {
	if c.value == nil {
		return "", false
	}
	return *c.value, true
}

// HasValue reports whether a value is present.
func (c *Code[V]) HasValue() bool {
	return c.value != nil
}

// Member resolves the value to its vocabulary member. It returns false
// when there is no value or the value is not in the vocabulary.
func (c *Code[V]) Member() (V, bool) {
	var zero V
	if c.value == nil {
		return zero, false
	}
	m, err := c.vocab.FromWireString(*c.value)
	if err != nil {
		return zero, false
	}
	return m, true
}

// Vocabulary returns the vocabulary the code is bound to.
func (c *Code[V]) Vocabulary() *vocabulary.Vocabulary[V] {
	return c.vocab
}

// ToBuilder returns a new builder seeded with this code's id, a copy of
// its extensions and its value. Changes to the builder never affect c.
func (c *Code[V]) ToBuilder() *Builder[V] {
	b := newBuilder(c.vocab, c.opts)
	if id, ok := c.ID(); ok {
		b.id = &id
	}
	b.extension = c.Extensions()
	if c.value != nil {
		v := *c.value
		b.value = &v
	}
	return b
}

// Equal reports whether other is a Code of the same vocabulary type with
// an equal id, element-wise equal extensions and an equal value.
func (c *Code[V]) Equal(other element.Element) bool {
	o, ok := other.(*Code[V])
	if !ok || o == nil {
		return false
	}
	if c == o {
		return true
	}
	if (c.value == nil) != (o.value == nil) {
		return false
	}
	if c.value != nil && *c.value != *o.value {
		return false
	}
	return c.EqualBase(o.Base)
}

// Hash returns a structural hash consistent with Equal. It is computed on
// first use and memoized; concurrent first calls may both compute it,
// which is harmless because the result is deterministic.
func (c *Code[V]) Hash() uint64 {
	if h := c.hash.Load(); h != 0 {
		return h
	}
	if c.opts.Metrics != nil {
		c.opts.Metrics.RecordHash()
	}
	h := element.NewHash()
	element.WriteString(h, element.KindCode.Name)
	c.WriteHash(h)
	element.WriteOptional(h, c.value)
	sum := element.Sum64(h)
	c.hash.Store(sum)
	return sum
}

// String returns the value, or "" when absent.
func (c *Code[V]) String() string {
	v, _ := c.Value()
	return v
}
