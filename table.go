package codes

import (
	"fmt"

	"github.com/gofhir/codes/pkg/element"
	"github.com/gofhir/codes/pkg/vocabulary"
)

// Table holds one pre-built Code per member of a vocabulary. It is
// read-only after NewTable returns and safe for concurrent use.
type Table[V comparable] struct {
	vocab *vocabulary.Vocabulary[V]
	codes map[V]*Code[V]
	order []*Code[V]
	opts  []Option
}

// NewTable builds a code for every member of vocab. It panics if any
// member fails to build, which means the vocabulary itself is broken.
func NewTable[V comparable](vocab *vocabulary.Vocabulary[V], opts ...Option) *Table[V] {
	t, err := BuildTable(vocab, opts...)
	if err != nil {
		panic("codes: " + err.Error())
	}
	return t
}

// BuildTable is NewTable for vocabularies loaded at run time: a member
// that fails to build is reported as an error.
func BuildTable[V comparable](vocab *vocabulary.Vocabulary[V], opts ...Option) (*Table[V], error) {
	if vocab == nil {
		return nil, fmt.Errorf("%w: vocabulary is nil", ErrNullReference)
	}
	t := &Table[V]{
		vocab: vocab,
		codes: make(map[V]*Code[V], vocab.Len()),
		order: make([]*Code[V], 0, vocab.Len()),
		opts:  opts,
	}
	for _, m := range vocab.Members() {
		c, err := OfMember(vocab, m, opts...)
		if err != nil {
			return nil, fmt.Errorf("vocabulary %s: %w", vocab.Name(), err)
		}
		t.codes[m] = c
		t.order = append(t.order, c)
	}
	return t, nil
}

// Get returns the shared code for m.
func (t *Table[V]) Get(m V) (*Code[V], bool) {
	c, ok := t.codes[m]
	return c, ok
}

// MustGet returns the shared code for m and panics if m is not a member.
func (t *Table[V]) MustGet(m V) *Code[V] {
	c, ok := t.codes[m]
	if !ok {
		panic(fmt.Sprintf("codes: %v is not a member of %s", m, t.vocab.Name()))
	}
	return c
}

// All returns the codes in vocabulary order.
func (t *Table[V]) All() []*Code[V] {
	out := make([]*Code[V], len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of codes.
func (t *Table[V]) Len() int {
	return len(t.order)
}

// Vocabulary returns the vocabulary the table was built from.
func (t *Table[V]) Vocabulary() *vocabulary.Vocabulary[V] {
	return t.vocab
}

// Of returns the shared code for a wire string. Strings outside the
// vocabulary are rejected with ErrInvalidArgument.
func (t *Table[V]) Of(wire string) (*Code[V], error) {
	m, err := t.vocab.FromWireString(wire)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return t.codes[m], nil
}

// Descriptor implements Binder.
func (t *Table[V]) Descriptor() vocabulary.Descriptor {
	return t.vocab
}

// Decode implements Binder. Without opts, members return the table's
// shared code. With opts, or for strings that are not members, a new code
// is built (Decode, or RawValue when lenient is set) with opts applied
// after the table's own options.
func (t *Table[V]) Decode(wire string, lenient bool, opts ...Option) (element.Primitive, error) {
	m, err := t.vocab.FromWireString(wire)
	if err == nil && len(opts) == 0 {
		return t.codes[m], nil
	}
	all := append(append([]Option(nil), t.opts...), opts...)
	if err == nil {
		return NewBuilder(t.vocab, all...).Member(m).Build()
	}
	if lenient {
		return NewBuilder(t.vocab, all...).RawValue(wire).Build()
	}
	return Decode(t.vocab, wire, all...)
}
