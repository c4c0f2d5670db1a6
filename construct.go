package codes

import (
	"github.com/gofhir/codes/pkg/vocabulary"
)

// Of builds a code from a wire string, which must belong to vocab.
func Of[V comparable](vocab *vocabulary.Vocabulary[V], wire string, opts ...Option) (*Code[V], error) {
	return NewBuilder(vocab, opts...).Value(wire).Build()
}

// OfMember builds a code for a vocabulary member.
func OfMember[V comparable](vocab *vocabulary.Vocabulary[V], m V, opts ...Option) (*Code[V], error) {
	return NewBuilder(vocab, opts...).Member(m).Build()
}

// Decode builds a code from a wire string read by a deserializer.
//
// Closed vocabularies reject unknown strings like Of. Extensible
// vocabularies keep them as raw values, so data written against a newer
// value set still decodes; the value must still be a well-formed code.
func Decode[V comparable](vocab *vocabulary.Vocabulary[V], wire string, opts ...Option) (*Code[V], error) {
	b := NewBuilder(vocab, opts...)
	if vocab != nil && vocab.Extensible() {
		return b.RawValue(wire).Build()
	}
	return b.Value(wire).Build()
}
