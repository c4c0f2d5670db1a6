package element

import "sync/atomic"

// String is the FHIR string primitive.
type String struct {
	Base
	value *string
	hash  atomic.Uint64
}

// NewString returns a string element with a value and optional extensions.
func NewString(value string, ext ...*Extension) *String {
	return NewStringElement(nil, &value, ext)
}

// NewStringElement returns a string element from its optional parts.
// A value-less, extension-less result fails ele-1 when validated.
func NewStringElement(id *string, value *string, ext []*Extension) *String {
	s := &String{Base: NewBase(id, ext)}
	if value != nil {
		v := *value
		s.value = &v
	}
	return s
}

// Kind implements Element.
func (s *String) Kind() Kind {
	return KindString
}

// Value returns the string value.
func (s *String) Value() (string, bool) {
	if s.value == nil {
		return "", false
	}
	return *s.value, true
}

// HasValue reports whether a value is present.
func (s *String) HasValue() bool {
	return s.value != nil
}

// Equal compares id, extensions and value.
func (s *String) Equal(other Element) bool {
	o, ok := other.(*String)
	if !ok || o == nil {
		return false
	}
	return s.EqualBase(o.Base) && equalOptional(s.value, o.value)
}

// Hash returns the memoized structural hash.
func (s *String) Hash() uint64 {
	if h := s.hash.Load(); h != 0 {
		return h
	}
	h := NewHash()
	WriteString(h, KindString.Name)
	s.WriteHash(h)
	WriteOptional(h, s.value)
	sum := Sum64(h)
	s.hash.Store(sum)
	return sum
}

// Null stands for a null entry in a repeating primitive, e.g. the second
// entry of "given": ["a", null]. It carries nothing and is exempt from ele-1.
type Null struct{}

// Kind implements Element.
func (Null) Kind() Kind { return KindNull }

// ID implements Element.
func (Null) ID() (string, bool) { return "", false }

// Extensions implements Element.
func (Null) Extensions() []*Extension { return nil }

// HasValue implements Element.
func (Null) HasValue() bool { return false }

// HasChildren implements Element.
func (Null) HasChildren() bool { return false }

// Equal reports whether other is also a Null.
func (Null) Equal(other Element) bool {
	_, ok := other.(Null)
	return ok
}

// Hash implements Element.
func (Null) Hash() uint64 {
	h := NewHash()
	WriteString(h, KindNull.Name)
	return Sum64(h)
}
