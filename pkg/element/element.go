// Package element holds the FHIR Element base shared by coded and
// non-coded primitives: the optional id, the ordered extension list,
// the ele-1 invariant and the Extension type itself.
package element

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"regexp"
)

// Kind describes the FHIR type of an element.
type Kind struct {
	// Name is the FHIR type name ("code", "string", "Extension").
	Name string

	// Primitive is true for types that carry a @value.
	Primitive bool

	// EmptyAllowed exempts the kind from ele-1.
	EmptyAllowed bool

	pattern *regexp.Regexp
}

// Match reports whether value satisfies the kind's value pattern.
// Kinds without a pattern accept any value.
func (k Kind) Match(value string) bool {
	if k.pattern == nil {
		return true
	}
	return k.pattern.MatchString(value)
}

// Value patterns from the FHIR R4 primitive type definitions.
var (
	codePattern   = regexp.MustCompile(`^[^\s]+( [^\s]+)*$`)
	stringPattern = regexp.MustCompile(`^[ \r\n\t\S]+$`)
)

// Built-in kinds.
var (
	KindCode      = Kind{Name: "code", Primitive: true, pattern: codePattern}
	KindString    = Kind{Name: "string", Primitive: true, pattern: stringPattern}
	KindExtension = Kind{Name: "Extension"}

	// KindNull is the placeholder for a null entry in a repeating
	// primitive. It is the only kind exempt from ele-1.
	KindNull = Kind{Name: "null", EmptyAllowed: true}
)

// Element is any FHIR element: a primitive, an Extension or a placeholder.
type Element interface {
	Kind() Kind
	ID() (string, bool)
	// Extensions returns a copy of the extension list.
	Extensions() []*Extension
	HasValue() bool
	HasChildren() bool
	Equal(other Element) bool
	Hash() uint64
}

// Primitive is an element whose @value is rendered as a string.
type Primitive interface {
	Element
	Value() (string, bool)
}

// Base stores the id and extensions every element carries. It is
// immutable; the extension slice is copied on the way in and out.
type Base struct {
	id        *string
	extension []*Extension
}

// NewBase copies id and extension into a new Base.
func NewBase(id *string, extension []*Extension) Base {
	b := Base{}
	if id != nil {
		v := *id
		b.id = &v
	}
	if len(extension) > 0 {
		b.extension = make([]*Extension, len(extension))
		copy(b.extension, extension)
	}
	return b
}

// ID returns the element id.
func (b Base) ID() (string, bool) {
	if b.id == nil {
		return "", false
	}
	return *b.id, true
}

// Extensions returns a copy of the extension list.
func (b Base) Extensions() []*Extension {
	if len(b.extension) == 0 {
		return nil
	}
	out := make([]*Extension, len(b.extension))
	copy(out, b.extension)
	return out
}

// ExtensionCount returns the number of extensions without copying them.
func (b Base) ExtensionCount() int {
	return len(b.extension)
}

// HasChildren reports whether any extension is present. The id does not count.
func (b Base) HasChildren() bool {
	return len(b.extension) > 0
}

// EqualBase compares ids and extension lists element-wise.
func (b Base) EqualBase(other Base) bool {
	if !equalOptional(b.id, other.id) {
		return false
	}
	if len(b.extension) != len(other.extension) {
		return false
	}
	for i := range b.extension {
		x, y := b.extension[i], other.extension[i]
		if x == nil || y == nil {
			if x != y {
				return false
			}
			continue
		}
		if !x.Equal(y) {
			return false
		}
	}
	return true
}

// WriteHash feeds the id and extension hashes into h.
func (b Base) WriteHash(h hash.Hash64) {
	WriteOptional(h, b.id)
	writeUint(h, uint64(len(b.extension)))
	for _, ext := range b.extension {
		if ext == nil {
			writeUint(h, 0)
			continue
		}
		writeUint(h, ext.Hash())
	}
}

// NewHash returns the hash function used for element hashes.
func NewHash() hash.Hash64 {
	return fnv.New64a()
}

// WriteString writes a length-prefixed string into h.
func WriteString(h hash.Hash64, s string) {
	writeUint(h, uint64(len(s)))
	_, _ = h.Write([]byte(s))
}

// WriteOptional writes an optional string, keeping absent distinct from empty.
func WriteOptional(h hash.Hash64, s *string) {
	if s == nil {
		_, _ = h.Write([]byte{0})
		return
	}
	_, _ = h.Write([]byte{1})
	WriteString(h, *s)
}

// Sum64 finishes h, mapping 0 to 1 so that 0 can mean "not computed".
func Sum64(h hash.Hash64) uint64 {
	sum := h.Sum64()
	if sum == 0 {
		return 1
	}
	return sum
}

func writeUint(h hash.Hash64, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
