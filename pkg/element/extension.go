package element

import (
	"encoding/json"
	"sync/atomic"
)

// Extension is an auxiliary attachment carried by any element.
//
// Extensions are not validated when they are built; the element that
// carries them validates the whole tree when it is built.
type Extension struct {
	Base
	url   string
	value Element
	hash  atomic.Uint64
}

// NewExtension returns an extension with a url and a value.
func NewExtension(url string, value Element) *Extension {
	return NewExtensionBuilder(url).Value(value).Build()
}

// URL returns the extension url.
func (e *Extension) URL() string {
	return e.url
}

// Value returns value[x], or nil.
func (e *Extension) Value() Element {
	return e.value
}

// Kind implements Element.
func (e *Extension) Kind() Kind {
	return KindExtension
}

// HasValue is false: an Extension is complex and has no @value of its own.
func (e *Extension) HasValue() bool {
	return false
}

// HasChildren counts url, value[x] and nested extensions as children.
func (e *Extension) HasChildren() bool {
	return e.url != "" || e.value != nil || e.Base.HasChildren()
}

// Equal compares url, id, nested extensions and value structurally.
func (e *Extension) Equal(other Element) bool {
	o, ok := other.(*Extension)
	if !ok || o == nil {
		return false
	}
	if e == o {
		return true
	}
	if e.url != o.url || !e.EqualBase(o.Base) {
		return false
	}
	if e.value == nil || o.value == nil {
		return e.value == nil && o.value == nil
	}
	return e.value.Equal(o.value)
}

// Hash returns the memoized structural hash.
func (e *Extension) Hash() uint64 {
	if h := e.hash.Load(); h != 0 {
		return h
	}
	h := NewHash()
	WriteString(h, KindExtension.Name)
	WriteString(h, e.url)
	e.WriteHash(h)
	if e.value != nil {
		writeUint(h, e.value.Hash())
	} else {
		writeUint(h, 0)
	}
	sum := Sum64(h)
	e.hash.Store(sum)
	return sum
}

// MarshalJSON renders the extension in FHIR JSON form.
func (e *Extension) MarshalJSON() ([]byte, error) {
	return json.Marshal(extensionJSON(e))
}

// ExtensionBuilder assembles an Extension. It is not safe for concurrent use.
type ExtensionBuilder struct {
	id        *string
	url       string
	value     Element
	extension []*Extension
}

// NewExtensionBuilder starts an extension with the given url.
func NewExtensionBuilder(url string) *ExtensionBuilder {
	return &ExtensionBuilder{url: url}
}

// ID sets the extension id.
func (b *ExtensionBuilder) ID(id string) *ExtensionBuilder {
	b.id = &id
	return b
}

// Value sets value[x].
func (b *ExtensionBuilder) Value(value Element) *ExtensionBuilder {
	b.value = value
	return b
}

// Extension appends nested extensions.
func (b *ExtensionBuilder) Extension(ext ...*Extension) *ExtensionBuilder {
	b.extension = append(b.extension, ext...)
	return b
}

// Build returns the extension. The builder may be reused afterwards;
// the returned extension does not share state with it.
func (b *ExtensionBuilder) Build() *Extension {
	return &Extension{
		Base:  NewBase(b.id, b.extension),
		url:   b.url,
		value: b.value,
	}
}
