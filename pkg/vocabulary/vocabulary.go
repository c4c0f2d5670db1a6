// Package vocabulary provides the fixed (member, wire string) tables that
// bound a coded element.
//
// A Vocabulary is built once, usually as a package-level variable, and is
// read-only afterwards. Lookups are linear scans: vocabularies hold tens of
// entries, and the first exact match wins.
package vocabulary

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a wire string matches no member.
var ErrNotFound = errors.New("code not found in vocabulary")

// Entry pairs an enumeration member with its canonical wire string.
type Entry[V comparable] struct {
	Member     V
	Wire       string
	Display    string
	Definition string
}

// Vocabulary is an immutable table of entries for one coded element.
type Vocabulary[V comparable] struct {
	name       string
	url        string
	system     string
	extensible bool
	entries    []Entry[V]
	index      map[V]int
}

// Option configures a Vocabulary at definition time.
type Option func(*settings)

type settings struct {
	system     string
	extensible bool
}

// WithSystem sets the code system the members are drawn from.
func WithSystem(system string) Option {
	return func(s *settings) {
		s.system = system
	}
}

// WithExtensible marks the vocabulary as open: decoders may keep wire
// strings that are not in the table instead of rejecting them.
func WithExtensible(extensible bool) Option {
	return func(s *settings) {
		s.extensible = extensible
	}
}

// New defines a vocabulary. Every member must appear exactly once and
// every wire string must be unique and non-empty; New panics otherwise,
// since a table that breaks these rules is a programming error.
func New[V comparable](name, url string, entries []Entry[V], opts ...Option) *Vocabulary[V] {
	v, err := Define(name, url, entries, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Define is New for tables assembled at runtime: it reports problems as
// an error instead of panicking.
func Define[V comparable](name, url string, entries []Entry[V], opts ...Option) (*Vocabulary[V], error) {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}

	v := &Vocabulary[V]{
		name:       name,
		url:        url,
		system:     s.system,
		extensible: s.extensible,
		entries:    make([]Entry[V], len(entries)),
		index:      make(map[V]int, len(entries)),
	}
	copy(v.entries, entries)

	wires := make(map[string]struct{}, len(entries))
	for i, e := range v.entries {
		if e.Wire == "" {
			return nil, fmt.Errorf("vocabulary %s: entry %d has an empty wire string", name, i)
		}
		if _, dup := v.index[e.Member]; dup {
			return nil, fmt.Errorf("vocabulary %s: member %v is defined twice", name, e.Member)
		}
		if _, dup := wires[e.Wire]; dup {
			return nil, fmt.Errorf("vocabulary %s: wire string %q is defined twice", name, e.Wire)
		}
		v.index[e.Member] = i
		wires[e.Wire] = struct{}{}
	}
	return v, nil
}

// Name returns the vocabulary name, e.g. "AdministrativeGender".
func (v *Vocabulary[V]) Name() string {
	return v.name
}

// URL returns the canonical ValueSet URL.
func (v *Vocabulary[V]) URL() string {
	return v.url
}

// System returns the code system URL, if one was given.
func (v *Vocabulary[V]) System() string {
	return v.system
}

// Extensible reports whether values outside the table may be kept by
// forward-compatible decoders.
func (v *Vocabulary[V]) Extensible() bool {
	return v.extensible
}

// Len returns the number of members.
func (v *Vocabulary[V]) Len() int {
	return len(v.entries)
}

// FromWireString returns the first member whose wire string equals s exactly.
func (v *Vocabulary[V]) FromWireString(s string) (V, error) {
	for i := range v.entries {
		if v.entries[i].Wire == s {
			return v.entries[i].Member, nil
		}
	}
	var zero V
	return zero, fmt.Errorf("%w: %q in %s", ErrNotFound, s, v.name)
}

// ToWireString returns the canonical wire string of m. Members are fixed
// when the table is defined, so this only returns "" for a value of V
// that was never declared in the table.
func (v *Vocabulary[V]) ToWireString(m V) string {
	if i, ok := v.index[m]; ok {
		return v.entries[i].Wire
	}
	return ""
}

// Has reports whether m is declared in the table.
func (v *Vocabulary[V]) Has(m V) bool {
	_, ok := v.index[m]
	return ok
}

// Contains reports whether s is the wire string of some member.
func (v *Vocabulary[V]) Contains(s string) bool {
	_, err := v.FromWireString(s)
	return err == nil
}

// Display returns the display text of m.
func (v *Vocabulary[V]) Display(m V) string {
	if i, ok := v.index[m]; ok {
		return v.entries[i].Display
	}
	return ""
}

// Definition returns the definition text of m.
func (v *Vocabulary[V]) Definition(m V) string {
	if i, ok := v.index[m]; ok {
		return v.entries[i].Definition
	}
	return ""
}

// Members returns the members in table order.
func (v *Vocabulary[V]) Members() []V {
	out := make([]V, len(v.entries))
	for i := range v.entries {
		out[i] = v.entries[i].Member
	}
	return out
}

// Wires returns the wire strings in table order.
func (v *Vocabulary[V]) Wires() []string {
	out := make([]string, len(v.entries))
	for i := range v.entries {
		out[i] = v.entries[i].Wire
	}
	return out
}

// Describe returns the display and definition of a wire string.
func (v *Vocabulary[V]) Describe(wire string) (display, definition string, ok bool) {
	for i := range v.entries {
		if v.entries[i].Wire == wire {
			return v.entries[i].Display, v.entries[i].Definition, true
		}
	}
	return "", "", false
}

// Entries returns a copy of the table.
func (v *Vocabulary[V]) Entries() []Entry[V] {
	out := make([]Entry[V], len(v.entries))
	copy(out, v.entries)
	return out
}

// Descriptor is the member-type-free view of a vocabulary.
type Descriptor interface {
	Name() string
	URL() string
	System() string
	Extensible() bool
	Len() int
	Contains(wire string) bool
	Wires() []string
	Describe(wire string) (display, definition string, ok bool)
}

var _ Descriptor = (*Vocabulary[string])(nil)
