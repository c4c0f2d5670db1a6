package terminology

import (
	"errors"
	"fmt"

	"github.com/gofhir/fhir/r4"

	"github.com/gofhir/codes/pkg/logger"
	"github.com/gofhir/codes/pkg/vocabulary"
)

// ErrNotEnumerable is returned for a ValueSet whose codes cannot be
// listed: no expansion and no enumerated or resolvable compose include.
var ErrNotEnumerable = errors.New("valueset cannot be enumerated")

// Option configures how a resource becomes a vocabulary.
type Option func(*options)

type options struct {
	name        string
	extensible  bool
	codeSystems map[string]*r4.CodeSystem
	log         *logger.Logger
}

// WithName overrides the vocabulary name taken from the resource.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithExtensible marks the vocabulary as extensible, so codes.Decode
// keeps codes it does not list. Use it for extensible, preferred and
// example bindings.
func WithExtensible(extensible bool) Option {
	return func(o *options) {
		o.extensible = extensible
	}
}

// WithCodeSystems makes code systems available for compose includes that
// name a whole system instead of listing concepts.
func WithCodeSystems(systems ...*r4.CodeSystem) Option {
	return func(o *options) {
		if o.codeSystems == nil {
			o.codeSystems = make(map[string]*r4.CodeSystem, len(systems))
		}
		for _, cs := range systems {
			if cs != nil && cs.Url != nil {
				o.codeSystems[*cs.Url] = cs
			}
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{log: logger.Default().Named("terminology")}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// concepts collects entries in order, keeping the first of duplicate
// codes and the system each code was drawn from.
type concepts struct {
	entries []vocabulary.Entry[string]
	seen    map[string]string
	dropped int
}

func (c *concepts) add(system, code, display, definition string) {
	if code == "" {
		return
	}
	if c.seen == nil {
		c.seen = make(map[string]string)
	}
	if _, ok := c.seen[code]; ok {
		c.dropped++
		return
	}
	c.seen[code] = system
	c.entries = append(c.entries, vocabulary.Entry[string]{
		Member:     code,
		Wire:       code,
		Display:    display,
		Definition: definition,
	})
}

// remove drops code. A non-empty system must match the one the code was
// drawn from.
func (c *concepts) remove(system, code string) {
	from, ok := c.seen[code]
	if !ok || (system != "" && from != "" && from != system) {
		return
	}
	delete(c.seen, code)
	for i := range c.entries {
		if c.entries[i].Wire == code {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// removeSystem drops every code drawn from system and returns how many.
func (c *concepts) removeSystem(system string) int {
	kept := c.entries[:0]
	removed := 0
	for _, e := range c.entries {
		if c.seen[e.Wire] == system {
			delete(c.seen, e.Wire)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	c.entries = kept
	return removed
}

// FromValueSet builds a vocabulary from an R4 ValueSet. The expansion is
// used when present; otherwise the compose is enumerated: listed concepts
// are taken as is, includes naming only a system take every concept of
// that system when it was supplied with WithCodeSystems. Excludes remove
// the concepts they list, or every code of their system when they list
// none. Filters are not evaluated: an include filter makes the vocabulary
// extensible so unlisted codes still decode, and an exclude filter is
// logged and ignored.
//
// Codes are unique within a vocabulary. When a ValueSet draws the same
// code from two systems, the first one wins.
func FromValueSet(vs *r4.ValueSet, opts ...Option) (*vocabulary.Vocabulary[string], error) {
	if vs == nil || vs.Url == nil {
		return nil, fmt.Errorf("valueset is nil or has no URL")
	}
	o := newOptions(opts)
	url := *vs.Url

	var (
		c       concepts
		system  string
		partial bool
	)
	switch {
	case vs.Expansion != nil:
		for i := range vs.Expansion.Contains {
			collectContains(&vs.Expansion.Contains[i], &c, &system)
		}
	case vs.Compose != nil:
		partial = collectCompose(vs.Compose, &c, &system, o)
	default:
		return nil, fmt.Errorf("%w: %s has neither expansion nor compose", ErrNotEnumerable, url)
	}

	if len(c.entries) == 0 && !partial {
		return nil, fmt.Errorf("%w: %s lists no codes", ErrNotEnumerable, url)
	}
	if c.dropped > 0 {
		o.log.Debug("%s: dropped %d duplicate code(s)", url, c.dropped)
	}
	if partial && !o.extensible {
		o.log.Warn("%s: compose is not fully enumerable, vocabulary is extensible", url)
	}

	return vocabulary.Define(nameOf(o.name, vs.Name, url), url, c.entries,
		vocabulary.WithSystem(system),
		vocabulary.WithExtensible(o.extensible || partial))
}

// collectContains walks an expansion depth first. Abstract grouping
// entries without a code are skipped but their children are kept.
func collectContains(contains *r4.ValueSetExpansionContains, c *concepts, system *string) {
	if contains.Code != nil {
		c.add(deref(contains.System), *contains.Code, deref(contains.Display), "")
		if *system == "" && contains.System != nil {
			*system = *contains.System
		}
	}
	for i := range contains.Contains {
		collectContains(&contains.Contains[i], c, system)
	}
}

// collectCompose reports whether some include could not be enumerated.
func collectCompose(compose *r4.ValueSetCompose, c *concepts, system *string, o *options) (partial bool) {
	for i := range compose.Include {
		include := &compose.Include[i]
		includeSystem := deref(include.System)
		if *system == "" {
			*system = includeSystem
		}

		if len(include.Filter) > 0 {
			partial = true
			continue
		}

		if len(include.Concept) > 0 {
			for j := range include.Concept {
				concept := &include.Concept[j]
				c.add(includeSystem, deref(concept.Code), deref(concept.Display), "")
			}
			continue
		}

		cs, ok := o.codeSystems[includeSystem]
		if !ok {
			partial = true
			continue
		}
		collectConcepts(cs.Concept, includeSystem, c)
	}

	for i := range compose.Exclude {
		exclude := &compose.Exclude[i]
		excludeSystem := deref(exclude.System)
		switch {
		case len(exclude.Filter) > 0:
			o.log.Warn("exclude filter on %s is not evaluated, its codes are kept", excludeSystem)
		case len(exclude.Concept) > 0:
			for j := range exclude.Concept {
				c.remove(excludeSystem, deref(exclude.Concept[j].Code))
			}
		case excludeSystem != "":
			n := c.removeSystem(excludeSystem)
			o.log.Debug("excluded %d code(s) of %s", n, excludeSystem)
		}
	}
	return partial
}

// FromCodeSystem builds a vocabulary holding every concept of an R4
// CodeSystem. Nested concepts are flattened depth first, parents before
// children.
func FromCodeSystem(cs *r4.CodeSystem, opts ...Option) (*vocabulary.Vocabulary[string], error) {
	if cs == nil || cs.Url == nil {
		return nil, fmt.Errorf("codesystem is nil or has no URL")
	}
	o := newOptions(opts)
	url := *cs.Url

	var c concepts
	collectConcepts(cs.Concept, url, &c)
	if len(c.entries) == 0 {
		return nil, fmt.Errorf("%w: codesystem %s has no concepts", ErrNotEnumerable, url)
	}
	if c.dropped > 0 {
		o.log.Debug("%s: dropped %d duplicate code(s)", url, c.dropped)
	}

	return vocabulary.Define(nameOf(o.name, cs.Name, url), url, c.entries,
		vocabulary.WithSystem(url),
		vocabulary.WithExtensible(o.extensible))
}

func collectConcepts(list []r4.CodeSystemConcept, system string, c *concepts) {
	for i := range list {
		concept := &list[i]
		c.add(system, deref(concept.Code), deref(concept.Display), deref(concept.Definition))
		if len(concept.Concept) > 0 {
			collectConcepts(concept.Concept, system, c)
		}
	}
}

func nameOf(override string, name *string, url string) string {
	if override != "" {
		return override
	}
	if name != nil && *name != "" {
		return *name
	}
	return url
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
