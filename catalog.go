package codes

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gofhir/codes/pkg/element"
	"github.com/gofhir/codes/pkg/vocabulary"
)

// ErrDuplicateVocabulary is returned by Catalog.Register.
var ErrDuplicateVocabulary = errors.New("vocabulary already registered")

// Binder is a vocabulary whose member type has been erased: it can
// describe itself and decode wire strings into code elements.
// *Table[V] implements Binder for every V.
type Binder interface {
	Descriptor() vocabulary.Descriptor
	Decode(wire string, lenient bool, opts ...Option) (element.Primitive, error)
}

var _ Binder = (*Table[string])(nil)

// Catalog indexes binders by vocabulary name and canonical URL.
// It is safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	byName map[string]Binder
	byURL  map[string]Binder
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byName: make(map[string]Binder),
		byURL:  make(map[string]Binder),
	}
}

// Register adds binders. It fails on the first binder whose name or URL
// is already taken; binders before it stay registered.
func (c *Catalog) Register(binders ...Binder) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range binders {
		if isNil(b) {
			return fmt.Errorf("%w: binder is nil", ErrNullReference)
		}
		d := b.Descriptor()
		if isNil(d) {
			return fmt.Errorf("%w: binder has no vocabulary", ErrNullReference)
		}
		if _, ok := c.byName[d.Name()]; ok {
			return fmt.Errorf("%w: name %s", ErrDuplicateVocabulary, d.Name())
		}
		if url := d.URL(); url != "" {
			if _, ok := c.byURL[url]; ok {
				return fmt.Errorf("%w: url %s", ErrDuplicateVocabulary, url)
			}
			c.byURL[url] = b
		}
		c.byName[d.Name()] = b
	}
	return nil
}

// Lookup finds a binder by vocabulary name or canonical URL. A URL may
// carry a "|version" suffix, which is ignored.
func (c *Catalog) Lookup(key string) (Binder, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if b, ok := c.byName[key]; ok {
		return b, true
	}
	if b, ok := c.byURL[key]; ok {
		return b, true
	}
	if i := strings.LastIndexByte(key, '|'); i >= 0 {
		b, ok := c.byURL[key[:i]]
		return b, ok
	}
	return nil, false
}

// Names returns the registered vocabulary names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered binders.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byName)
}

// isNil also catches typed nils such as a nil *Table[V] stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
