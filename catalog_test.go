package codes

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	closed := NewTable(testVocabulary())
	open := NewTable(extensibleVocabulary())

	if err := c.Register(closed, open); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d; want 2", c.Len())
	}
	if got, want := c.Names(), []string{"Color", "OpenColor"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v; want %v", got, want)
	}

	tests := []struct {
		key   string
		want  Binder
		found bool
	}{
		{"Color", closed, true},
		{"http://example.org/ValueSet/color", closed, true},
		{"http://example.org/ValueSet/color|4.0.1", closed, true},
		{"http://example.org/ValueSet/open-color", open, true},
		{"Missing", nil, false},
		{"http://example.org/ValueSet/missing|1", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := c.Lookup(tt.key)
			if ok != tt.found {
				t.Fatalf("Lookup(%q) found = %v; want %v", tt.key, ok, tt.found)
			}
			if ok && got != tt.want {
				t.Errorf("Lookup(%q) returned the wrong binder", tt.key)
			}
		})
	}
}

func TestCatalogDuplicates(t *testing.T) {
	c := NewCatalog()
	if err := c.Register(NewTable(testVocabulary())); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := c.Register(NewTable(testVocabulary())); !errors.Is(err, ErrDuplicateVocabulary) {
		t.Errorf("Register(duplicate) error = %v; want ErrDuplicateVocabulary", err)
	}
}

func TestCatalogRegisterNil(t *testing.T) {
	var nilTable *Table[color]
	tests := []struct {
		name   string
		binder Binder
	}{
		{"untyped nil", nil},
		{"nil table", nilTable},
		{"table without vocabulary", &Table[color]{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog()
			if err := c.Register(tt.binder); !errors.Is(err, ErrNullReference) {
				t.Errorf("Register() error = %v; want ErrNullReference", err)
			}
			if c.Len() != 0 {
				t.Errorf("Len() = %d; want 0", c.Len())
			}
		})
	}
}

func TestCatalogDecode(t *testing.T) {
	c := NewCatalog()
	_ = c.Register(NewTable(extensibleVocabulary()))

	b, ok := c.Lookup("OpenColor")
	if !ok {
		t.Fatal("Lookup(OpenColor) failed")
	}
	p, err := b.Decode("teal", false)
	if err != nil {
		t.Fatalf("Decode(teal) error = %v", err)
	}
	code, ok := p.(*Code[color])
	if !ok {
		t.Fatalf("Decode returned %T", p)
	}
	if _, ok := code.Member(); ok {
		t.Error("teal resolved to a member")
	}
}

func TestCatalogConcurrent(t *testing.T) {
	c := NewCatalog()
	_ = c.Register(NewTable(testVocabulary()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := c.Lookup("Color"); !ok {
				t.Error("Lookup(Color) failed")
			}
			_ = c.Names()
		}()
	}
	wg.Wait()
}
