package codes

import (
	"errors"
	"sync"
	"testing"

	"github.com/gofhir/codes/pkg/element"
	"github.com/gofhir/codes/pkg/vocabulary"
)

func TestTable(t *testing.T) {
	vocab := testVocabulary()
	table := NewTable(vocab)

	if table.Len() != vocab.Len() {
		t.Fatalf("Len() = %d; want %d", table.Len(), vocab.Len())
	}
	if table.Vocabulary() != vocab {
		t.Error("Vocabulary() returned a different vocabulary")
	}

	for i, c := range table.All() {
		m := vocab.Members()[i]
		got, ok := table.Get(m)
		if !ok || got != c {
			t.Errorf("Get(%v) = %v, %v", m, got, ok)
		}
		if c.String() != vocab.ToWireString(m) {
			t.Errorf("code %d = %q; want %q", i, c.String(), vocab.ToWireString(m))
		}
	}

	if _, ok := table.Get(undeclared); ok {
		t.Error("Get(undeclared) found a code")
	}
}

func TestTableOf(t *testing.T) {
	table := NewTable(testVocabulary())

	c, err := table.Of("green")
	if err != nil {
		t.Fatalf("Of(green) error = %v", err)
	}
	if c != table.MustGet(green) {
		t.Error("Of(green) did not return the shared code")
	}
	if _, err := table.Of("purple"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Of(purple) error = %v; want ErrInvalidArgument", err)
	}
}

func TestTableMustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustGet(undeclared) did not panic")
		}
	}()
	NewTable(testVocabulary()).MustGet(undeclared)
}

func TestTableAllIsCopy(t *testing.T) {
	table := NewTable(testVocabulary())
	all := table.All()
	all[0] = nil
	if table.All()[0] == nil {
		t.Error("All() exposes the internal slice")
	}
}

func TestTableDecode(t *testing.T) {
	table := NewTable(testVocabulary())

	tests := []struct {
		name    string
		wire    string
		lenient bool
		wantErr bool
	}{
		{"member", "blue", false, false},
		{"unknown strict", "purple", false, true},
		{"unknown lenient", "purple", true, false},
		{"malformed lenient", "a  b", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := table.Decode(tt.wire, tt.lenient)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Decode(%q) succeeded", tt.wire)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.wire, err)
			}
			if v, _ := p.Value(); v != tt.wire {
				t.Errorf("Value() = %q", v)
			}
		})
	}
}

func TestTableDecodeAppliesOptions(t *testing.T) {
	table := NewTable(testVocabulary())
	shared := table.MustGet(red)

	p, err := table.Decode("red", false)
	if err != nil {
		t.Fatalf("Decode(red) error = %v", err)
	}
	if p != element.Primitive(shared) {
		t.Error("Decode without options should return the shared code")
	}

	m := NewMetrics()
	p, err = table.Decode("red", false, WithMetrics(m), WithPath("Patient.gender"))
	if err != nil {
		t.Fatalf("Decode(red) error = %v", err)
	}
	if p == element.Primitive(shared) {
		t.Error("Decode with options returned the shared code")
	}
	if !p.Equal(shared) {
		t.Errorf("Decode(red) = %v; want a code equal to %v", p, shared)
	}
	if m.BuildsTotal() != 1 {
		t.Errorf("BuildsTotal() = %d; want 1", m.BuildsTotal())
	}
}

func TestTableConcurrentReads(t *testing.T) {
	table := NewTable(testVocabulary())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, c := range table.All() {
				_ = c.Hash()
				_, _ = c.Member()
			}
		}()
	}
	wg.Wait()
}

func BenchmarkTableOf(b *testing.B) {
	table := NewTable(testVocabulary())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = table.Of("blue")
	}
}

func TestBuildTableMalformedCode(t *testing.T) {
	vocab := vocabulary.New("Spaced", "", []vocabulary.Entry[string]{
		{Member: "ok", Wire: "ok"},
		{Member: "bad", Wire: "two  spaces"},
	})
	if _, err := BuildTable(vocab); !errors.Is(err, ErrValidation) {
		t.Errorf("BuildTable() error = %v; want ErrValidation", err)
	}
	if _, err := BuildTable[string](nil); !errors.Is(err, ErrNullReference) {
		t.Errorf("BuildTable(nil) error = %v; want ErrNullReference", err)
	}
}
