package terminology

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gofhir/fhir/r4"
)

func ptr(s string) *string { return &s }

func TestFromValueSetExpansion(t *testing.T) {
	system := "http://example.org/CodeSystem/nested"
	vs := &r4.ValueSet{
		Url:  ptr("http://example.org/ValueSet/nested"),
		Name: ptr("Nested"),
		Expansion: &r4.ValueSetExpansion{
			Contains: []r4.ValueSetExpansionContains{
				{
					System:  &system,
					Code:    ptr("parent"),
					Display: ptr("Parent"),
					Contains: []r4.ValueSetExpansionContains{
						{System: &system, Code: ptr("child")},
					},
				},
				{
					// Abstract grouper without a code.
					Contains: []r4.ValueSetExpansionContains{
						{System: &system, Code: ptr("orphan")},
					},
				},
				{System: &system, Code: ptr("parent")},
			},
		},
	}

	v, err := FromValueSet(vs)
	if err != nil {
		t.Fatalf("FromValueSet() error = %v", err)
	}
	if got, want := v.Wires(), []string{"parent", "child", "orphan"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Wires() = %v; want %v", got, want)
	}
	if v.Name() != "Nested" {
		t.Errorf("Name() = %q", v.Name())
	}
	if v.System() != system {
		t.Errorf("System() = %q", v.System())
	}
	if v.Display("parent") != "Parent" {
		t.Errorf("Display(parent) = %q", v.Display("parent"))
	}
	if v.Extensible() {
		t.Error("expansion vocabulary should be closed")
	}
}

func TestFromValueSetCompose(t *testing.T) {
	system := "http://example.org/CodeSystem/composed"
	vs := &r4.ValueSet{
		Url: ptr("http://example.org/ValueSet/composed"),
		Compose: &r4.ValueSetCompose{
			Include: []r4.ValueSetComposeInclude{
				{
					System: &system,
					Concept: []r4.ValueSetComposeIncludeConcept{
						{Code: ptr("a"), Display: ptr("A")},
						{Code: ptr("b")},
					},
				},
			},
		},
	}

	v, err := FromValueSet(vs, WithName("Composed"), WithExtensible(true))
	if err != nil {
		t.Fatalf("FromValueSet() error = %v", err)
	}
	if got, want := v.Wires(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Wires() = %v; want %v", got, want)
	}
	if v.Name() != "Composed" {
		t.Errorf("Name() = %q; want Composed", v.Name())
	}
	if !v.Extensible() {
		t.Error("WithExtensible(true) not applied")
	}
}

func TestFromValueSetWholeSystem(t *testing.T) {
	system := "http://example.org/CodeSystem/colors"
	cs := &r4.CodeSystem{
		Url: &system,
		Concept: []r4.CodeSystemConcept{
			{Code: ptr("red")},
			{Code: ptr("green")},
		},
	}
	vs := &r4.ValueSet{
		Url: ptr("http://example.org/ValueSet/colors"),
		Compose: &r4.ValueSetCompose{
			Include: []r4.ValueSetComposeInclude{{System: &system}},
		},
	}

	v, err := FromValueSet(vs, WithCodeSystems(cs))
	if err != nil {
		t.Fatalf("FromValueSet() error = %v", err)
	}
	if got, want := v.Wires(), []string{"red", "green"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Wires() = %v; want %v", got, want)
	}
	if v.Extensible() {
		t.Error("fully resolved compose should be closed")
	}

	partial, err := FromValueSet(vs)
	if err != nil {
		t.Fatalf("FromValueSet() without code systems error = %v", err)
	}
	if !partial.Extensible() || partial.Len() != 0 {
		t.Errorf("unresolved include: Extensible() = %v, Len() = %d; want true, 0", partial.Extensible(), partial.Len())
	}
}

func TestFromValueSetExclude(t *testing.T) {
	colors := "http://example.org/CodeSystem/colors"
	shapes := "http://example.org/CodeSystem/shapes"
	include := []r4.ValueSetComposeInclude{
		{System: &colors, Concept: []r4.ValueSetComposeIncludeConcept{{Code: ptr("red")}, {Code: ptr("green")}}},
		{System: &shapes, Concept: []r4.ValueSetComposeIncludeConcept{{Code: ptr("circle")}, {Code: ptr("square")}}},
	}

	tests := []struct {
		name    string
		exclude []r4.ValueSetComposeInclude
		want    []string
	}{
		{
			name:    "whole system",
			exclude: []r4.ValueSetComposeInclude{{System: &shapes}},
			want:    []string{"red", "green"},
		},
		{
			name:    "listed concept",
			exclude: []r4.ValueSetComposeInclude{{System: &colors, Concept: []r4.ValueSetComposeIncludeConcept{{Code: ptr("green")}}}},
			want:    []string{"red", "circle", "square"},
		},
		{
			name:    "concept of another system",
			exclude: []r4.ValueSetComposeInclude{{System: &shapes, Concept: []r4.ValueSetComposeIncludeConcept{{Code: ptr("red")}}}},
			want:    []string{"red", "green", "circle", "square"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := &r4.ValueSet{
				Url:     ptr("http://example.org/ValueSet/mixed"),
				Compose: &r4.ValueSetCompose{Include: include, Exclude: tt.exclude},
			}
			v, err := FromValueSet(vs)
			if err != nil {
				t.Fatalf("FromValueSet() error = %v", err)
			}
			if got := v.Wires(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wires() = %v; want %v", got, tt.want)
			}
			if v.Extensible() {
				t.Error("excludes must not make the vocabulary extensible")
			}
		})
	}
}

func TestFromValueSetErrors(t *testing.T) {
	tests := []struct {
		name string
		vs   *r4.ValueSet
	}{
		{"nil", nil},
		{"no url", &r4.ValueSet{}},
		{"no content", &r4.ValueSet{Url: ptr("http://example.org/ValueSet/empty")}},
		{"empty expansion", &r4.ValueSet{
			Url:       ptr("http://example.org/ValueSet/empty"),
			Expansion: &r4.ValueSetExpansion{},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromValueSet(tt.vs); err == nil {
				t.Error("FromValueSet() succeeded")
			}
		})
	}

	_, err := FromValueSet(&r4.ValueSet{Url: ptr("http://example.org/ValueSet/empty")})
	if !errors.Is(err, ErrNotEnumerable) {
		t.Errorf("error = %v; want ErrNotEnumerable", err)
	}
}

func TestFromCodeSystemNested(t *testing.T) {
	url := "http://example.org/CodeSystem/hierarchical"
	cs := &r4.CodeSystem{
		Url: &url,
		Concept: []r4.CodeSystemConcept{
			{
				Code:    ptr("parent"),
				Display: ptr("Parent"),
				Concept: []r4.CodeSystemConcept{
					{Code: ptr("child"), Display: ptr("Child")},
				},
			},
			{Code: ptr("sibling")},
		},
	}

	v, err := FromCodeSystem(cs)
	if err != nil {
		t.Fatalf("FromCodeSystem() error = %v", err)
	}
	if got, want := v.Wires(), []string{"parent", "child", "sibling"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Wires() = %v; want %v", got, want)
	}
	if v.Name() != url {
		t.Errorf("Name() = %q; want the URL when the resource has no name", v.Name())
	}
	if v.System() != url {
		t.Errorf("System() = %q; want %q", v.System(), url)
	}

	if _, err := FromCodeSystem(&r4.CodeSystem{Url: &url}); !errors.Is(err, ErrNotEnumerable) {
		t.Errorf("empty CodeSystem error = %v; want ErrNotEnumerable", err)
	}
}
