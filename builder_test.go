package codes

import (
	"errors"
	"strings"
	"testing"

	"github.com/gofhir/codes/pkg/constraint"
	"github.com/gofhir/codes/pkg/element"
	"github.com/gofhir/codes/pkg/issue"
	"github.com/gofhir/codes/pkg/vocabulary"
)

func TestValueStrict(t *testing.T) {
	tests := []struct {
		wire    string
		wantErr bool
	}{
		{"red", false},
		{"blue", false},
		{"Red", true},
		{"purple", true},
		{"", true},
		{" red", true},
	}
	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			c, err := Of(testVocabulary(), tt.wire)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Of(%q) error = %v", tt.wire, err)
				}
				if c.String() != tt.wire {
					t.Errorf("Value() = %q", c.String())
				}
				return
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("Of(%q) error = %v; want ErrInvalidArgument", tt.wire, err)
			}
			if !errors.Is(err, vocabulary.ErrNotFound) {
				t.Errorf("Of(%q) error does not wrap ErrNotFound", tt.wire)
			}
			if !strings.Contains(err.Error(), "'"+tt.wire+"'") && !strings.Contains(err.Error(), `"`+tt.wire+`"`) {
				t.Errorf("error %q does not name %q", err, tt.wire)
			}
		})
	}
}

func TestMemberUndeclared(t *testing.T) {
	_, err := OfMember(testVocabulary(), undeclared)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("OfMember(undeclared) error = %v; want ErrInvalidArgument", err)
	}
}

func TestNilVocabulary(t *testing.T) {
	_, err := NewBuilder[color](nil).Value("red").Build()
	if !errors.Is(err, ErrNullReference) {
		t.Errorf("Build() error = %v; want ErrNullReference", err)
	}
}

func TestExtensionsReplaceIdempotent(t *testing.T) {
	vocab := testVocabulary()
	a := note("http://example.org/a", "a")
	b := note("http://example.org/b", "b")
	list := []*element.Extension{a, b}

	once, err := NewBuilder(vocab).Member(red).Extensions(list).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	twice, err := NewBuilder(vocab).Member(red).Extensions(list).Extensions(list).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !once.Equal(twice) {
		t.Error("setting the same list twice differs from setting it once")
	}

	replaced, err := NewBuilder(vocab).Member(red).Extension(a).Extensions([]*element.Extension{b}).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := replaced.Extensions(); len(got) != 1 || got[0] != b {
		t.Errorf("Extensions() after replace = %v", got)
	}
}

func TestExtensionsCopiesInput(t *testing.T) {
	a := note("http://example.org/a", "a")
	list := []*element.Extension{a}
	b := NewBuilder(testVocabulary()).Member(red).Extensions(list)
	list[0] = note("http://example.org/z", "z")

	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if c.Extensions()[0] != a {
		t.Error("changing the caller's slice changed the builder")
	}
}

func TestExtensionsEmptyClears(t *testing.T) {
	c, err := NewBuilder(testVocabulary()).
		Member(red).
		Extension(note("http://example.org/a", "a")).
		Extensions([]*element.Extension{}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if n := len(c.Extensions()); n != 0 {
		t.Errorf("len(Extensions()) = %d; want 0", n)
	}
}

func TestExtensionAccumulates(t *testing.T) {
	e1 := note("http://example.org/1", "1")
	e2 := note("http://example.org/2", "2")
	e3 := note("http://example.org/3", "3")

	c, err := NewBuilder(testVocabulary()).Member(red).Extension(e1).Extension(e2, e3).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	got := c.Extensions()
	want := []*element.Extension{e1, e2, e3}
	if len(got) != len(want) {
		t.Fatalf("len(Extensions()) = %d; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Extensions()[%d] = %v; want %v", i, got[i].URL(), want[i].URL())
		}
	}
}

func TestNullReferences(t *testing.T) {
	a := note("http://example.org/a", "a")

	tests := []struct {
		name  string
		build func(*Builder[color]) *Builder[color]
		exts  int
	}{
		{"nil list", func(b *Builder[color]) *Builder[color] {
			return b.Extension(a).Extensions(nil)
		}, 1},
		{"nil entry in list", func(b *Builder[color]) *Builder[color] {
			return b.Extensions([]*element.Extension{a, nil})
		}, 1},
		{"nil variadic entry", func(b *Builder[color]) *Builder[color] {
			return b.Extension(nil, a)
		}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.build(NewBuilder(testVocabulary()).Member(red))
			if n := len(b.extension); n != tt.exts {
				t.Errorf("builder holds %d extensions; want %d", n, tt.exts)
			}
			if _, err := b.Build(); !errors.Is(err, ErrNullReference) {
				t.Errorf("Build() error = %v; want ErrNullReference", err)
			}
		})
	}
}

func TestBuilderClosed(t *testing.T) {
	b := NewBuilder(testVocabulary()).Member(red)
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := b.Build(); !errors.Is(err, ErrBuilderClosed) {
		t.Errorf("second Build() error = %v; want ErrBuilderClosed", err)
	}

	b.ID("x")
	if len(b.errs) == 0 || !errors.Is(b.errs[len(b.errs)-1], ErrBuilderClosed) {
		t.Error("setter after Build did not record ErrBuilderClosed")
	}
	if b.id != nil {
		t.Error("setter after Build changed the builder")
	}
}

func TestBuiltCodeUnaffectedByBuilder(t *testing.T) {
	b := NewBuilder(testVocabulary()).Member(red).Extension(note("http://example.org/a", "a"))
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	b.extension[0] = nil
	if c.Extensions()[0] == nil {
		t.Error("built code shares its extension slice with the builder")
	}
}

func TestBuildExhaustive(t *testing.T) {
	badURL := element.NewExtension("http://example.org/has space", element.NewString("x"))
	both := element.NewExtensionBuilder("http://example.org/both").
		Value(element.NewString("x")).
		Extension(note("http://example.org/inner", "y")).
		Build()

	_, err := NewBuilder(testVocabulary()).
		ID("bad id").
		RawValue("two  spaces").
		Extension(badURL, both).
		Build()

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Build() error = %v; want *ValidationError", err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError does not unwrap to ErrValidation")
	}

	for _, id := range []issue.DiagnosticID{
		issue.DiagElementIDWhitespace,
		issue.DiagValueInvalidFormat,
		issue.DiagExtensionURLWhitespace,
		issue.DiagExtensionExt1,
	} {
		if !verr.Has(id) {
			t.Errorf("ValidationError missing %s; issues = %v", id, verr.Issues)
		}
	}
}

func TestBuildJoinsSetterAndValidationErrors(t *testing.T) {
	_, err := NewBuilder(testVocabulary()).ID("bad id").Value("purple").Build()
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("error %v does not report the rejected value", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("error %v does not report the id", err)
	}
}

func TestBuildMaxIssues(t *testing.T) {
	b := NewBuilder(testVocabulary(), WithMaxIssues(1)).ID("bad id").RawValue("a  b")
	_, err := b.Build()

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Build() error = %v; want *ValidationError", err)
	}
	if len(verr.Issues) != 1 || !verr.Truncated {
		t.Errorf("Issues = %d, Truncated = %v; want 1, true", len(verr.Issues), verr.Truncated)
	}
}

func TestBuildMaxIssuesKeepsFailure(t *testing.T) {
	v := constraint.New([]constraint.Invariant{
		{Key: "note-1", Severity: "error", Human: "notes need an id", Expression: "id.exists()"},
	}, 0)

	// The not-in-vocabulary warning is raised before the invariant fails.
	c, err := NewBuilder(testVocabulary(), WithMaxIssues(1), WithConstraints(v)).
		RawValue("purple").
		Extension(note("http://example.org/note", "x")).
		Build()
	if c != nil {
		t.Errorf("Build() = %v; want nil code", c)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Build() error = %v; want *ValidationError", err)
	}
	if !verr.Has(issue.DiagConstraintFailed) {
		t.Errorf("issues %v do not include the failed invariant", verr.Issues)
	}
	if len(verr.Issues) != 1 || !verr.Truncated {
		t.Errorf("Issues = %d, Truncated = %v; want 1, true", len(verr.Issues), verr.Truncated)
	}
}

func TestEle1(t *testing.T) {
	vocab := testVocabulary()

	tests := []struct {
		name    string
		builder *Builder[color]
		wantErr bool
	}{
		{"value only", NewBuilder(vocab).Member(red), false},
		{"extension only", NewBuilder(vocab).Extension(note("http://example.org/a", "a")), false},
		{"empty", NewBuilder(vocab), true},
		{"id only", NewBuilder(vocab).ID("x"), true},
		{"cleared extensions", NewBuilder(vocab).Extensions([]*element.Extension{}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("Build() error = %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || !verr.Has(issue.DiagElementEle1) {
				t.Errorf("Build() error = %v; want ele-1", err)
			}
		})
	}
}

func TestEle1NullExempt(t *testing.T) {
	if !element.Ele1(element.Null{}) {
		t.Error("Null placeholder should satisfy ele-1")
	}
	r := issue.NewResult()
	element.Validate(element.Null{}, "code[1]", r)
	if r.HasErrors() {
		t.Errorf("Null placeholder reported %v", r.Issues)
	}
}

func TestRawValue(t *testing.T) {
	c, err := NewBuilder(testVocabulary()).RawValue("magenta").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if c.String() != "magenta" {
		t.Errorf("Value() = %q", c.String())
	}
	if _, ok := c.Member(); ok {
		t.Error("Member() resolved an unknown raw value")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		wire    string
		open    bool
		wantErr error
		member  bool
	}{
		{"closed known", "red", false, nil, true},
		{"closed unknown", "magenta", false, ErrInvalidArgument, false},
		{"open known", "green", true, nil, true},
		{"open unknown", "magenta", true, nil, false},
		{"open malformed", "two  spaces", true, ErrValidation, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vocab := testVocabulary()
			if tt.open {
				vocab = extensibleVocabulary()
			}
			c, err := Decode(vocab, tt.wire)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Decode(%q) error = %v; want %v", tt.wire, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.wire, err)
			}
			if c.String() != tt.wire {
				t.Errorf("Value() = %q", c.String())
			}
			if _, ok := c.Member(); ok != tt.member {
				t.Errorf("Member() ok = %v; want %v", ok, tt.member)
			}
		})
	}
}

func TestConstraintsOnExtensions(t *testing.T) {
	v := constraint.New([]constraint.Invariant{
		{Key: "note-1", Severity: "error", Human: "notes need an id", Expression: "id.exists()"},
		{Key: "note-2", Severity: "warning", Human: "always warns", Expression: "false"},
	}, 0)

	withID := element.NewExtensionBuilder("http://example.org/note").ID("n1").Value(element.NewString("x")).Build()
	if _, err := NewBuilder(testVocabulary(), WithConstraints(v)).Member(red).Extension(withID).Build(); err != nil {
		t.Errorf("Build() error = %v; warnings must not fail the build", err)
	}

	_, err := NewBuilder(testVocabulary(), WithConstraints(v)).Member(red).Extension(note("http://example.org/note", "x")).Build()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Build() error = %v; want *ValidationError", err)
	}
	var keys []string
	for _, is := range verr.Issues {
		keys = append(keys, is.ConstraintKey)
	}
	if !strings.Contains(strings.Join(keys, ","), "note-1") {
		t.Errorf("issues %v do not include note-1", verr.Issues)
	}
}
