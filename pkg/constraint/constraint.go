// Package constraint evaluates FHIRPath invariants against the extensions
// carried by an element.
//
// The structural invariants ele-1 and ext-1 are checked natively by
// package element. This package is for profile-level rules such as
// "every extension must declare an id", expressed in FHIRPath and
// evaluated against the FHIR JSON rendering of each extension.
package constraint

import (
	"encoding/json"
	"fmt"

	"github.com/gofhir/fhirpath"

	"github.com/gofhir/codes/cache"
	"github.com/gofhir/codes/pkg/element"
	"github.com/gofhir/codes/pkg/issue"
	"github.com/gofhir/codes/pool"
)

// Severity values accepted on an Invariant.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Invariant is a FHIRPath rule that every extension must satisfy.
type Invariant struct {
	Key        string
	Severity   string
	Human      string
	Expression string
}

// Validator evaluates a fixed set of invariants. Compiled expressions are
// cached, so a Validator should be shared. It is safe for concurrent use.
type Validator struct {
	invariants []Invariant
	exprCache  *cache.Cache[string, *fhirpath.Expression]
}

// New creates a Validator. cacheSize bounds the compiled-expression cache;
// a non-positive size selects the cache default.
func New(invariants []Invariant, cacheSize int) *Validator {
	inv := make([]Invariant, len(invariants))
	copy(inv, invariants)
	return &Validator{
		invariants: inv,
		exprCache:  cache.New[string, *fhirpath.Expression](cacheSize),
	}
}

// Invariants returns a copy of the configured invariants.
func (v *Validator) Invariants() []Invariant {
	out := make([]Invariant, len(v.invariants))
	copy(out, v.invariants)
	return out
}

// CacheStats returns the compiled-expression cache counters.
func (v *Validator) CacheStats() cache.Stats {
	return v.exprCache.Stats()
}

// ValidateExtensions evaluates every invariant against each extension of
// the list, recursing into nested extensions. path is the expression of
// the element that carries the list.
func (v *Validator) ValidateExtensions(list []*element.Extension, path string, result *issue.Result) {
	if len(v.invariants) == 0 {
		return
	}
	for i, ext := range list {
		if ext == nil {
			continue
		}
		p := pool.Indexed(path, "extension", i)
		v.validateExtension(ext, p, result)
		v.ValidateExtensions(ext.Extensions(), p, result)
	}
}

func (v *Validator) validateExtension(ext *element.Extension, path string, result *issue.Result) {
	data, err := json.Marshal(ext)
	if err != nil {
		result.AddWarningWithID(issue.DiagConstraintEvalError, map[string]any{
			"key":   "*",
			"error": err.Error(),
		}, path)
		return
	}
	for _, inv := range v.invariants {
		v.evaluate(inv, data, path, result)
	}
}

func (v *Validator) evaluate(inv Invariant, data []byte, path string, result *issue.Result) {
	if inv.Expression == "" {
		return
	}

	compiled, err := v.compile(inv.Expression)
	if err != nil {
		result.AddWarningWithID(issue.DiagConstraintCompileError, map[string]any{
			"key":   inv.Key,
			"error": err.Error(),
		}, path)
		return
	}
	out, err := compiled.Evaluate(data)
	if err != nil {
		result.AddWarningWithID(issue.DiagConstraintEvalError, map[string]any{
			"key":   inv.Key,
			"error": err.Error(),
		}, path)
		return
	}
	if passed(out) {
		return
	}

	human := inv.Human
	if human == "" {
		human = inv.Expression
	}
	sev := issue.SeverityError
	if inv.Severity == SeverityWarning {
		sev = issue.SeverityWarning
	}
	result.AddIssue(issue.Issue{
		Severity:      sev,
		Code:          issue.CodeInvariant,
		Diagnostics:   issue.FormatDiagnostic(issue.DiagConstraintFailed, map[string]any{"key": inv.Key, "human": human}),
		Expression:    []string{path},
		MessageID:     string(issue.DiagConstraintFailed),
		ConstraintKey: inv.Key,
	})
}

// Evaluate compiles (or reuses) expression and evaluates it against the
// JSON document data. An empty result counts as satisfied.
func (v *Validator) Evaluate(expression string, data []byte) (bool, error) {
	compiled, err := v.compile(expression)
	if err != nil {
		return false, err
	}
	out, err := compiled.Evaluate(data)
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", expression, err)
	}
	return passed(out), nil
}

func (v *Validator) compile(expression string) (*fhirpath.Expression, error) {
	compiled, err := v.exprCache.GetOrCompute(expression, func() (*fhirpath.Expression, error) {
		return fhirpath.Compile(expression)
	})
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	return compiled, nil
}

// passed applies FHIRPath truthiness: empty passes, a boolean is itself,
// any other non-empty result passes.
func passed(result fhirpath.Collection) bool {
	if result.Empty() {
		return true
	}
	b, err := result.ToBoolean()
	if err != nil {
		return true
	}
	return b
}
