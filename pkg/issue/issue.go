// Package issue defines element validation issues aligned with FHIR OperationOutcome.
package issue

import (
	"strings"
	"sync"
)

// Severity represents the severity of a validation issue.
type Severity string

// Severity constants aligned with FHIR IssueSeverity.
const (
	SeverityFatal       Severity = "fatal"
	SeverityError       Severity = "error"
	SeverityWarning     Severity = "warning"
	SeverityInformation Severity = "information"
)

// Code represents the type of validation issue (IssueType).
type Code string

// Code constants aligned with FHIR IssueType. Only the types an element
// builder can raise are listed.
const (
	CodeInvalid       Code = "invalid"
	CodeStructure     Code = "structure"
	CodeRequired      Code = "required"
	CodeValue         Code = "value"
	CodeInvariant     Code = "invariant"
	CodeProcessing    Code = "processing"
	CodeCodeInvalid   Code = "code-invalid"
	CodeExtension     Code = "extension"
	CodeTooCostly     Code = "too-costly"
	CodeInformational Code = "informational"
)

// Issue represents a single validation issue.
type Issue struct {
	// Severity indicates the severity level (error, warning, etc.)
	Severity Severity

	// Code indicates the type of issue
	Code Code

	// Diagnostics is the human-readable description of the issue
	Diagnostics string

	// Expression contains the FHIRPath-style path of the offending element
	Expression []string

	// MessageID is the identifier from the diagnostic catalog
	MessageID string

	// ConstraintKey is the invariant key (e.g. "ele-1") for invariant failures
	ConstraintKey string
}

// IsError returns true if this is an error or fatal issue.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError || i.Severity == SeverityFatal
}

// String returns a human-readable representation of the issue.
func (i Issue) String() string {
	var sb strings.Builder
	sb.WriteString(string(i.Severity))
	sb.WriteString(": ")
	sb.WriteString(i.Diagnostics)
	if len(i.Expression) > 0 {
		sb.WriteString(" at ")
		sb.WriteString(i.Expression[0])
	}
	return sb.String()
}

// Result holds the collection of issues raised while validating one element.
type Result struct {
	Issues []Issue

	// limit caps the number of issues kept; 0 means unlimited.
	limit     int
	truncated bool

	// droppedErrors counts error-level issues discarded by the limit.
	droppedErrors int
}

// defaultIssueCapacity is the pre-allocated capacity for Issues slice.
// A failed build rarely produces more than a handful of issues.
const defaultIssueCapacity = 8

var resultPool = sync.Pool{
	New: func() any {
		return &Result{
			Issues: make([]Issue, 0, defaultIssueCapacity),
		}
	},
}

// NewResult creates a new empty Result with pre-allocated capacity.
func NewResult() *Result {
	return &Result{
		Issues: make([]Issue, 0, defaultIssueCapacity),
	}
}

// GetPooledResult returns a Result from the pool.
// Call ReleaseResult when done to return it to the pool.
func GetPooledResult() *Result {
	r, ok := resultPool.Get().(*Result)
	if !ok {
		r = NewResult()
	}
	r.Issues = r.Issues[:0]
	r.limit = 0
	r.truncated = false
	r.droppedErrors = 0
	return r
}

// ReleaseResult returns a Result to the pool for reuse.
// Do not use the Result after calling this function.
func ReleaseResult(r *Result) {
	if r == nil {
		return
	}
	for i := range r.Issues {
		r.Issues[i] = Issue{}
	}
	r.Issues = r.Issues[:0]
	resultPool.Put(r)
}

// SetLimit caps the number of issues the result keeps. Use 0 for unlimited.
// Past the limit an error replaces the most recent non-error issue;
// anything else is dropped and Truncated reports true. Dropped errors
// still count in HasErrors and ErrorCount.
func (r *Result) SetLimit(limit int) {
	r.limit = limit
}

// Truncated reports whether issues were dropped because of the limit.
func (r *Result) Truncated() bool {
	return r.truncated
}

// AddIssue adds an issue to the result.
func (r *Result) AddIssue(issue Issue) {
	if r.limit > 0 && len(r.Issues) >= r.limit {
		r.truncated = true
		if !issue.IsError() {
			return
		}
		for i := len(r.Issues) - 1; i >= 0; i-- {
			if !r.Issues[i].IsError() {
				r.Issues = append(r.Issues[:i], r.Issues[i+1:]...)
				r.Issues = append(r.Issues, issue)
				return
			}
		}
		r.droppedErrors++
		return
	}
	r.Issues = append(r.Issues, issue)
}

// AddError adds an error-level issue.
func (r *Result) AddError(code Code, diagnostics string, expression ...string) {
	r.AddIssue(Issue{
		Severity:    SeverityError,
		Code:        code,
		Diagnostics: diagnostics,
		Expression:  expression,
	})
}

// HasErrors returns true if there are any error-level issues, kept or dropped.
func (r *Result) HasErrors() bool {
	if r.droppedErrors > 0 {
		return true
	}
	for _, issue := range r.Issues {
		if issue.IsError() {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level issues, kept or dropped.
func (r *Result) ErrorCount() int {
	count := r.droppedErrors
	for _, issue := range r.Issues {
		if issue.IsError() {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			count++
		}
	}
	return count
}

// Errors returns the error-level issues in the order they were raised.
func (r *Result) Errors() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.IsError() {
			out = append(out, issue)
		}
	}
	return out
}

// Clone returns a copy of the issues that outlives the result.
// Use it before releasing a pooled result.
func (r *Result) Clone() []Issue {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make([]Issue, len(r.Issues))
	copy(out, r.Issues)
	return out
}
