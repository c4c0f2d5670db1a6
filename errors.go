package codes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofhir/codes/pkg/element"
	"github.com/gofhir/codes/pkg/issue"
)

// Errors returned by builders and construction helpers. Test for them
// with errors.Is; a Build error may wrap several of them at once.
var (
	// ErrInvalidArgument reports a wire string or member outside the vocabulary.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNullReference reports a required argument that was nil.
	ErrNullReference = errors.New("null reference")

	// ErrBuilderClosed reports use of a builder after Build.
	ErrBuilderClosed = errors.New("builder already built")

	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrTypeMismatch is returned by element.As.
	ErrTypeMismatch = element.ErrTypeMismatch
)

// ValidationError lists every structural problem found by Build.
type ValidationError struct {
	// Path is the expression of the element that failed.
	Path string

	// Issues holds every error and warning, in the order found.
	Issues []issue.Issue

	// Truncated is set when issues were dropped because of WithMaxIssues.
	Truncated bool
}

// Error joins the diagnostics of all error-level issues.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	errs := 0
	for _, is := range e.Issues {
		if !is.IsError() {
			continue
		}
		if errs > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(is.String())
		errs++
	}
	msg := fmt.Sprintf("%s: %d issue(s)", ErrValidation, errs)
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Truncated {
		msg += " (truncated)"
	}
	if errs == 0 {
		return msg
	}
	return msg + ": " + sb.String()
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Has reports whether any issue was raised from the given diagnostic.
func (e *ValidationError) Has(id issue.DiagnosticID) bool {
	for _, is := range e.Issues {
		if is.MessageID == string(id) {
			return true
		}
	}
	return false
}
