package issue

import (
	"fmt"
	"strings"
)

// DiagnosticID identifies a specific diagnostic message.
type DiagnosticID string

// Diagnostic IDs for element structure.
const (
	DiagElementIDWhitespace DiagnosticID = "ELEMENT_ID_WHITESPACE"
	DiagElementEmptyID      DiagnosticID = "ELEMENT_ID_EMPTY"
	DiagElementEle1         DiagnosticID = "ELEMENT_ELE1"
	DiagElementNil          DiagnosticID = "ELEMENT_NIL"
)

// Diagnostic IDs for primitive values.
const (
	DiagValueInvalidFormat DiagnosticID = "VALUE_INVALID_FORMAT"
	DiagValueNotInVocab    DiagnosticID = "VALUE_NOT_IN_VOCABULARY"
)

// Diagnostic IDs for extensions.
const (
	DiagExtensionNoURL            DiagnosticID = "EXTENSION_NO_URL"
	DiagExtensionURLWhitespace    DiagnosticID = "EXTENSION_URL_WHITESPACE"
	DiagExtensionExt1             DiagnosticID = "EXTENSION_EXT1"
	DiagExtensionInvalidValueType DiagnosticID = "EXTENSION_INVALID_VALUE_TYPE"
)

// Diagnostic IDs for FHIRPath invariants.
const (
	DiagConstraintFailed       DiagnosticID = "CONSTRAINT_FAILED"
	DiagConstraintCompileError DiagnosticID = "CONSTRAINT_COMPILE_ERROR"
	DiagConstraintEvalError    DiagnosticID = "CONSTRAINT_EVAL_ERROR"
)

// DiagnosticTemplate defines the structure for a diagnostic message.
type DiagnosticTemplate struct {
	ID            DiagnosticID
	Severity      Severity
	Code          Code
	ConstraintKey string
	Template      string
}

// diagnosticTemplates maps diagnostic IDs to their templates.
// Templates use {placeholder} syntax for variable substitution.
var diagnosticTemplates = map[DiagnosticID]DiagnosticTemplate{
	DiagElementIDWhitespace: {
		Severity: SeverityError,
		Code:     CodeValue,
		Template: "Element id '{id}' must not contain whitespace",
	},
	DiagElementEmptyID: {
		Severity: SeverityError,
		Code:     CodeValue,
		Template: "Element id must not be empty",
	},
	DiagElementEle1: {
		Severity:      SeverityError,
		Code:          CodeInvariant,
		ConstraintKey: "ele-1",
		Template:      "ele-1: All FHIR elements must have a @value or children",
	},
	DiagElementNil: {
		Severity: SeverityError,
		Code:     CodeRequired,
		Template: "Element must not be nil",
	},

	DiagValueInvalidFormat: {
		Severity: SeverityError,
		Code:     CodeValue,
		Template: "Value '{value}' does not match expected format for type {type}",
	},
	DiagValueNotInVocab: {
		Severity: SeverityError,
		Code:     CodeCodeInvalid,
		Template: "The value provided ('{value}') is not in the value set '{valueSet}'",
	},

	DiagExtensionNoURL: {
		Severity: SeverityError,
		Code:     CodeRequired,
		Template: "Extension must have a url",
	},
	DiagExtensionURLWhitespace: {
		Severity: SeverityError,
		Code:     CodeValue,
		Template: "Extension url '{url}' must not contain whitespace",
	},
	DiagExtensionExt1: {
		Severity:      SeverityError,
		Code:          CodeInvariant,
		ConstraintKey: "ext-1",
		Template:      "ext-1: Must have either extensions or value[x], not both (extension '{url}')",
	},
	DiagExtensionInvalidValueType: {
		Severity: SeverityError,
		Code:     CodeStructure,
		Template: "Extension '{url}' value must be a primitive, found {type}",
	},

	DiagConstraintFailed: {
		Severity: SeverityError,
		Code:     CodeInvariant,
		Template: "Constraint failed: {key}: {human}",
	},
	DiagConstraintCompileError: {
		Severity: SeverityWarning,
		Code:     CodeProcessing,
		Template: "Could not compile constraint '{key}': {error}",
	},
	DiagConstraintEvalError: {
		Severity: SeverityWarning,
		Code:     CodeProcessing,
		Template: "Could not evaluate constraint '{key}': {error}",
	},
}

// FormatDiagnostic formats a diagnostic message with the given parameters.
func FormatDiagnostic(id DiagnosticID, params map[string]any) string {
	tmpl, ok := diagnosticTemplates[id]
	if !ok {
		return string(id)
	}
	return formatTemplate(tmpl.Template, params)
}

// GetDiagnosticTemplate returns the template for a diagnostic ID.
func GetDiagnosticTemplate(id DiagnosticID) (DiagnosticTemplate, bool) {
	tmpl, ok := diagnosticTemplates[id]
	if ok {
		tmpl.ID = id
	}
	return tmpl, ok
}

// formatTemplate replaces {placeholder} with values from params.
func formatTemplate(template string, params map[string]any) string {
	if len(params) == 0 {
		return template
	}
	pairs := make([]string, 0, len(params)*2)
	for key, value := range params {
		pairs = append(pairs, "{"+key+"}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// AddWithID adds an issue using a diagnostic template, keeping the
// template's severity.
func (r *Result) AddWithID(id DiagnosticID, params map[string]any, expression ...string) {
	tmpl, ok := diagnosticTemplates[id]
	if !ok {
		r.AddError(CodeProcessing, string(id), expression...)
		return
	}

	r.AddIssue(Issue{
		Severity:      tmpl.Severity,
		Code:          tmpl.Code,
		Diagnostics:   formatTemplate(tmpl.Template, params),
		Expression:    expression,
		MessageID:     string(id),
		ConstraintKey: tmpl.ConstraintKey,
	})
}

// AddErrorWithID adds an error using a diagnostic template.
func (r *Result) AddErrorWithID(id DiagnosticID, params map[string]any, expression ...string) {
	r.addWithSeverity(SeverityError, id, params, expression)
}

// AddWarningWithID adds a warning using a diagnostic template.
func (r *Result) AddWarningWithID(id DiagnosticID, params map[string]any, expression ...string) {
	r.addWithSeverity(SeverityWarning, id, params, expression)
}

func (r *Result) addWithSeverity(sev Severity, id DiagnosticID, params map[string]any, expression []string) {
	tmpl, ok := diagnosticTemplates[id]
	if !ok {
		r.AddIssue(Issue{Severity: sev, Code: CodeProcessing, Diagnostics: string(id), Expression: expression})
		return
	}

	r.AddIssue(Issue{
		Severity:      sev,
		Code:          tmpl.Code,
		Diagnostics:   formatTemplate(tmpl.Template, params),
		Expression:    expression,
		MessageID:     string(id),
		ConstraintKey: tmpl.ConstraintKey,
	})
}
