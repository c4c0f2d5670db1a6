package valueset

import (
	"github.com/gofhir/codes"
	"github.com/gofhir/codes/pkg/vocabulary"
)

// IssueSeverity is the severity of an OperationOutcome issue.
type IssueSeverity int

const (
	SeverityFatal IssueSeverity = iota
	SeverityError
	SeverityWarning
	SeverityInformation
)

// IssueSeverities is the required binding of OperationOutcome.issue.severity.
var IssueSeverities = vocabulary.New("IssueSeverity",
	"http://hl7.org/fhir/ValueSet/issue-severity",
	[]vocabulary.Entry[IssueSeverity]{
		{Member: SeverityFatal, Wire: "fatal", Display: "Fatal",
			Definition: "The issue caused the action to fail and no further checking could be performed."},
		{Member: SeverityError, Wire: "error", Display: "Error",
			Definition: "The issue is sufficiently important to cause the action to fail."},
		{Member: SeverityWarning, Wire: "warning", Display: "Warning",
			Definition: "The issue is not important enough to cause the action to fail but may cause it to be performed suboptimally or in a way that is not as desired."},
		{Member: SeverityInformation, Wire: "information", Display: "Information",
			Definition: "The issue has no relation to the degree of success of the action."},
	},
	vocabulary.WithSystem("http://hl7.org/fhir/issue-severity"))

var severityTable = codes.NewTable(IssueSeverities)

func (s IssueSeverity) String() string { return IssueSeverities.ToWireString(s) }

// Code returns the shared code for s.
func (s IssueSeverity) Code() *codes.Code[IssueSeverity] { return severityTable.MustGet(s) }

// IssueSeverityOf parses a wire string.
func IssueSeverityOf(wire string) (*codes.Code[IssueSeverity], error) {
	return severityTable.Of(wire)
}

// BindingStrength says how strongly an element is tied to its value set.
type BindingStrength int

const (
	BindingRequired BindingStrength = iota
	BindingExtensible
	BindingPreferred
	BindingExample
)

// BindingStrengths is the vocabulary of ElementDefinition.binding.strength.
var BindingStrengths = vocabulary.New("BindingStrength",
	"http://hl7.org/fhir/ValueSet/binding-strength",
	[]vocabulary.Entry[BindingStrength]{
		{Member: BindingRequired, Wire: "required", Display: "Required",
			Definition: "To be conformant, the concept in this element SHALL be from the specified value set."},
		{Member: BindingExtensible, Wire: "extensible", Display: "Extensible",
			Definition: "To be conformant, the concept in this element SHALL be from the specified value set if any of the codes within the value set can apply to the concept being communicated."},
		{Member: BindingPreferred, Wire: "preferred", Display: "Preferred",
			Definition: "Instances are encouraged to draw from the specified codes for interoperability purposes but are not required to do so."},
		{Member: BindingExample, Wire: "example", Display: "Example",
			Definition: "Instances are not expected or even encouraged to draw from the specified value set."},
	},
	vocabulary.WithSystem("http://hl7.org/fhir/binding-strength"))

var bindingTable = codes.NewTable(BindingStrengths)

func (b BindingStrength) String() string { return BindingStrengths.ToWireString(b) }

// Code returns the shared code for b.
func (b BindingStrength) Code() *codes.Code[BindingStrength] { return bindingTable.MustGet(b) }

// BindingStrengthOf parses a wire string.
func BindingStrengthOf(wire string) (*codes.Code[BindingStrength], error) {
	return bindingTable.Of(wire)
}

// Open reports whether values outside the bound value set are allowed.
// Vocabularies loaded for a non-required binding should be extensible.
func (b BindingStrength) Open() bool {
	return b != BindingRequired
}
