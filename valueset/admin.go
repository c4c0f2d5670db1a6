package valueset

import (
	"github.com/gofhir/codes"
	"github.com/gofhir/codes/pkg/vocabulary"
)

// AdministrativeGender is the gender of a person used for administrative purposes.
type AdministrativeGender int

const (
	GenderMale AdministrativeGender = iota
	GenderFemale
	GenderOther
	GenderUnknown
)

// Genders is the required binding of Patient.gender.
var Genders = vocabulary.New("AdministrativeGender",
	"http://hl7.org/fhir/ValueSet/administrative-gender",
	[]vocabulary.Entry[AdministrativeGender]{
		{Member: GenderMale, Wire: "male", Display: "Male", Definition: "Male."},
		{Member: GenderFemale, Wire: "female", Display: "Female", Definition: "Female."},
		{Member: GenderOther, Wire: "other", Display: "Other", Definition: "Other."},
		{Member: GenderUnknown, Wire: "unknown", Display: "Unknown", Definition: "Unknown."},
	},
	vocabulary.WithSystem("http://hl7.org/fhir/administrative-gender"))

var genderTable = codes.NewTable(Genders)

// String returns the wire string.
func (g AdministrativeGender) String() string { return Genders.ToWireString(g) }

// Code returns the shared code for g.
func (g AdministrativeGender) Code() *codes.Code[AdministrativeGender] { return genderTable.MustGet(g) }

// GenderOf parses a wire string.
func GenderOf(wire string) (*codes.Code[AdministrativeGender], error) { return genderTable.Of(wire) }

// PublicationStatus is the lifecycle status of a conformance resource.
type PublicationStatus int

const (
	PublicationDraft PublicationStatus = iota
	PublicationActive
	PublicationRetired
	PublicationUnknown
)

// PublicationStatuses is the status vocabulary of conformance resources.
var PublicationStatuses = vocabulary.New("PublicationStatus",
	"http://hl7.org/fhir/ValueSet/publication-status",
	[]vocabulary.Entry[PublicationStatus]{
		{Member: PublicationDraft, Wire: "draft", Display: "Draft",
			Definition: "This resource is still under development and is not yet considered to be ready for normal use."},
		{Member: PublicationActive, Wire: "active", Display: "Active",
			Definition: "This resource is ready for normal use."},
		{Member: PublicationRetired, Wire: "retired", Display: "Retired",
			Definition: "This resource has been withdrawn or superseded and should no longer be used."},
		{Member: PublicationUnknown, Wire: "unknown", Display: "Unknown",
			Definition: "The authoring system does not know which of the status values currently applies for this resource."},
	},
	vocabulary.WithSystem("http://hl7.org/fhir/publication-status"))

var publicationTable = codes.NewTable(PublicationStatuses)

func (s PublicationStatus) String() string { return PublicationStatuses.ToWireString(s) }

// Code returns the shared code for s.
func (s PublicationStatus) Code() *codes.Code[PublicationStatus] { return publicationTable.MustGet(s) }

// PublicationStatusOf parses a wire string.
func PublicationStatusOf(wire string) (*codes.Code[PublicationStatus], error) {
	return publicationTable.Of(wire)
}

// NarrativeStatus is the status of a resource narrative.
type NarrativeStatus int

const (
	NarrativeGenerated NarrativeStatus = iota
	NarrativeExtensions
	NarrativeAdditional
	NarrativeEmpty
)

// NarrativeStatuses is the vocabulary of Narrative.status.
var NarrativeStatuses = vocabulary.New("NarrativeStatus",
	"http://hl7.org/fhir/ValueSet/narrative-status",
	[]vocabulary.Entry[NarrativeStatus]{
		{Member: NarrativeGenerated, Wire: "generated", Display: "Generated",
			Definition: "The contents of the narrative are entirely generated from the core elements in the content."},
		{Member: NarrativeExtensions, Wire: "extensions", Display: "Extensions",
			Definition: "The contents of the narrative are entirely generated from the core elements in the content and some of the content is generated from extensions."},
		{Member: NarrativeAdditional, Wire: "additional", Display: "Additional",
			Definition: "The contents of the narrative may contain additional information not found in the structured data."},
		{Member: NarrativeEmpty, Wire: "empty", Display: "Empty",
			Definition: "The contents of the narrative are some equivalent of \"No human-readable text provided in this case\"."},
	},
	vocabulary.WithSystem("http://hl7.org/fhir/narrative-status"))

var narrativeTable = codes.NewTable(NarrativeStatuses)

func (s NarrativeStatus) String() string { return NarrativeStatuses.ToWireString(s) }

// Code returns the shared code for s.
func (s NarrativeStatus) Code() *codes.Code[NarrativeStatus] { return narrativeTable.MustGet(s) }

// NarrativeStatusOf parses a wire string.
func NarrativeStatusOf(wire string) (*codes.Code[NarrativeStatus], error) {
	return narrativeTable.Of(wire)
}
