package valueset

import (
	"github.com/gofhir/codes"
	"github.com/gofhir/codes/pkg/vocabulary"
)

// ObservationStatus is the status of an observation result.
type ObservationStatus int

const (
	ObservationRegistered ObservationStatus = iota
	ObservationPreliminary
	ObservationFinal
	ObservationAmended
	ObservationCorrected
	ObservationCancelled
	ObservationEnteredInError
	ObservationUnknown
)

// ObservationStatuses is the required binding of Observation.status.
var ObservationStatuses = vocabulary.New("ObservationStatus",
	"http://hl7.org/fhir/ValueSet/observation-status",
	[]vocabulary.Entry[ObservationStatus]{
		{Member: ObservationRegistered, Wire: "registered", Display: "Registered",
			Definition: "The existence of the observation is registered, but there is no result yet available."},
		{Member: ObservationPreliminary, Wire: "preliminary", Display: "Preliminary",
			Definition: "This is an initial or interim observation: data may be incomplete or unverified."},
		{Member: ObservationFinal, Wire: "final", Display: "Final",
			Definition: "The observation is complete and there are no further actions needed."},
		{Member: ObservationAmended, Wire: "amended", Display: "Amended",
			Definition: "Subsequent to being Final, the observation has been modified subsequent."},
		{Member: ObservationCorrected, Wire: "corrected", Display: "Corrected",
			Definition: "Subsequent to being Final, the observation has been modified to correct an error in the test result."},
		{Member: ObservationCancelled, Wire: "cancelled", Display: "Cancelled",
			Definition: "The observation is unavailable because the measurement was not started or not completed."},
		{Member: ObservationEnteredInError, Wire: "entered-in-error", Display: "Entered in Error",
			Definition: "The observation has been withdrawn following previous final release."},
		{Member: ObservationUnknown, Wire: "unknown", Display: "Unknown",
			Definition: "The authoring/source system does not know which of the status values currently applies for this observation."},
	},
	vocabulary.WithSystem("http://hl7.org/fhir/observation-status"))

var observationTable = codes.NewTable(ObservationStatuses)

func (s ObservationStatus) String() string { return ObservationStatuses.ToWireString(s) }

// Code returns the shared code for s.
func (s ObservationStatus) Code() *codes.Code[ObservationStatus] { return observationTable.MustGet(s) }

// ObservationStatusOf parses a wire string.
func ObservationStatusOf(wire string) (*codes.Code[ObservationStatus], error) {
	return observationTable.Of(wire)
}

// ActionRelationshipType orders two actions of a plan relative to each other.
type ActionRelationshipType int

const (
	ActionBeforeStart ActionRelationshipType = iota
	ActionBefore
	ActionBeforeEnd
	ActionConcurrentWithStart
	ActionConcurrent
	ActionConcurrentWithEnd
	ActionAfterStart
	ActionAfter
	ActionAfterEnd
)

// ActionRelationshipTypes is the vocabulary of PlanDefinition.action.relatedAction.relationship.
var ActionRelationshipTypes = vocabulary.New("ActionRelationshipType",
	"http://hl7.org/fhir/ValueSet/action-relationship-type",
	[]vocabulary.Entry[ActionRelationshipType]{
		{Member: ActionBeforeStart, Wire: "before-start", Display: "Before Start",
			Definition: "The action must be performed before the start of the related action."},
		{Member: ActionBefore, Wire: "before", Display: "Before",
			Definition: "The action must be performed before the related action."},
		{Member: ActionBeforeEnd, Wire: "before-end", Display: "Before End",
			Definition: "The action must be performed before the end of the related action."},
		{Member: ActionConcurrentWithStart, Wire: "concurrent-with-start", Display: "Concurrent With Start",
			Definition: "The action must be performed concurrent with the start of the related action."},
		{Member: ActionConcurrent, Wire: "concurrent", Display: "Concurrent",
			Definition: "The action must be performed concurrent with the related action."},
		{Member: ActionConcurrentWithEnd, Wire: "concurrent-with-end", Display: "Concurrent With End",
			Definition: "The action must be performed concurrent with the end of the related action."},
		{Member: ActionAfterStart, Wire: "after-start", Display: "After Start",
			Definition: "The action must be performed after the start of the related action."},
		{Member: ActionAfter, Wire: "after", Display: "After",
			Definition: "The action must be performed after the related action."},
		{Member: ActionAfterEnd, Wire: "after-end", Display: "After End",
			Definition: "The action must be performed after the end of the related action."},
	},
	vocabulary.WithSystem("http://hl7.org/fhir/action-relationship-type"))

var actionRelationshipTable = codes.NewTable(ActionRelationshipTypes)

func (r ActionRelationshipType) String() string { return ActionRelationshipTypes.ToWireString(r) }

// Code returns the shared code for r.
func (r ActionRelationshipType) Code() *codes.Code[ActionRelationshipType] {
	return actionRelationshipTable.MustGet(r)
}

// ActionRelationshipTypeOf parses a wire string.
func ActionRelationshipTypeOf(wire string) (*codes.Code[ActionRelationshipType], error) {
	return actionRelationshipTable.Of(wire)
}

// QuantityComparator says how a quantity value should be understood.
type QuantityComparator int

const (
	ComparatorLess QuantityComparator = iota
	ComparatorLessOrEqual
	ComparatorGreaterOrEqual
	ComparatorGreater
)

// QuantityComparators is the required binding of Quantity.comparator.
var QuantityComparators = vocabulary.New("QuantityComparator",
	"http://hl7.org/fhir/ValueSet/quantity-comparator",
	[]vocabulary.Entry[QuantityComparator]{
		{Member: ComparatorLess, Wire: "<", Display: "Less than",
			Definition: "The actual value is less than the given value."},
		{Member: ComparatorLessOrEqual, Wire: "<=", Display: "Less or Equal to",
			Definition: "The actual value is less than or equal to the given value."},
		{Member: ComparatorGreaterOrEqual, Wire: ">=", Display: "Greater or Equal to",
			Definition: "The actual value is greater than or equal to the given value."},
		{Member: ComparatorGreater, Wire: ">", Display: "Greater than",
			Definition: "The actual value is greater than the given value."},
	},
	vocabulary.WithSystem("http://hl7.org/fhir/quantity-comparator"))

var comparatorTable = codes.NewTable(QuantityComparators)

func (c QuantityComparator) String() string { return QuantityComparators.ToWireString(c) }

// Code returns the shared code for c.
func (c QuantityComparator) Code() *codes.Code[QuantityComparator] { return comparatorTable.MustGet(c) }

// QuantityComparatorOf parses a wire string.
func QuantityComparatorOf(wire string) (*codes.Code[QuantityComparator], error) {
	return comparatorTable.Of(wire)
}
