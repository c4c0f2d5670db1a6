// Package terminology turns FHIR terminology resources into vocabularies.
//
// R4 ValueSets (expansion or enumerated compose) and CodeSystems become
// string-keyed vocabularies whose members are their codes. Vocabularies
// can also be written by hand as YAML:
//
//	name: Color
//	url: http://example.org/ValueSet/color
//	system: http://example.org/CodeSystem/color
//	extensible: true
//	codes:
//	  - code: red
//	    display: Red
//
// Example usage:
//
//	l := terminology.NewLoader()
//	if _, err := l.LoadDirectory("package/"); err != nil {
//	    log.Fatal(err)
//	}
//	vocab, err := l.Vocabulary("http://hl7.org/fhir/ValueSet/observation-status")
//	c, err := codes.Of(vocab, "final")
package terminology
