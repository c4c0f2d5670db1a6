// Package valueset defines FHIR R4 vocabularies as Go enums.
//
// Each vocabulary is an int type with a data table, a shared Table of
// pre-built codes and a Code method:
//
//	g := valueset.GenderFemale.Code()  // *codes.Code[valueset.AdministrativeGender]
//	c, err := valueset.GenderOf("male") // strict parse of a wire string
//
// Catalog returns every vocabulary of this package keyed by name and
// canonical URL.
package valueset
