// Package codes provides bounded, extensible coded values for FHIR R4
// elements.
//
// A Code[V] is a FHIR code element whose value should come from the
// vocabulary of V. It carries the usual element parts (an optional id
// and an ordered list of extensions) and is immutable once built.
//
// # Quick Start
//
//	type Gender int
//
//	const (
//	    Male Gender = iota
//	    Female
//	)
//
//	var genders = vocabulary.New("AdministrativeGender",
//	    "http://hl7.org/fhir/ValueSet/administrative-gender",
//	    []vocabulary.Entry[Gender]{
//	        {Member: Male, Wire: "male", Display: "Male"},
//	        {Member: Female, Wire: "female", Display: "Female"},
//	    })
//
//	c, err := codes.Of(genders, "female")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(c.Value()) // female true
//
// # Builders
//
// Builder collects an id, extensions and a value, then validates them
// all at once:
//
//	c, err := codes.NewBuilder(genders,
//	    codes.WithPath("Patient.gender"),
//	).ID("g1").Member(Female).Extension(ext).Build()
//
// Setters never panic. Rejected arguments (ErrInvalidArgument,
// ErrNullReference) and structural problems (a *ValidationError listing
// every issue) come back together from Build.
//
// # Extensible Vocabularies
//
// Value sets grow. Decode keeps strings an extensible vocabulary does
// not know yet instead of failing, and Builder.RawValue does the same
// for any vocabulary. Code.Member reports whether the value resolves.
//
// # Tables and Catalogs
//
// Table pre-builds one shared Code per member. Catalog indexes tables by
// vocabulary name and canonical URL for callers that only know the
// vocabulary at run time; see package valueset for the built-in ones.
package codes
