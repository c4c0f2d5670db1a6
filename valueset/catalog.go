package valueset

import (
	"github.com/gofhir/codes"
)

// Tables returns the shared tables of this package as binders.
func Tables() []codes.Binder {
	return []codes.Binder{
		genderTable,
		publicationTable,
		narrativeTable,
		observationTable,
		actionRelationshipTable,
		comparatorTable,
		severityTable,
		bindingTable,
	}
}

// Catalog returns a new catalog holding every vocabulary of this package.
// Each call returns a fresh catalog, so callers may register their own
// vocabularies without affecting others.
func Catalog() *codes.Catalog {
	c := codes.NewCatalog()
	if err := c.Register(Tables()...); err != nil {
		panic("valueset: " + err.Error())
	}
	return c
}
