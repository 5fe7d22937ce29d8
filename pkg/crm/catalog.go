package crm

import "net/http"

// Operation names understood by the vendor API.
const (
	OpFind   = "find"
	OpList   = "list"
	OpSearch = "search"
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Well-known resource names.
const (
	ResourceLeads      = "Leads"
	ResourceContacts   = "Contacts"
	ResourceAccounts   = "Accounts"
	ResourcePotentials = "Potentials"
	ResourceNotes      = "Notes"
)

// ResourceInfo describes one supported vendor resource.
type ResourceInfo struct {
	Name string
	// HasEntity reports whether records of this resource map to a typed
	// domain entity (see entities.go).
	HasEntity  bool
	Operations []string
}

var allOperations = []string{OpFind, OpList, OpSearch, OpInsert, OpUpdate, OpDelete}

// resourceTable is the static resource registry. It replaces runtime type
// discovery with a data-driven lookup.
var resourceTable = map[string]ResourceInfo{
	ResourceLeads:      {Name: ResourceLeads, HasEntity: true, Operations: allOperations},
	ResourceContacts:   {Name: ResourceContacts, HasEntity: true, Operations: allOperations},
	ResourceAccounts:   {Name: ResourceAccounts, HasEntity: true, Operations: allOperations},
	ResourcePotentials: {Name: ResourcePotentials, HasEntity: true, Operations: allOperations},
	ResourceNotes:      {Name: ResourceNotes, HasEntity: false, Operations: []string{OpList, OpInsert, OpDelete}},
}

// operationVerbs maps each operation to its fixed HTTP verb.
var operationVerbs = map[string]string{
	OpFind:   http.MethodGet,
	OpList:   http.MethodGet,
	OpSearch: http.MethodGet,
	OpInsert: http.MethodPost,
	OpUpdate: http.MethodPost,
	OpDelete: http.MethodDelete,
}

// LookupResource returns the registry entry for a resource name.
func LookupResource(name string) (ResourceInfo, bool) {
	info, ok := resourceTable[name]

	return info, ok
}

// ResourceHasEntity reports whether a resource has a typed entity mapping.
func ResourceHasEntity(name string) bool {
	info, ok := resourceTable[name]

	return ok && info.HasEntity
}

// VerbForOperation returns the HTTP verb for an operation name.
func VerbForOperation(operation string) (string, bool) {
	verb, ok := operationVerbs[operation]

	return verb, ok
}

// SupportedResources returns the names of all registered resources.
func SupportedResources() []string {
	names := make([]string, 0, len(resourceTable))
	for name := range resourceTable {
		names = append(names, name)
	}

	return names
}
