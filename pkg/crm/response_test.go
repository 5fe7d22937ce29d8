package crm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centerline-io/crmapi/pkg/crm"
)

func TestResponse_Predicates(t *testing.T) {
	t.Parallel()

	query := findLeadsQuery()

	single := crm.NewSingleResponse(query, crm.Record{"id": "1"}, nil)
	assert.False(t, single.HasMultipleRecords())
	assert.False(t, single.IsEmpty())
	assert.True(t, single.Normalized())

	many := crm.NewListResponse(query, []crm.Record{{"id": "1"}, {"id": "2"}}, nil)
	assert.True(t, many.HasMultipleRecords())
	assert.False(t, many.IsEmpty())

	empty := crm.NewEmptyResponse(query, nil)
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.HasMultipleRecords())

	raw := crm.NewRawResponse(query, []byte("<response/>"))
	assert.False(t, raw.Normalized())
	assert.False(t, raw.IsEmpty())
	assert.False(t, raw.HasMultipleRecords())
}

func TestResponse_ConvertibleToEntity(t *testing.T) {
	t.Parallel()

	leads := crm.NewSingleResponse(findLeadsQuery(), crm.Record{"id": "1"}, nil)
	assert.True(t, leads.ConvertibleToEntity())

	// Notes carry no entity mapping in the catalog.
	notesQuery := crm.NewQuery().SetResource(crm.ResourceNotes).SetOperation(crm.OpList)
	notes := crm.NewListResponse(notesQuery, []crm.Record{{"id": "1"}}, nil)
	assert.False(t, notes.ConvertibleToEntity())

	// No records, nothing to convert.
	empty := crm.NewEmptyResponse(findLeadsQuery(), nil)
	assert.False(t, empty.ConvertibleToEntity())
}

func TestResponse_RecordAccessors(t *testing.T) {
	t.Parallel()

	many := crm.NewListResponse(findLeadsQuery(), []crm.Record{{"id": "a"}, {"id": "b"}}, nil)

	first, ok := many.Record()
	require.True(t, ok)
	assert.Equal(t, "a", first["id"])

	empty := crm.NewEmptyResponse(findLeadsQuery(), nil)
	_, ok = empty.Record()
	assert.False(t, ok)
}

func TestResourceCatalog(t *testing.T) {
	t.Parallel()

	info, ok := crm.LookupResource(crm.ResourceLeads)
	require.True(t, ok)
	assert.True(t, info.HasEntity)
	assert.Contains(t, info.Operations, crm.OpFind)

	_, ok = crm.LookupResource("Imaginary")
	assert.False(t, ok)

	verb, ok := crm.VerbForOperation(crm.OpInsert)
	require.True(t, ok)
	assert.Equal(t, "POST", verb)

	verb, ok = crm.VerbForOperation(crm.OpDelete)
	require.True(t, ok)
	assert.Equal(t, "DELETE", verb)

	_, ok = crm.VerbForOperation("teleport")
	assert.False(t, ok)
}
