package crm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centerline-io/crmapi/pkg/crm"
)

func TestDecodeRecord(t *testing.T) {
	t.Parallel()

	record := crm.Record{
		"id":      "123",
		"name":    "Acme",
		"company": "Acme Corp",
		"email":   "sales@acme.example",
	}

	var lead crm.Lead

	require.NoError(t, crm.DecodeRecord(record, &lead))
	assert.Equal(t, "123", lead.ID)
	assert.Equal(t, "Acme", lead.Name)
	assert.Equal(t, "Acme Corp", lead.Company)
	assert.Equal(t, "sales@acme.example", lead.Email)
	assert.Empty(t, lead.Phone)
}

func TestToEntities(t *testing.T) {
	t.Parallel()

	query := crm.NewQuery().SetResource(crm.ResourceContacts).SetOperation(crm.OpList)
	resp := crm.NewListResponse(query, []crm.Record{
		{"id": "1", "name": "Ada", "account_id": "a-1"},
		{"id": "2", "name": "Grace", "account_id": "a-2"},
	}, nil)

	contacts, err := crm.ToEntities[crm.Contact](resp)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Ada", contacts[0].Name)
	assert.Equal(t, "a-2", contacts[1].AccountID)
}

func TestToEntities_NonEntityResource(t *testing.T) {
	t.Parallel()

	query := crm.NewQuery().SetResource(crm.ResourceNotes).SetOperation(crm.OpList)
	resp := crm.NewListResponse(query, []crm.Record{{"id": "1"}}, nil)

	notes, err := crm.ToEntities[crm.Lead](resp)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestToEntities_BadFieldType(t *testing.T) {
	t.Parallel()

	query := crm.NewQuery().SetResource(crm.ResourceLeads).SetOperation(crm.OpList)
	resp := crm.NewListResponse(query, []crm.Record{
		{"id": "1"},
		{"id": crm.Record{"nested": true}},
	}, nil)

	_, err := crm.ToEntities[crm.Lead](resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "converting record 1")
}
