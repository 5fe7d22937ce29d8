package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centerline-io/crmapi/internal/client"
	"github.com/centerline-io/crmapi/pkg/crm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	engine, err := client.New(&crm.Config{
		Endpoint:   server.URL,
		Credential: "SECRET123",
	})
	require.NoError(t, err)

	return engine
}

func TestNew_RequiresEndpoint(t *testing.T) {
	t.Parallel()

	_, err := client.New(&crm.Config{})
	assert.ErrorIs(t, err, crm.ErrEndpointRequired)
}

func TestExecute_NilQuery(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := engine.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, crm.ErrQueryRequired)
}

func TestExecute_ValidationFailsBeforeAnyNetworkCall(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	tests := []struct {
		name    string
		query   *crm.Query
		wantErr error
	}{
		{
			name:    "missing operation",
			query:   crm.NewQuery().SetResource(crm.ResourceLeads),
			wantErr: crm.ErrMissingOperation,
		},
		{
			name:    "unknown resource",
			query:   crm.NewQuery().SetResource("Invoices").SetOperation(crm.OpList),
			wantErr: crm.ErrUnsupportedResource,
		},
		{
			name:    "operation not in catalog for resource",
			query:   crm.NewQuery().SetResource(crm.ResourceNotes).SetOperation(crm.OpSearch),
			wantErr: crm.ErrUnsupportedOperation,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := engine.Execute(context.Background(), tt.query)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, int64(0), engine.RequestCount())
}

func TestExecute_SingleRecord(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/Leads/find", r.URL.Path)
		assert.Equal(t, "123", r.URL.Query().Get("id"))
		assert.Equal(t, "SECRET123", r.URL.Query().Get(crm.CredentialParam))

		_, _ = w.Write([]byte(`{"data": {"record": {"id": "123", "name": "Acme"}}}`))
	})

	query := crm.NewQuery().
		SetResource(crm.ResourceLeads).
		SetOperation(crm.OpFind).
		SetParam("id", "123")

	resp, err := engine.Execute(context.Background(), query)
	require.NoError(t, err)

	record, ok := resp.Record()
	require.True(t, ok)
	assert.Equal(t, "Acme", record["name"])
	assert.Equal(t, int64(1), engine.RequestCount())
}

func TestExecute_MutationUsesPost(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Leads/insert", r.URL.Path)

		_, _ = w.Write([]byte(`{"data": {"result": {"id": "9"}}}`))
	})

	query := crm.NewQuery().
		SetResource(crm.ResourceLeads).
		SetOperation(crm.OpInsert).
		SetParam("name", "Acme")

	resp, err := engine.Execute(context.Background(), query)
	require.NoError(t, err)

	record, ok := resp.Record()
	require.True(t, ok)
	assert.Equal(t, "9", record["id"])
}

func TestExecute_VendorErrorUnderOKStatus(t *testing.T) {
	t.Parallel()

	// The vendor reports failures in the envelope regardless of HTTP status.
	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": {"code": 4834, "message": "invalid credential"}}`))
	})

	query := crm.NewQuery().SetResource(crm.ResourceLeads).SetOperation(crm.OpList)

	_, err := engine.Execute(context.Background(), query)
	require.Error(t, err)
	assert.True(t, crm.IsVendorError(err))
	assert.Equal(t, 4834, crm.VendorCode(err))
}

func TestExecute_NoDataIsEmptySuccess(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"nodata": {"code": 4422, "message": "no records"}}`))
	})

	query := crm.NewQuery().SetResource(crm.ResourceLeads).SetOperation(crm.OpList)

	resp, err := engine.Execute(context.Background(), query)
	require.NoError(t, err)
	assert.True(t, resp.IsEmpty())
}

func TestExecute_UnparseableErrorStatus(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	query := crm.NewQuery().SetResource(crm.ResourceLeads).SetOperation(crm.OpList)

	_, err := engine.Execute(context.Background(), query)
	require.Error(t, err)
	assert.True(t, crm.IsParseError(err))
	assert.Contains(t, err.Error(), "unexpected HTTP status 502")
}

func TestExecute_XMLFormatReturnsRawBody(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "xml", r.URL.Query().Get(crm.FormatParam))
		_, _ = w.Write([]byte(`<response><record id="1"/></response>`))
	})

	query := crm.NewQuery().
		SetResource(crm.ResourceLeads).
		SetOperation(crm.OpList).
		SetFormat(crm.FormatXML)

	resp, err := engine.Execute(context.Background(), query)
	require.NoError(t, err)
	assert.False(t, resp.Normalized())
	assert.Contains(t, string(resp.Raw()), "<record")
}

func TestExecute_RequestCountAccumulates(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"records": [{"id": "1"}]}}`))
	})

	query := crm.NewQuery().SetResource(crm.ResourceLeads).SetOperation(crm.OpList)

	for i := 0; i < 4; i++ {
		_, err := engine.Execute(context.Background(), query)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(4), engine.RequestCount())

	engine.ResetRequestCount()
	assert.Equal(t, int64(0), engine.RequestCount())
}

// pagingHandler serves a dataset window by window from the index parameters.
func pagingHandler(t *testing.T, total int) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		from, err := strconv.Atoi(r.URL.Query().Get(crm.FromIndexParam))
		if !assert.NoError(t, err) {
			return
		}

		to, err := strconv.Atoi(r.URL.Query().Get(crm.ToIndexParam))
		if !assert.NoError(t, err) {
			return
		}

		var records []crm.Record
		for i := from; i <= to && i <= total; i++ {
			records = append(records, crm.Record{"id": strconv.Itoa(i)})
		}

		if len(records) == 0 {
			_, _ = fmt.Fprint(w, `{"nodata": {"code": 4422, "message": "no records"}}`)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"records": records},
		})
	}
}

func TestExecute_PaginatedAggregatesAllWindows(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, pagingHandler(t, 23))

	query := crm.NewQuery().
		SetResource(crm.ResourceLeads).
		SetOperation(crm.OpList).
		SetWindow(crm.MinStartIndex, 10).
		MarkPaginated(true)

	resp, err := engine.Execute(context.Background(), query)
	require.NoError(t, err)

	require.Equal(t, 23, resp.Count())
	assert.Equal(t, "1", resp.Records()[0]["id"])
	assert.Equal(t, "23", resp.Records()[22]["id"])

	// Two full windows plus the short third one.
	assert.Equal(t, int64(3), engine.RequestCount())
}

func TestResourceClient_FindByID(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Leads/find", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": {"record": {"id": "123", "name": "Acme", "company": "Acme Corp"}}}`))
	})

	lead, err := engine.Leads().FindByID(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "123", lead.ID)
	assert.Equal(t, "Acme Corp", lead.Company)
}

func TestResourceClient_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"nodata": {"code": 4422, "message": "no records"}}`))
	})

	_, err := engine.Leads().FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, crm.ErrRecordNotFound)
}

func TestResourceClient_ListAllPages(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, pagingHandler(t, 12))

	contacts, err := engine.Contacts().List(context.Background(), &crm.ListOptions{
		AllPages: true,
		PageSize: 5,
	})
	require.NoError(t, err)
	require.Len(t, contacts, 12)
	assert.Equal(t, "12", contacts[11].ID)
}

func TestResourceClient_Search(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Accounts/search", r.URL.Path)
		assert.Equal(t, "software", r.URL.Query().Get("industry"))
		_, _ = w.Write([]byte(`{"data": {"records": [{"id": "a-1", "industry": "software"}]}}`))
	})

	accounts, err := engine.Accounts().Search(context.Background(), map[string]string{"industry": "software"})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "software", accounts[0].Industry)
}

func TestResourceClient_Delete(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/Potentials/delete", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": {"result": {"id": "p-1", "deleted": "true"}}}`))
	})

	err := engine.Potentials().Delete(context.Background(), "p-1")
	require.NoError(t, err)
}

func TestSetCredential_RejectsEmpty(t *testing.T) {
	t.Parallel()

	engine := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	assert.ErrorIs(t, engine.SetCredential(""), crm.ErrCredentialRequired)
	require.NoError(t, engine.SetCredential("SECRET456"))
}
