package crmclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centerline-io/crmapi/pkg/crm"
	"github.com/centerline-io/crmapi/pkg/crmclient"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := crmclient.New(nil)
	assert.ErrorIs(t, err, crm.ErrConfigRequired)

	_, err = crmclient.New(&crm.Config{})
	assert.ErrorIs(t, err, crm.ErrEndpointRequired)
}

func TestNew_EndToEnd(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Leads/find", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": {"record": {"id": "123", "name": "Acme"}}}`))
	}))
	defer server.Close()

	// A trailing slash on the endpoint is normalized away.
	client, err := crmclient.New(&crm.Config{
		Endpoint:   server.URL + "/",
		Credential: "SECRET123",
	})
	require.NoError(t, err)

	defer func() { _ = client.Close() }()

	lead, err := client.Leads().FindByID(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "Acme", lead.Name)
	assert.Equal(t, int64(1), client.RequestCount())
}
