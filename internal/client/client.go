// Package client implements the execution engine behind crm.Client: query
// validation, catalog checks, verb resolution, dispatch through the
// transport, normalization and pagination.
package client

import (
	"context"
	"fmt"
	"slices"

	"github.com/centerline-io/crmapi/internal/http"
	"github.com/centerline-io/crmapi/pkg/crm"
)

// Client implements the crm.Client interface.
type Client struct {
	httpClient *http.Client
	credential *crm.CredentialHolder
	logger     crm.Logger
	events     *eventPublisher
	format     crm.Format
	pageSize   int

	leads      crm.LeadsClient
	contacts   crm.ContactsClient
	accounts   crm.AccountsClient
	potentials crm.PotentialsClient
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *crm.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	return httpOpts
}

// New creates a new engine from a validated config.
func New(config *crm.Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, crm.ErrEndpointRequired
	}

	credential := crm.NewCredentialHolder()

	if config.Credential != "" {
		err := credential.Set(config.Credential)
		if err != nil {
			return nil, err
		}
	}

	httpClient := http.NewClient(config.Endpoint, credential, createHTTPClientOptions(config)...)

	format := config.Format
	if format == "" {
		format = crm.FormatJSON
	}

	pageSize := config.PageSize
	if pageSize < 1 {
		pageSize = crm.DefaultPageSize
	}

	client := &Client{
		httpClient: httpClient,
		credential: credential,
		logger:     config.Logger,
		format:     format,
		pageSize:   pageSize,
	}

	if config.EventsURL != "" {
		events, err := newEventPublisher(config.EventsURL, config.EventsSubjectPrefix, config.Logger)
		if err != nil {
			return nil, fmt.Errorf("connecting event publisher: %w", err)
		}

		client.events = events
	}

	client.initializeResourceClients()

	return client, nil
}

// initializeResourceClients initializes the per-resource factories.
func (c *Client) initializeResourceClients() {
	c.leads = newResourceClient[crm.Lead](c, crm.ResourceLeads)
	c.contacts = newResourceClient[crm.Contact](c, crm.ResourceContacts)
	c.accounts = newResourceClient[crm.Account](c, crm.ResourceAccounts)
	c.potentials = newResourceClient[crm.Potential](c, crm.ResourcePotentials)
}

// Execute implements crm.Client.Execute. Paginated queries are delegated
// entirely to the paginator; everything else is a single dispatch.
func (c *Client) Execute(ctx context.Context, query *crm.Query) (*crm.Response, error) {
	if query == nil {
		return nil, crm.ErrQueryRequired
	}

	if query.Paginated() {
		return crm.FetchAllWindows(ctx, c, query, nil)
	}

	return c.ExecuteSingle(ctx, query)
}

// ExecuteSingle implements crm.SingleExecutor: validate, resolve, dispatch,
// normalize. The credential is injected by the transport, after validation
// has proven the call will actually execute.
func (c *Client) ExecuteSingle(ctx context.Context, query *crm.Query) (*crm.Response, error) {
	err := query.Validate()
	if err != nil {
		return nil, err
	}

	info, ok := crm.LookupResource(query.Resource())
	if !ok {
		return nil, fmt.Errorf("%q: %w", query.Resource(), crm.ErrUnsupportedResource)
	}

	if !slices.Contains(info.Operations, query.Operation()) {
		return nil, fmt.Errorf("%q on %q: %w", query.Operation(), query.Resource(), crm.ErrUnsupportedOperation)
	}

	verb, ok := crm.VerbForOperation(query.Operation())
	if !ok {
		return nil, fmt.Errorf("%q: %w", query.Operation(), crm.ErrUnsupportedOperation)
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: verb,
		Path:   query.RequestPath(),
		Query:  query.Values(),
	})
	if err != nil {
		return nil, err
	}

	if query.Format() != crm.FormatJSON {
		return crm.NewRawResponse(query, resp.Body), nil
	}

	normalized, err := crm.Normalize(resp.Body, query)
	if err != nil {
		if crm.IsParseError(err) && resp.StatusCode >= 400 {
			return nil, fmt.Errorf("unexpected HTTP status %d: %w", resp.StatusCode, err)
		}

		return nil, err
	}

	c.publishMutation(query, normalized)

	return normalized, nil
}

// Leads implements crm.Client.Leads.
func (c *Client) Leads() crm.LeadsClient {
	return c.leads
}

// Contacts implements crm.Client.Contacts.
func (c *Client) Contacts() crm.ContactsClient {
	return c.contacts
}

// Accounts implements crm.Client.Accounts.
func (c *Client) Accounts() crm.AccountsClient {
	return c.accounts
}

// Potentials implements crm.Client.Potentials.
func (c *Client) Potentials() crm.PotentialsClient {
	return c.potentials
}

// SetCredential implements crm.Client.SetCredential.
func (c *Client) SetCredential(value string) error {
	return c.credential.Set(value)
}

// RequestCount implements crm.Client.RequestCount.
func (c *Client) RequestCount() int64 {
	return c.httpClient.Counter().Count()
}

// ResetRequestCount implements crm.Client.ResetRequestCount.
func (c *Client) ResetRequestCount() {
	c.httpClient.Counter().Reset()
}

// Close releases the event publisher connection, if any.
func (c *Client) Close() error {
	if c.events != nil {
		c.events.Close()
	}

	return nil
}
