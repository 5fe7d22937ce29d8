package crm

import (
	"context"
	"time"
)

// Client is the public surface of the CRM API client.
type Client interface {
	// Execute runs one query through the pipeline: validation, catalog
	// checks, dispatch (or pagination), normalization.
	Execute(ctx context.Context, query *Query) (*Response, error)

	// Resource convenience clients. Each is a thin factory pre-filling the
	// query's resource and operation names.
	Leads() LeadsClient
	Contacts() ContactsClient
	Accounts() AccountsClient
	Potentials() PotentialsClient

	// SetCredential replaces the access credential. Empty values are rejected.
	SetCredential(value string) error

	// RequestCount returns the number of completed network round trips. A
	// paginated run counts once per page.
	RequestCount() int64
	// ResetRequestCount resets the counter to zero.
	ResetRequestCount()

	// Close releases held connections (the optional event publisher).
	Close() error
}

// ListOptions tunes list operations on resource clients.
type ListOptions struct {
	// AllPages aggregates every index window instead of fetching one.
	AllPages   bool
	StartIndex int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// ResourceClient is the operation set every entity-mapped resource exposes.
type ResourceClient[T any] interface {
	FindByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, opts *ListOptions) ([]T, error)
	Search(ctx context.Context, criteria map[string]string) ([]T, error)
	Insert(ctx context.Context, record Record) (*Response, error)
	Update(ctx context.Context, id string, record Record) (*Response, error)
	Delete(ctx context.Context, id string) error
}

// Per-resource client types.
type (
	LeadsClient      = ResourceClient[Lead]
	ContactsClient   = ResourceClient[Contact]
	AccountsClient   = ResourceClient[Account]
	PotentialsClient = ResourceClient[Potential]
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a crm.Client.
type Config struct {
	// Endpoint: base URL for the vendor API (e.g. "https://crm.example.com/api").
	// crmclient.New normalizes this value by trimming a trailing slash and
	// adding "https://" if no scheme is present.
	Endpoint string

	// Credential: the long-lived access credential. It is held outside of
	// queries and merged into request parameters only at dispatch.
	Credential string

	// Format: default response format for new queries. Defaults to FormatJSON.
	Format Format

	// PageSize: default pagination window size. Defaults to DefaultPageSize.
	PageSize int

	// HTTPTimeout: optional transport timeout. Most calls should rely on
	// context deadlines instead.
	HTTPTimeout time.Duration
	// RetryMax: maximum transport-level retries for transient failures. The
	// default is 0: the pipeline never retries unless the caller opts in.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the backoff when RetryMax > 0.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables verbose request/response logging when a Logger is set.
	Debug bool
	// Logger: optional structured logger used by the transport.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// EventsURL: optional NATS URL. When set, the client publishes one
	// mutation event per successful insert/update/delete.
	EventsURL string
	// EventsSubjectPrefix overrides the default subject prefix for
	// mutation events.
	EventsSubjectPrefix string
}
