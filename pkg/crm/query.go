package crm

import (
	"net/url"
)

// Format selects the wire format the vendor uses for response payloads.
type Format string

// Supported response formats.
const (
	// FormatJSON is the structured format the normalizer understands.
	FormatJSON Format = "json"
	// FormatXML is the vendor's alternate format. Responses are returned
	// raw; no normalization is attempted.
	FormatXML Format = "xml"
)

// Pagination window defaults.
const (
	// MinStartIndex is the vendor's first record index.
	MinStartIndex = 1
	// DefaultPageSize is the vendor's maximum window size per request.
	DefaultPageSize = 200
)

// Reserved request parameter names.
const (
	// CredentialParam is the request parameter carrying the credential. It
	// is appended by the transport, always last, never stored on a Query.
	CredentialParam = "credential"
	// FromIndexParam and ToIndexParam carry the pagination window.
	FromIndexParam = "fromIndex"
	ToIndexParam   = "toIndex"
	// FormatParam selects the response format.
	FormatParam = "format"
)

// Query describes one API call: resource, operation, parameters, response
// format and pagination flag. Setters are fluent and chainable; once the
// query has been executed it should not be reused for a second distinct
// logical request (the paginator clones and advances internally).
type Query struct {
	resource   string
	operation  string
	params     map[string]string
	format     Format
	paginated  bool
	startIndex int
	pageSize   int
}

// NewQuery creates an empty query with JSON format and default window state.
func NewQuery() *Query {
	return &Query{
		params:     make(map[string]string),
		format:     FormatJSON,
		startIndex: MinStartIndex,
		pageSize:   DefaultPageSize,
	}
}

// SetResource sets the resource name.
func (q *Query) SetResource(name string) *Query {
	q.resource = name

	return q
}

// SetOperation sets the operation name.
func (q *Query) SetOperation(name string) *Query {
	q.operation = name

	return q
}

// SetParam merges one parameter. A later call overrides an earlier value for
// the same key.
func (q *Query) SetParam(key, value string) *Query {
	q.params[key] = value

	return q
}

// SetParams merges a parameter mapping, overriding existing keys.
func (q *Query) SetParams(params map[string]string) *Query {
	for key, value := range params {
		q.params[key] = value
	}

	return q
}

// SetFormat chooses the response parsing mode.
func (q *Query) SetFormat(format Format) *Query {
	q.format = format

	return q
}

// MarkPaginated toggles pagination. A paginated query is executed through
// the paginator instead of a single call.
func (q *Query) MarkPaginated(paginated bool) *Query {
	q.paginated = paginated

	return q
}

// SetWindow sets the pagination window start index and size. Values below
// the vendor minimums are clamped.
func (q *Query) SetWindow(startIndex, pageSize int) *Query {
	if startIndex < MinStartIndex {
		startIndex = MinStartIndex
	}

	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	q.startIndex = startIndex
	q.pageSize = pageSize

	return q
}

// Resource returns the resource name.
func (q *Query) Resource() string { return q.resource }

// Operation returns the operation name.
func (q *Query) Operation() string { return q.operation }

// Format returns the response format.
func (q *Query) Format() Format { return q.format }

// Paginated reports whether the query requests automatic pagination.
func (q *Query) Paginated() bool { return q.paginated }

// StartIndex returns the pagination window start.
func (q *Query) StartIndex() int { return q.startIndex }

// PageSize returns the pagination window size.
func (q *Query) PageSize() int { return q.pageSize }

// Param returns one parameter value.
func (q *Query) Param(key string) (string, bool) {
	value, ok := q.params[key]

	return value, ok
}

// Params returns a copy of the parameter mapping.
func (q *Query) Params() map[string]string {
	params := make(map[string]string, len(q.params))
	for key, value := range q.params {
		params[key] = value
	}

	return params
}

// Validate fails when either required field is unset. It is called before
// any network dispatch.
func (q *Query) Validate() error {
	if q.resource == "" {
		return ErrMissingResource
	}

	if q.operation == "" {
		return ErrMissingOperation
	}

	return nil
}

// Clone returns a deep copy. The paginator clones the template query per
// window so the caller's query is never mutated mid-run.
func (q *Query) Clone() *Query {
	clone := &Query{
		resource:   q.resource,
		operation:  q.operation,
		params:     make(map[string]string, len(q.params)),
		format:     q.format,
		paginated:  q.paginated,
		startIndex: q.startIndex,
		pageSize:   q.pageSize,
	}

	for key, value := range q.params {
		clone.params[key] = value
	}

	return clone
}

// RequestPath returns the endpoint path identifying the remote method.
func (q *Query) RequestPath() string {
	return "/" + q.resource + "/" + q.operation
}

// Values serializes the parameters and format deterministically (url.Values
// encodes in sorted key order). The credential is never part of this set;
// the transport appends it last so scrubbing can locate it reliably.
func (q *Query) Values() url.Values {
	values := url.Values{}

	for key, value := range q.params {
		values.Set(key, value)
	}

	values.Set(FormatParam, string(q.format))

	return values
}

// RequestTarget returns the path plus encoded query string, without the
// credential.
func (q *Query) RequestTarget() string {
	encoded := q.Values().Encode()
	if encoded == "" {
		return q.RequestPath()
	}

	return q.RequestPath() + "?" + encoded
}
