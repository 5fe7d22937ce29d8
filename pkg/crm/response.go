package crm

// Record is one normalized record: a flat mapping of vendor field names to
// values. Every downstream consumer sees this one shape regardless of how
// the vendor nested or typed the original payload.
type Record map[string]interface{}

// Response wraps normalized content plus the raw bytes it came from. It is
// created once per completed round trip (or once per aggregated pagination
// run) and is immutable afterwards.
type Response struct {
	query      *Query
	records    []Record
	singular   bool
	normalized bool
	raw        []byte
}

// NewSingleResponse wraps one record (the vendor sent the singular shape).
func NewSingleResponse(query *Query, record Record, raw []byte) *Response {
	return &Response{
		query:      query,
		records:    []Record{record},
		singular:   true,
		normalized: true,
		raw:        raw,
	}
}

// NewListResponse wraps a list of records in vendor order.
func NewListResponse(query *Query, records []Record, raw []byte) *Response {
	return &Response{
		query:      query,
		records:    records,
		normalized: true,
		raw:        raw,
	}
}

// NewEmptyResponse wraps the vendor's "no matching records" outcome. It is a
// success, not an error.
func NewEmptyResponse(query *Query, raw []byte) *Response {
	return &Response{
		query:      query,
		records:    []Record{},
		normalized: true,
		raw:        raw,
	}
}

// NewRawResponse wraps an unnormalized payload (alternate format). Only the
// raw bytes are populated.
func NewRawResponse(query *Query, raw []byte) *Response {
	return &Response{
		query: query,
		raw:   raw,
	}
}

// Query returns the originating query.
func (r *Response) Query() *Query {
	return r.query
}

// Raw returns the raw response bytes, retained for diagnostics.
func (r *Response) Raw() []byte {
	return r.raw
}

// Normalized reports whether the payload was resolved into records.
func (r *Response) Normalized() bool {
	return r.normalized
}

// IsEmpty reports whether the vendor signalled "no matching records".
func (r *Response) IsEmpty() bool {
	return r.normalized && len(r.records) == 0
}

// HasMultipleRecords reports whether the vendor sent the plural shape.
func (r *Response) HasMultipleRecords() bool {
	return r.normalized && !r.singular && len(r.records) > 0
}

// Count returns the number of normalized records.
func (r *Response) Count() int {
	return len(r.records)
}

// Records returns the normalized records in vendor order. A singular payload
// yields a one-element list.
func (r *Response) Records() []Record {
	return r.records
}

// Record returns the first record, if any.
func (r *Response) Record() (Record, bool) {
	if len(r.records) == 0 {
		return nil, false
	}

	return r.records[0], true
}

// Content returns the normalized content without further transformation:
// the single record mapping for a singular payload, otherwise the record
// list. This is the stable shape the entity-conversion layer consumes.
func (r *Response) Content() interface{} {
	if r.singular && len(r.records) == 1 {
		return r.records[0]
	}

	return r.records
}

// ConvertibleToEntity reports whether the content represents at least one
// record of a resource that has a typed entity mapping in the catalog.
func (r *Response) ConvertibleToEntity() bool {
	if len(r.records) == 0 || r.query == nil {
		return false
	}

	return ResourceHasEntity(r.query.Resource())
}
