package crm

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Vendor payload envelope. The vendor reports logical failure inside the
// body ("error"), a distinct "no matching records" marker ("nodata"), or the
// actual records nested under "data" at an operation-dependent key. Which of
// the three is present is independent of the transport status code.
type envelope struct {
	Error  *vendorStatus   `json:"error"`
	NoData *vendorStatus   `json:"nodata"`
	Data   json.RawMessage `json:"data"`
}

type vendorStatus struct {
	Code    json.Number `json:"code"`
	Message string      `json:"message"`
}

func (s *vendorStatus) intCode() int {
	code, err := s.Code.Int64()
	if err != nil {
		return 0
	}

	return int(code)
}

// Keys the vendor nests success records under, probed in order. "record"
// carries the singular shape of find-style operations, "records" the plural
// shape of list/search, "result" the echo of write operations.
var dataKeys = []string{"records", "record", "result"}

// Normalize converts raw response bytes into a Response, given the
// originating query. It resolves the vendor's structural polymorphism once:
// a vendor error fails with *VendorError, the no-data marker yields an empty
// Response, and success payloads are detected structurally (a JSON object is
// one record, an array is many) — a declared count field is never trusted.
// Anything else fails with *ParseError, never a silent empty result.
func Normalize(raw []byte, query *Query) (*Response, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &ParseError{Operation: query.Operation(), Reason: "empty response body"}
	}

	var env envelope

	err := json.Unmarshal(raw, &env)
	if err != nil {
		return nil, &ParseError{Operation: query.Operation(), Reason: "invalid JSON envelope", Err: err}
	}

	if env.Error != nil {
		return nil, &VendorError{Code: env.Error.intCode(), Message: env.Error.Message}
	}

	if env.NoData != nil {
		return NewEmptyResponse(query, raw), nil
	}

	if env.Data == nil {
		return nil, &ParseError{Operation: query.Operation(), Reason: "payload has no error, nodata or data section"}
	}

	return normalizeData(env.Data, raw, query)
}

func normalizeData(data json.RawMessage, raw []byte, query *Query) (*Response, error) {
	var sections map[string]json.RawMessage

	err := json.Unmarshal(data, &sections)
	if err != nil {
		return nil, &ParseError{Operation: query.Operation(), Reason: "data section is not an object", Err: err}
	}

	for _, key := range dataKeys {
		section, ok := sections[key]
		if !ok {
			continue
		}

		return normalizeSection(key, section, raw, query)
	}

	return nil, &ParseError{
		Operation: query.Operation(),
		Reason:    fmt.Sprintf("data section contains none of %v", dataKeys),
	}
}

func normalizeSection(key string, section json.RawMessage, raw []byte, query *Query) (*Response, error) {
	switch firstToken(section) {
	case '[':
		var records []Record

		err := json.Unmarshal(section, &records)
		if err != nil {
			return nil, &ParseError{
				Operation: query.Operation(),
				Reason:    fmt.Sprintf("%q array contains a non-record element", key),
				Err:       err,
			}
		}

		return NewListResponse(query, records, raw), nil
	case '{':
		var record Record

		err := json.Unmarshal(section, &record)
		if err != nil {
			return nil, &ParseError{
				Operation: query.Operation(),
				Reason:    fmt.Sprintf("%q object is not a record", key),
				Err:       err,
			}
		}

		return NewSingleResponse(query, record, raw), nil
	default:
		return nil, &ParseError{
			Operation: query.Operation(),
			Reason:    fmt.Sprintf("%q is neither a record nor a record list", key),
		}
	}
}

func firstToken(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}

	return trimmed[0]
}
