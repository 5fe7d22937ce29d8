package crm

import (
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
var (
	ErrMissingResource      = errors.New("query resource is required")
	ErrMissingOperation     = errors.New("query operation is required")
	ErrUnsupportedResource  = errors.New("resource is not supported")
	ErrUnsupportedOperation = errors.New("operation is not supported")
	ErrCredentialRequired   = errors.New("credential must not be empty")
	ErrCredentialNotSet     = errors.New("no credential configured")
	ErrConfigRequired       = errors.New("config is required")
	ErrEndpointRequired     = errors.New("API endpoint is required")
	ErrQueryRequired        = errors.New("query is required")
	ErrRecordNotFound       = errors.New("record not found")
)

// VendorError represents a logical failure reported inside the vendor
// payload. The vendor may return it under any transport status, including 200.
type VendorError struct {
	Code    int    `json:"code"    yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *VendorError) Error() string {
	return fmt.Sprintf("vendor error %d: %s", e.Code, e.Message)
}

// ParseError represents a success payload that matched none of the known
// vendor shapes. It is a defect to investigate, never retried automatically.
type ParseError struct {
	Operation string
	Reason    string
	Err       error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing %s response: %s: %v", e.Operation, e.Reason, e.Err)
	}

	return fmt.Sprintf("parsing %s response: %s", e.Operation, e.Reason)
}

// Unwrap exposes the underlying decode error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// StallError is raised when a paginated run cannot guarantee forward
// progress: the vendor keeps returning a full window for the same start index.
type StallError struct {
	StartIndex int
	PageSize   int
}

// Error implements the error interface.
func (e *StallError) Error() string {
	return fmt.Sprintf("pagination stalled at index %d (window size %d)", e.StartIndex, e.PageSize)
}

// IsVendorError checks whether the error chain contains a vendor-side failure.
func IsVendorError(err error) bool {
	vendorErr := &VendorError{}

	return errors.As(err, &vendorErr)
}

// VendorCode returns the vendor error code from the chain, or 0.
func VendorCode(err error) int {
	vendorErr := &VendorError{}
	if errors.As(err, &vendorErr) {
		return vendorErr.Code
	}

	return 0
}

// IsParseError checks whether the error chain contains a shape mismatch.
func IsParseError(err error) bool {
	parseErr := &ParseError{}

	return errors.As(err, &parseErr)
}

// IsStall checks whether the error chain contains a pagination stall.
func IsStall(err error) bool {
	stallErr := &StallError{}

	return errors.As(err, &stallErr)
}

// IsValidation checks whether the error is one of the pre-dispatch
// validation failures. Validation errors are always recoverable by fixing
// the query before re-executing it.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingResource) ||
		errors.Is(err, ErrMissingOperation) ||
		errors.Is(err, ErrUnsupportedResource) ||
		errors.Is(err, ErrUnsupportedOperation)
}
