package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. The pipeline itself never retries; these only apply when a
// caller opts in via Config.RetryMax.
const (
	// DefaultRetryWaitMin is the minimum wait between opt-in retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between opt-in retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Vendor error codes the client treats specially.
const (
	// VendorCodeNoData is the vendor's "no matching records" code.
	VendorCodeNoData = 4422

	// VendorCodeInvalidCredential is returned for a rejected credential.
	VendorCodeInvalidCredential = 4834
)

// DefaultUserAgent identifies the client on the wire.
const DefaultUserAgent = "crmapi-go"
