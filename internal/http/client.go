// Package http implements the transport layer of the CRM client: a thin
// wrapper over retryablehttp that injects the credential at the last moment,
// counts completed round trips, and scrubs the credential from any transport
// error before it propagates.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/centerline-io/crmapi/internal/constants"
	"github.com/centerline-io/crmapi/pkg/crm"
)

// Request represents an HTTP request to the vendor API.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
}

// Response represents a raw vendor response. The body is returned for every
// status code; interpreting it is the normalizer's job.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Client is the HTTP transport.
type Client struct {
	baseURL    string
	credential *crm.CredentialHolder
	retry      *retryablehttp.Client
	hooks      *crm.HookChain
	counter    *crm.RequestCounter
	logger     crm.Logger
	debug      bool
	userAgent  string
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets a structured logger for request/response logging.
func WithLogger(logger crm.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables verbose request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables transport-level retries. Without it nothing
// retries: a failure surfaces immediately.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retry.RetryMax = retryMax

		if waitMin > 0 {
			c.retry.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.retry.RetryWaitMax = waitMax
		}
	}
}

// WithTimeout overrides the default transport timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.retry.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a transport for the given base URL. The credential
// holder may be nil for unauthenticated use (tests).
func NewClient(baseURL string, credential *crm.CredentialHolder, opts ...Option) *Client {
	retry := retryablehttp.NewClient()
	retry.RetryMax = 0
	retry.RetryWaitMin = constants.DefaultRetryWaitMin
	retry.RetryWaitMax = constants.DefaultRetryWaitMax
	retry.Logger = nil
	retry.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		credential: credential,
		retry:      retry,
		hooks:      crm.NewHookChain(),
		counter:    crm.NewRequestCounter(),
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.hooks.AddResponseHook(crm.CountingResponseHook(client.counter))

	if client.logger != nil {
		client.hooks.AddRequestHook(crm.LoggingRequestHook(client.logger))
		client.hooks.AddResponseHook(crm.LoggingResponseHook(client.logger))
	}

	return client
}

// Counter exposes the request counter.
func (c *Client) Counter() *crm.RequestCounter {
	return c.counter
}

// Do performs one round trip. The credential is appended to the query
// string last, after every other parameter, so error scrubbing can locate
// it by exact substring.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	info := &crm.RequestInfo{Method: req.Method, Path: req.Path}

	err := c.hooks.RunRequestHooks(ctx, info)
	if err != nil {
		return nil, err
	}

	target, cred, err := c.buildTarget(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.buildRequest(ctx, req, target)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.retry.Do(httpReq)
	if err != nil {
		scrubbed := ScrubCredential(err, cred)
		_ = c.hooks.RunResponseHooks(ctx, info, &crm.ResponseInfo{Err: scrubbed})

		return nil, fmt.Errorf("request failed: %w", scrubbed)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		scrubbed := ScrubCredential(err, cred)
		_ = c.hooks.RunResponseHooks(ctx, info, &crm.ResponseInfo{Err: scrubbed})

		return nil, fmt.Errorf("reading response body: %w", scrubbed)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	_ = c.hooks.RunResponseHooks(ctx, info, &crm.ResponseInfo{StatusCode: resp.StatusCode, Body: body})

	if c.debug && c.logger != nil {
		c.logger.Debug("response body", map[string]interface{}{
			"status": resp.StatusCode,
			"bytes":  len(body),
		})
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Query: query, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path, Query: query})
}

// buildTarget assembles the full URL and returns it with the live credential
// (empty when no holder is configured).
func (c *Client) buildTarget(req *Request) (string, string, error) {
	target := c.baseURL + req.Path

	rawQuery := ""
	if req.Query != nil {
		rawQuery = req.Query.Encode()
	}

	cred := ""

	if c.credential != nil && c.credential.IsSet() {
		value, err := c.credential.Get()
		if err != nil {
			return "", "", err
		}

		cred = value

		credPair := crm.CredentialParam + "=" + url.QueryEscape(cred)
		if rawQuery == "" {
			rawQuery = credPair
		} else {
			rawQuery += "&" + credPair
		}
	}

	if rawQuery != "" {
		target += "?" + rawQuery
	}

	return target, cred, nil
}

func (c *Client) buildRequest(ctx context.Context, req *Request, target string) (*retryablehttp.Request, error) {
	var rawBody interface{}

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		rawBody = encoded
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, rawBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	return httpReq, nil
}

// ScrubCredential removes the credential value from a transport error by
// exact substring replacement of "credential=<value>" (raw and URL-escaped
// forms). Errors without the substring pass through unchanged. A *url.Error
// is reconstructed so Op and the other diagnostic fields survive with only
// the URL and message masked.
func ScrubCredential(err error, credential string) error {
	if err == nil || credential == "" {
		return err
	}

	needles := []string{
		crm.CredentialParam + "=" + credential,
		crm.CredentialParam + "=" + url.QueryEscape(credential),
	}

	mask := crm.CredentialParam + "=" + crm.CredentialMask

	urlErr := &url.Error{}
	if errors.As(err, &urlErr) {
		scrubbedURL := urlErr.URL
		inner := urlErr.Err

		for _, needle := range needles {
			scrubbedURL = strings.ReplaceAll(scrubbedURL, needle, mask)
		}

		if inner != nil {
			innerMsg := inner.Error()
			scrubbedMsg := innerMsg

			for _, needle := range needles {
				scrubbedMsg = strings.ReplaceAll(scrubbedMsg, needle, mask)
			}

			if scrubbedMsg != innerMsg {
				inner = errors.New(scrubbedMsg)
			}
		}

		return &url.Error{Op: urlErr.Op, URL: scrubbedURL, Err: inner}
	}

	msg := err.Error()
	scrubbed := msg

	for _, needle := range needles {
		scrubbed = strings.ReplaceAll(scrubbed, needle, mask)
	}

	if scrubbed == msg {
		return err
	}

	return errors.New(scrubbed)
}
