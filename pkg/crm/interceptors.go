package crm

import (
	"context"
	"fmt"
	"sync/atomic"
)

// RequestInfo describes a dispatched request as seen by hooks. The target
// never contains the credential; it is appended after hooks run.
type RequestInfo struct {
	Method   string
	Path     string
	Metadata map[string]interface{}
}

// ResponseInfo describes a completed round trip as seen by hooks.
type ResponseInfo struct {
	StatusCode int
	Body       []byte
	Err        error
}

// RequestHook is called before a request is sent.
type RequestHook func(ctx context.Context, req *RequestInfo) error

// ResponseHook is called after a round trip completes.
type ResponseHook func(ctx context.Context, req *RequestInfo, resp *ResponseInfo) error

// HookChain manages the hooks the transport runs around each round trip.
type HookChain struct {
	requestHooks  []RequestHook
	responseHooks []ResponseHook
}

// NewHookChain creates an empty chain.
func NewHookChain() *HookChain {
	return &HookChain{}
}

// AddRequestHook appends a request hook.
func (c *HookChain) AddRequestHook(hook RequestHook) {
	c.requestHooks = append(c.requestHooks, hook)
}

// AddResponseHook appends a response hook.
func (c *HookChain) AddResponseHook(hook ResponseHook) {
	c.responseHooks = append(c.responseHooks, hook)
}

// RunRequestHooks runs all request hooks in order.
func (c *HookChain) RunRequestHooks(ctx context.Context, req *RequestInfo) error {
	for _, hook := range c.requestHooks {
		err := hook(ctx, req)
		if err != nil {
			return fmt.Errorf("request hook failed: %w", err)
		}
	}

	return nil
}

// RunResponseHooks runs all response hooks in order.
func (c *HookChain) RunResponseHooks(ctx context.Context, req *RequestInfo, resp *ResponseInfo) error {
	for _, hook := range c.responseHooks {
		err := hook(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response hook failed: %w", err)
		}
	}

	return nil
}

// LoggingRequestHook logs dispatched requests.
func LoggingRequestHook(logger Logger) RequestHook {
	return func(ctx context.Context, req *RequestInfo) error {
		logger.Debug("API request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		return nil
	}
}

// LoggingResponseHook logs completed round trips.
func LoggingResponseHook(logger Logger) ResponseHook {
	return func(ctx context.Context, req *RequestInfo, resp *ResponseInfo) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		}

		if resp.Err != nil {
			logger.Error("API response error", fields)
		} else {
			logger.Debug("API response", fields)
		}

		return nil
	}
}

// RequestCounter counts completed network round trips. Increments are
// atomic so one engine instance can be shared across call sites.
type RequestCounter struct {
	count atomic.Int64
}

// NewRequestCounter creates a counter at zero.
func NewRequestCounter() *RequestCounter {
	return &RequestCounter{}
}

// Increment adds one completed round trip.
func (c *RequestCounter) Increment() {
	c.count.Add(1)
}

// Count returns the current value.
func (c *RequestCounter) Count() int64 {
	return c.count.Load()
}

// Reset sets the counter back to zero.
func (c *RequestCounter) Reset() {
	c.count.Store(0)
}

// CountingResponseHook increments the counter once per completed round trip.
func CountingResponseHook(counter *RequestCounter) ResponseHook {
	return func(ctx context.Context, req *RequestInfo, resp *ResponseInfo) error {
		if resp.Err == nil {
			counter.Increment()
		}

		return nil
	}
}
