package crm_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centerline-io/crmapi/pkg/crm"
)

func TestHookChain_RunsInOrder(t *testing.T) {
	t.Parallel()

	chain := crm.NewHookChain()

	var order []string

	chain.AddRequestHook(func(ctx context.Context, req *crm.RequestInfo) error {
		order = append(order, "first")
		return nil
	})
	chain.AddRequestHook(func(ctx context.Context, req *crm.RequestInfo) error {
		order = append(order, "second")
		return nil
	})

	err := chain.RunRequestHooks(context.Background(), &crm.RequestInfo{Method: "GET", Path: "/Leads/list"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestHookChain_RequestHookErrorStopsChain(t *testing.T) {
	t.Parallel()

	chain := crm.NewHookChain()
	boom := errors.New("boom")

	chain.AddRequestHook(func(ctx context.Context, req *crm.RequestInfo) error {
		return boom
	})
	chain.AddRequestHook(func(ctx context.Context, req *crm.RequestInfo) error {
		t.Error("second hook must not run")
		return nil
	})

	err := chain.RunRequestHooks(context.Background(), &crm.RequestInfo{})
	assert.ErrorIs(t, err, boom)
}

func TestRequestCounter_ConcurrentIncrements(t *testing.T) {
	t.Parallel()

	counter := crm.NewRequestCounter()

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			counter.Increment()
		}()
	}

	wg.Wait()
	assert.Equal(t, int64(50), counter.Count())

	counter.Reset()
	assert.Equal(t, int64(0), counter.Count())
}

func TestCountingResponseHook_SkipsFailedRoundTrips(t *testing.T) {
	t.Parallel()

	counter := crm.NewRequestCounter()
	hook := crm.CountingResponseHook(counter)

	req := &crm.RequestInfo{Method: "GET", Path: "/Leads/list"}

	require.NoError(t, hook(context.Background(), req, &crm.ResponseInfo{StatusCode: 200}))
	require.NoError(t, hook(context.Background(), req, &crm.ResponseInfo{StatusCode: 500}))
	require.NoError(t, hook(context.Background(), req, &crm.ResponseInfo{Err: errors.New("dial failed")}))

	// Completed round trips count whatever the status; transport failures
	// never reached the vendor and do not.
	assert.Equal(t, int64(2), counter.Count())
}
