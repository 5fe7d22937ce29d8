package crm

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
)

// SingleExecutor executes exactly one non-paginated query. The execution
// engine implements it; the paginator drives it window by window.
type SingleExecutor interface {
	ExecuteSingle(ctx context.Context, query *Query) (*Response, error)
}

// PaginationOptions tunes a pagination run. Zero values fall back to the
// template query's window state.
type PaginationOptions struct {
	StartIndex int
	PageSize   int
	// MaxWindows caps the number of pages fetched. 0 means no cap.
	MaxWindows int
}

// fullWindow fingerprints the previous full page so a vendor that ignores
// the window parameters is caught instead of looping forever.
type fullWindow struct {
	size  int
	first Record
}

// FetchAllWindows drives repeated execution of a paginated query across
// index windows and aggregates the pages into one logical Response.
//
// Fetching is strictly sequential: the next window's start depends on the
// previous page's record count. A full window advances the start by the
// window size; a short or empty window terminates the run. Any page error
// aborts the whole run and the partial accumulation is discarded — the
// caller gets either a complete aggregate or a typed error, never a partial
// result disguised as success. Record order is fetch order, and within a
// page, vendor order.
func FetchAllWindows(ctx context.Context, exec SingleExecutor, template *Query, opts *PaginationOptions) (*Response, error) {
	err := template.Validate()
	if err != nil {
		return nil, err
	}

	start := template.StartIndex()
	size := template.PageSize()

	if opts != nil {
		if opts.StartIndex >= MinStartIndex {
			start = opts.StartIndex
		}

		if opts.PageSize > 0 {
			size = opts.PageSize
		}
	}

	var (
		accumulated []Record
		previous    *fullWindow
	)

	windows := 0

	for {
		err := ctx.Err()
		if err != nil {
			return nil, fmt.Errorf("pagination aborted: %w", err)
		}

		page := template.Clone().
			MarkPaginated(false).
			SetWindow(start, size).
			SetParam(FromIndexParam, strconv.Itoa(start)).
			SetParam(ToIndexParam, strconv.Itoa(start+size-1))

		resp, err := exec.ExecuteSingle(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetching window at index %d: %w", start, err)
		}

		records := resp.Records()
		accumulated = append(accumulated, records...)

		if len(records) < size {
			break
		}

		// Full window: make sure the vendor is actually advancing before
		// asking for the next one.
		if previous != nil && previous.size == len(records) && reflect.DeepEqual(previous.first, records[0]) {
			return nil, &StallError{StartIndex: start, PageSize: size}
		}

		previous = &fullWindow{size: len(records), first: records[0]}

		windows++
		if opts != nil && opts.MaxWindows > 0 && windows >= opts.MaxWindows {
			break
		}

		next := start + size
		if next <= start {
			return nil, &StallError{StartIndex: start, PageSize: size}
		}

		start = next
	}

	if len(accumulated) == 0 {
		return NewEmptyResponse(template, nil), nil
	}

	return NewListResponse(template, accumulated, nil), nil
}
