package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/centerline-io/crmapi/pkg/crm"
)

// resourceClient is the thin factory behind every entity-mapped resource:
// it pre-fills the query's resource and operation names and hands the rest
// to the engine.
type resourceClient[T any] struct {
	engine   *Client
	resource string
}

func newResourceClient[T any](engine *Client, resource string) *resourceClient[T] {
	return &resourceClient[T]{engine: engine, resource: resource}
}

func (r *resourceClient[T]) query(operation string) *crm.Query {
	return crm.NewQuery().
		SetResource(r.resource).
		SetOperation(operation).
		SetFormat(r.engine.format).
		SetWindow(crm.MinStartIndex, r.engine.pageSize)
}

// FindByID implements crm.ResourceClient.FindByID.
func (r *resourceClient[T]) FindByID(ctx context.Context, id string) (*T, error) {
	query := r.query(crm.OpFind).SetParam("id", id)

	resp, err := r.engine.Execute(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("finding %s %q: %w", r.resource, id, err)
	}

	record, ok := resp.Record()
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", r.resource, id, crm.ErrRecordNotFound)
	}

	var entity T

	err = crm.DecodeRecord(record, &entity)
	if err != nil {
		return nil, fmt.Errorf("converting %s %q: %w", r.resource, id, err)
	}

	return &entity, nil
}

// List implements crm.ResourceClient.List.
func (r *resourceClient[T]) List(ctx context.Context, opts *crm.ListOptions) ([]T, error) {
	query := r.query(crm.OpList)

	if opts != nil {
		if opts.SortBy != "" {
			query.SetParam("sort_by", opts.SortBy)
		}

		if opts.SortOrder != "" {
			query.SetParam("sort_order", opts.SortOrder)
		}

		start := opts.StartIndex
		if start < crm.MinStartIndex {
			start = crm.MinStartIndex
		}

		size := opts.PageSize
		if size < 1 {
			size = r.engine.pageSize
		}

		if opts.AllPages {
			query.MarkPaginated(true).SetWindow(start, size)
		} else {
			query.SetParam(crm.FromIndexParam, strconv.Itoa(start)).
				SetParam(crm.ToIndexParam, strconv.Itoa(start+size-1))
		}
	}

	resp, err := r.engine.Execute(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.resource, err)
	}

	return crm.ToEntities[T](resp)
}

// Search implements crm.ResourceClient.Search.
func (r *resourceClient[T]) Search(ctx context.Context, criteria map[string]string) ([]T, error) {
	query := r.query(crm.OpSearch).SetParams(criteria)

	resp, err := r.engine.Execute(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", r.resource, err)
	}

	return crm.ToEntities[T](resp)
}

// Insert implements crm.ResourceClient.Insert. Record fields travel as
// request parameters, the way every other query parameter does.
func (r *resourceClient[T]) Insert(ctx context.Context, record crm.Record) (*crm.Response, error) {
	query := r.query(crm.OpInsert).SetParams(stringifyRecord(record))

	resp, err := r.engine.Execute(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("inserting into %s: %w", r.resource, err)
	}

	return resp, nil
}

// Update implements crm.ResourceClient.Update.
func (r *resourceClient[T]) Update(ctx context.Context, id string, record crm.Record) (*crm.Response, error) {
	query := r.query(crm.OpUpdate).SetParam("id", id).SetParams(stringifyRecord(record))

	resp, err := r.engine.Execute(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("updating %s %q: %w", r.resource, id, err)
	}

	return resp, nil
}

// Delete implements crm.ResourceClient.Delete.
func (r *resourceClient[T]) Delete(ctx context.Context, id string) error {
	query := r.query(crm.OpDelete).SetParam("id", id)

	_, err := r.engine.Execute(ctx, query)
	if err != nil {
		return fmt.Errorf("deleting %s %q: %w", r.resource, id, err)
	}

	return nil
}

func stringifyRecord(record crm.Record) map[string]string {
	params := make(map[string]string, len(record))
	for key, value := range record {
		params[key] = fmt.Sprint(value)
	}

	return params
}
