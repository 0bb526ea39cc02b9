package provider

import (
	"context"
	"net/http"
	"net/url"
)

const restPrefix = "/rest/v1/"

// Filters are PostgREST column filters, e.g. {"id": "eq.<uuid>"}.
type Filters map[string]string

func (f Filters) encode(extra url.Values) string {
	q := url.Values{}
	for k, v := range f {
		q.Set(k, v)
	}
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// SelectOne fetches exactly one row into dest. A missing row is ErrNoRows.
func (c *Client) SelectOne(ctx context.Context, token, table, columns string, filters Filters, dest interface{}) error {
	extra := url.Values{}
	if columns != "" {
		extra.Set("select", columns)
	}
	headers := map[string]string{"Accept": "application/vnd.pgrst.object+json"}
	err := c.request(ctx, http.MethodGet, restPrefix+table+filters.encode(extra), token, headers, nil, dest)
	if apiErr, ok := AsAPIError(err); ok && apiErr.Status == http.StatusNotAcceptable {
		// Object representation of zero rows.
		return ErrNoRows
	}
	return err
}

// Select fetches all matching rows into dest (a slice pointer). query may
// carry select/order/limit parameters.
func (c *Client) Select(ctx context.Context, token, table string, filters Filters, query url.Values, dest interface{}) error {
	return c.request(ctx, http.MethodGet, restPrefix+table+filters.encode(query), token, nil, nil, dest)
}

// Insert creates rows; with dest non-nil the representation is returned.
func (c *Client) Insert(ctx context.Context, token, table string, body, dest interface{}) error {
	headers := map[string]string{}
	if dest != nil {
		headers["Prefer"] = "return=representation"
	}
	return c.request(ctx, http.MethodPost, restPrefix+table, token, headers, body, dest)
}

// Update patches matching rows.
func (c *Client) Update(ctx context.Context, token, table string, filters Filters, body, dest interface{}) error {
	headers := map[string]string{}
	if dest != nil {
		headers["Prefer"] = "return=representation"
	}
	return c.request(ctx, http.MethodPatch, restPrefix+table+filters.encode(nil), token, headers, body, dest)
}

// Delete removes matching rows.
func (c *Client) Delete(ctx context.Context, token, table string, filters Filters) error {
	return c.request(ctx, http.MethodDelete, restPrefix+table+filters.encode(nil), token, nil, nil, nil)
}

// RPC invokes a database function, e.g. join_tournament.
func (c *Client) RPC(ctx context.Context, token, fn string, args, dest interface{}) error {
	return c.request(ctx, http.MethodPost, restPrefix+"rpc/"+fn, token, nil, args, dest)
}
