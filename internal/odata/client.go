package odata

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// Client is a minimal OData v2 protocol client bound to one service URL and
// one open session. It parses the service $metadata once at construction and
// exposes explicit name lookups for function imports and entity sets; all
// request execution goes through the session it was built with.
type Client struct {
	serviceURL string
	sess       *resty.Client
	schema     *Schema
}

// New fetches and parses the service schema and returns a client bound to the
// session. The session's base URL is not consulted; all requests use the
// absolute service URL.
func New(ctx context.Context, serviceURL string, sess *resty.Client) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(serviceURL), "/")
	if base == "" {
		return nil, fmt.Errorf("odata: empty service url")
	}
	resp, err := sess.R().
		SetContext(ctx).
		SetHeader("Accept", "application/xml").
		Get(base + "/$metadata")
	if err != nil {
		return nil, fmt.Errorf("odata: fetching $metadata: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("odata: $metadata request returned status %d", resp.StatusCode())
	}
	schema, err := ParseMetadata(resp.Body())
	if err != nil {
		return nil, err
	}
	return &Client{serviceURL: base, sess: sess, schema: schema}, nil
}

// Schema returns the parsed service schema.
func (c *Client) Schema() *Schema {
	return c.schema
}

// Function looks up the named function import and returns a request builder
// for it.
func (c *Client) Function(name string) (*FunctionRequest, error) {
	fi, ok := c.schema.FunctionImport(name)
	if !ok {
		return nil, fmt.Errorf("odata: unknown function import %q", name)
	}
	return &FunctionRequest{c: c, fi: fi}, nil
}

// EntitySet looks up the named entity set and returns a request builder for
// it.
func (c *Client) EntitySet(name string) (*EntitySetRequest, error) {
	es, ok := c.schema.EntitySet(name)
	if !ok {
		return nil, fmt.Errorf("odata: unknown entity set %q", name)
	}
	return &EntitySetRequest{c: c, es: es}, nil
}

// Records is a shaped response payload: raw record maps plus the key order of
// the first record as it appeared in the document.
type Records struct {
	Columns []string
	Rows    []map[string]any
}

// parseRecords unwraps an OData response body into records. Both the v2
// envelope ({"d": {"results": [...]}}) and the bare forms ({"results": [...]},
// {"d": [...]}) are accepted.
func parseRecords(body []byte) (*Records, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("odata: malformed response payload")
	}
	doc := gjson.ParseBytes(body)

	var list gjson.Result
	switch {
	case doc.Get("d.results").IsArray():
		list = doc.Get("d.results")
	case doc.Get("results").IsArray():
		list = doc.Get("results")
	case doc.Get("d").IsArray():
		list = doc.Get("d")
	default:
		return nil, fmt.Errorf("odata: response payload has no results collection")
	}

	out := &Records{Rows: []map[string]any{}}
	var iterErr error
	list.ForEach(func(_, el gjson.Result) bool {
		if !el.IsObject() {
			iterErr = fmt.Errorf("odata: results collection contains a non-record element")
			return false
		}
		if out.Columns == nil {
			el.ForEach(func(k, _ gjson.Result) bool {
				out.Columns = append(out.Columns, k.String())
				return true
			})
		}
		row, _ := el.Value().(map[string]any)
		out.Rows = append(out.Rows, row)
		return true
	})
	if iterErr != nil {
		return nil, iterErr
	}
	return out, nil
}
