package odata

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

type boundParam struct {
	name  string
	value any
}

// FunctionRequest is a fluent builder for a function import call. Parameters
// are bound in call order and sent as OData URL literals.
type FunctionRequest struct {
	c      *Client
	fi     *FunctionImport
	params []boundParam
}

// Parameter binds a named parameter and returns the request for chaining.
func (r *FunctionRequest) Parameter(name string, value any) *FunctionRequest {
	r.params = append(r.params, boundParam{name: name, value: value})
	return r
}

// Execute issues the function import request and shapes the response into
// records.
func (r *FunctionRequest) Execute(ctx context.Context) (*Records, error) {
	req := r.c.sess.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("$format", "json")
	for _, p := range r.params {
		req.SetQueryParam(p.name, Literal(p.value))
	}

	url := r.c.serviceURL + "/" + r.fi.Name
	var resp *resty.Response
	var err error
	switch r.fi.HTTPMethod {
	case http.MethodPost:
		resp, err = req.Post(url)
	default:
		resp, err = req.Get(url)
	}
	if err != nil {
		return nil, fmt.Errorf("odata: executing function %s: %w", r.fi.Name, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("odata: function %s returned status %d", r.fi.Name, resp.StatusCode())
	}
	return parseRecords(resp.Body())
}
