package odata

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// EntitySetRequest is a builder rooted at a named entity set.
type EntitySetRequest struct {
	c  *Client
	es *EntitySet
}

// GetEntity addresses a single entity of the set by key predicate. The key
// map uses property names; multi-part keys are rendered in name order for a
// stable URL.
func (r *EntitySetRequest) GetEntity(key map[string]any) *EntityRequest {
	return &EntityRequest{c: r.c, es: r.es, key: key}
}

// EntityRequest addresses one entity: Set(Key='v').
type EntityRequest struct {
	c   *Client
	es  *EntitySet
	key map[string]any
}

// Nav traverses the named to-many navigation property of the addressed
// entity. The property must be declared on the set's entity type.
func (e *EntityRequest) Nav(property string) (*NavRequest, error) {
	if !e.es.EntityType().HasNavigation(property) {
		return nil, fmt.Errorf("odata: entity type %s has no navigation property %q", e.es.EntityType().Name, property)
	}
	return &NavRequest{c: e.c, path: e.path() + "/" + url.PathEscape(property)}, nil
}

func (e *EntityRequest) path() string {
	return url.PathEscape(e.es.Name) + "(" + keyPredicate(e.key) + ")"
}

// NavRequest addresses the entities reachable via a navigation property.
type NavRequest struct {
	c    *Client
	path string
}

// GetEntities returns an executable collection request for the navigation
// target.
func (n *NavRequest) GetEntities() *EntityListRequest {
	return &EntityListRequest{c: n.c, path: n.path}
}

// EntityListRequest requests a collection of entities.
type EntityListRequest struct {
	c    *Client
	path string
}

// Execute issues the collection request and shapes the response into records.
func (r *EntityListRequest) Execute(ctx context.Context) (*Records, error) {
	resp, err := r.c.sess.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("$format", "json").
		Get(r.c.serviceURL + "/" + r.path)
	if err != nil {
		return nil, fmt.Errorf("odata: requesting %s: %w", r.path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("odata: request %s returned status %d", r.path, resp.StatusCode())
	}
	return parseRecords(resp.Body())
}

// keyPredicate renders a key map as an OData v2 key predicate:
// Id='C1' or A='x',B=2 for compound keys. Names are sorted so the same key
// always produces the same URL.
func keyPredicate(key map[string]any) string {
	names := make([]string, 0, len(key))
	for n := range key {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+"="+url.PathEscape(Literal(key[n])))
	}
	return strings.Join(parts, ",")
}
