package graph

import (
	"net/url"
	"strconv"
	"strings"
)

// Request describes a single read-only Graph query: a collection or item path
// plus the query modifiers applied to it. Entity payloads are opaque to this
// layer; a Request never carries a body.
type Request struct {
	// Path is the resource path relative to the API root, e.g. "/users"
	Path string

	// Top caps the page size (0 means no $top parameter)
	Top int

	// Filter is a sanitized $filter expression
	Filter string

	// Select lists the fields to project (order-preserving)
	Select []string

	// OrderBy is a field plus optional direction, e.g. "createdDateTime desc"
	OrderBy string

	// Expand is a $expand expression (may embed a nested $select)
	Expand string

	// AdvancedQuery requests eventual-consistency query support
	// (ConsistencyLevel header plus $count=true)
	AdvancedQuery bool
}

// encodeQuery renders the query modifiers in the order they are applied:
// top, filter, select, orderby, then expand and count. Returns "" when the
// request has no modifiers.
func (r Request) encodeQuery() string {
	var parts []string
	add := func(key, value string) {
		parts = append(parts, key+"="+url.QueryEscape(value))
	}

	if r.Top > 0 {
		add("$top", strconv.Itoa(r.Top))
	}
	if r.Filter != "" {
		add("$filter", r.Filter)
	}
	if len(r.Select) > 0 {
		add("$select", strings.Join(r.Select, ","))
	}
	if r.OrderBy != "" {
		add("$orderby", r.OrderBy)
	}
	if r.Expand != "" {
		add("$expand", r.Expand)
	}
	if r.AdvancedQuery {
		add("$count", "true")
	}

	return strings.Join(parts, "&")
}

// URL renders the full request URL against the given API base.
func (r Request) URL(baseURL string) string {
	u := strings.TrimRight(baseURL, "/") + r.Path
	if q := r.encodeQuery(); q != "" {
		u += "?" + q
	}
	return u
}
