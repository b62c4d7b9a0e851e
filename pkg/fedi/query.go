package fedi

import (
	"net/url"
	"strconv"
)

// QueryParams represents the cursor and filter parameters accepted by list
// endpoints. MaxID/SinceID/MinID are opaque cursor values; the client only
// forwards what the server handed out in a navigation link, it never
// constructs cursor values itself.
type QueryParams struct {
	MaxID   string
	SinceID string
	MinID   string
	Limit   int

	// Filters holds endpoint-specific parameters (e.g. "local", "only_media",
	// "exclude_types[]").
	Filters map[string][]string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithMaxID sets the max_id cursor.
func (p *QueryParams) WithMaxID(id string) *QueryParams {
	p.MaxID = id

	return p
}

// WithSinceID sets the since_id cursor.
func (p *QueryParams) WithSinceID(id string) *QueryParams {
	p.SinceID = id

	return p
}

// WithMinID sets the min_id cursor.
func (p *QueryParams) WithMinID(id string) *QueryParams {
	p.MinID = id

	return p
}

// WithLimit sets the page size.
func (p *QueryParams) WithLimit(limit int) *QueryParams {
	p.Limit = limit

	return p
}

// WithFilter appends values to an endpoint-specific filter parameter.
func (p *QueryParams) WithFilter(key string, values ...string) *QueryParams {
	if p.Filters == nil {
		p.Filters = make(map[string][]string)
	}

	p.Filters[key] = append(p.Filters[key], values...)

	return p
}

// ToValues converts the params to url.Values.
func (p *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if p == nil {
		return values
	}

	if p.MaxID != "" {
		values.Set("max_id", p.MaxID)
	}

	if p.SinceID != "" {
		values.Set("since_id", p.SinceID)
	}

	if p.MinID != "" {
		values.Set("min_id", p.MinID)
	}

	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}

	for key, vals := range p.Filters {
		for _, v := range vals {
			values.Add(key, v)
		}
	}

	return values
}
