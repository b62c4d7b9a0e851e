package client

import (
	"github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// TimelinesClient implements fedi.TimelinesClient. Every timeline is a
// paginated stream of statuses walked through the Link header.
type TimelinesClient struct {
	httpClient *http.Client
}

// NewTimelinesClient creates a new timelines client.
func NewTimelinesClient(httpClient *http.Client) *TimelinesClient {
	return &TimelinesClient{httpClient: httpClient}
}

// Home implements fedi.TimelinesClient.Home.
func (c *TimelinesClient) Home(params *fedi.QueryParams) *fedi.Pager[fedi.Status] {
	return fedi.NewPager[fedi.Status](c.httpClient, "/api/v1/timelines/home", params)
}

// Public implements fedi.TimelinesClient.Public.
func (c *TimelinesClient) Public(local bool, params *fedi.QueryParams) *fedi.Pager[fedi.Status] {
	if local {
		if params == nil {
			params = fedi.NewQueryParams()
		}

		params = params.WithFilter("local", "true")
	}

	return fedi.NewPager[fedi.Status](c.httpClient, "/api/v1/timelines/public", params)
}

// Tag implements fedi.TimelinesClient.Tag.
func (c *TimelinesClient) Tag(tag string, params *fedi.QueryParams) *fedi.Pager[fedi.Status] {
	return fedi.NewPager[fedi.Status](c.httpClient, "/api/v1/timelines/tag/"+tag, params)
}

// List implements fedi.TimelinesClient.List.
func (c *TimelinesClient) List(id string, params *fedi.QueryParams) *fedi.Pager[fedi.Status] {
	return fedi.NewPager[fedi.Status](c.httpClient, "/api/v1/timelines/list/"+id, params)
}
