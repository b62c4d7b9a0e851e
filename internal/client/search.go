package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// SearchClient implements fedi.SearchClient against /api/v2/search.
type SearchClient struct {
	httpClient *http.Client
}

// NewSearchClient creates a new search client.
func NewSearchClient(httpClient *http.Client) *SearchClient {
	return &SearchClient{httpClient: httpClient}
}

// Search implements fedi.SearchClient.Search. searchType narrows results to
// "accounts", "statuses" or "hashtags"; empty searches everything.
func (c *SearchClient) Search(ctx context.Context, q string, searchType string, resolve bool) (*fedi.Results, error) {
	query := url.Values{}
	query.Set("q", q)

	if searchType != "" {
		query.Set("type", searchType)
	}

	if resolve {
		query.Set("resolve", "true")
	}

	resp, err := c.httpClient.Get(ctx, "/api/v2/search", query)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	var results fedi.Results

	err = json.Unmarshal(resp.Body, &results)
	if err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &results, nil
}
