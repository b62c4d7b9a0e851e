package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// StatusesClient implements fedi.StatusesClient.
type StatusesClient struct {
	httpClient *http.Client
}

// NewStatusesClient creates a new statuses client.
func NewStatusesClient(httpClient *http.Client) *StatusesClient {
	return &StatusesClient{httpClient: httpClient}
}

// Get implements fedi.StatusesClient.Get.
func (c *StatusesClient) Get(ctx context.Context, id string) (*fedi.Status, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/statuses/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}

	return parseStatus(resp.Body)
}

// Create implements fedi.StatusesClient.Create.
func (c *StatusesClient) Create(ctx context.Context, request *fedi.StatusCreateRequest) (*fedi.Status, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/statuses", request)
	if err != nil {
		return nil, fmt.Errorf("creating status: %w", err)
	}

	return parseStatus(resp.Body)
}

// Delete implements fedi.StatusesClient.Delete.
func (c *StatusesClient) Delete(ctx context.Context, id string) error {
	_, err := c.httpClient.Delete(ctx, "/api/v1/statuses/"+id)
	if err != nil {
		return fmt.Errorf("deleting status: %w", err)
	}

	return nil
}

// Context implements fedi.StatusesClient.Context.
func (c *StatusesClient) Context(ctx context.Context, id string) (*fedi.Context, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/statuses/"+id+"/context", nil)
	if err != nil {
		return nil, fmt.Errorf("getting status context: %w", err)
	}

	var statusContext fedi.Context

	err = json.Unmarshal(resp.Body, &statusContext)
	if err != nil {
		return nil, fmt.Errorf("parsing context response: %w", err)
	}

	return &statusContext, nil
}

// Card implements fedi.StatusesClient.Card.
func (c *StatusesClient) Card(ctx context.Context, id string) (*fedi.Card, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/statuses/"+id+"/card", nil)
	if err != nil {
		return nil, fmt.Errorf("getting status card: %w", err)
	}

	var card fedi.Card

	err = json.Unmarshal(resp.Body, &card)
	if err != nil {
		return nil, fmt.Errorf("parsing card response: %w", err)
	}

	return &card, nil
}

// RebloggedBy implements fedi.StatusesClient.RebloggedBy.
func (c *StatusesClient) RebloggedBy(id string, params *fedi.QueryParams) *fedi.Pager[fedi.Account] {
	return fedi.NewPager[fedi.Account](c.httpClient, "/api/v1/statuses/"+id+"/reblogged_by", params)
}

// FavouritedBy implements fedi.StatusesClient.FavouritedBy.
func (c *StatusesClient) FavouritedBy(id string, params *fedi.QueryParams) *fedi.Pager[fedi.Account] {
	return fedi.NewPager[fedi.Account](c.httpClient, "/api/v1/statuses/"+id+"/favourited_by", params)
}

// Favourite implements fedi.StatusesClient.Favourite.
func (c *StatusesClient) Favourite(ctx context.Context, id string) (*fedi.Status, error) {
	return c.statusAction(ctx, id, "favourite")
}

// Unfavourite implements fedi.StatusesClient.Unfavourite.
func (c *StatusesClient) Unfavourite(ctx context.Context, id string) (*fedi.Status, error) {
	return c.statusAction(ctx, id, "unfavourite")
}

// Reblog implements fedi.StatusesClient.Reblog.
func (c *StatusesClient) Reblog(ctx context.Context, id string) (*fedi.Status, error) {
	return c.statusAction(ctx, id, "reblog")
}

// Unreblog implements fedi.StatusesClient.Unreblog.
func (c *StatusesClient) Unreblog(ctx context.Context, id string) (*fedi.Status, error) {
	return c.statusAction(ctx, id, "unreblog")
}

// Bookmark implements fedi.StatusesClient.Bookmark.
func (c *StatusesClient) Bookmark(ctx context.Context, id string) (*fedi.Status, error) {
	return c.statusAction(ctx, id, "bookmark")
}

// Unbookmark implements fedi.StatusesClient.Unbookmark.
func (c *StatusesClient) Unbookmark(ctx context.Context, id string) (*fedi.Status, error) {
	return c.statusAction(ctx, id, "unbookmark")
}

// Pin implements fedi.StatusesClient.Pin.
func (c *StatusesClient) Pin(ctx context.Context, id string) (*fedi.Status, error) {
	return c.statusAction(ctx, id, "pin")
}

// Unpin implements fedi.StatusesClient.Unpin.
func (c *StatusesClient) Unpin(ctx context.Context, id string) (*fedi.Status, error) {
	return c.statusAction(ctx, id, "unpin")
}

func (c *StatusesClient) statusAction(ctx context.Context, id, action string) (*fedi.Status, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/statuses/"+id+"/"+action, nil)
	if err != nil {
		return nil, fmt.Errorf("%s status: %w", action, err)
	}

	return parseStatus(resp.Body)
}

// Favourites implements fedi.StatusesClient.Favourites.
func (c *StatusesClient) Favourites(params *fedi.QueryParams) *fedi.Pager[fedi.Status] {
	return fedi.NewPager[fedi.Status](c.httpClient, "/api/v1/favourites", params)
}

// Bookmarks implements fedi.StatusesClient.Bookmarks.
func (c *StatusesClient) Bookmarks(params *fedi.QueryParams) *fedi.Pager[fedi.Status] {
	return fedi.NewPager[fedi.Status](c.httpClient, "/api/v1/bookmarks", params)
}

func parseStatus(body []byte) (*fedi.Status, error) {
	var status fedi.Status

	err := json.Unmarshal(body, &status)
	if err != nil {
		return nil, fmt.Errorf("parsing status response: %w", err)
	}

	return &status, nil
}
