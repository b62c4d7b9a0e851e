package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// ListsClient implements fedi.ListsClient.
type ListsClient struct {
	httpClient *http.Client
}

// NewListsClient creates a new lists client.
func NewListsClient(httpClient *http.Client) *ListsClient {
	return &ListsClient{httpClient: httpClient}
}

// List implements fedi.ListsClient.List.
func (c *ListsClient) List(ctx context.Context) ([]fedi.List, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/lists", nil)
	if err != nil {
		return nil, fmt.Errorf("listing lists: %w", err)
	}

	var lists []fedi.List

	err = json.Unmarshal(resp.Body, &lists)
	if err != nil {
		return nil, fmt.Errorf("parsing lists response: %w", err)
	}

	return lists, nil
}

// Get implements fedi.ListsClient.Get.
func (c *ListsClient) Get(ctx context.Context, id string) (*fedi.List, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/lists/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting list: %w", err)
	}

	return parseList(resp.Body)
}

// Create implements fedi.ListsClient.Create.
func (c *ListsClient) Create(ctx context.Context, request *fedi.ListCreateRequest) (*fedi.List, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/lists", request)
	if err != nil {
		return nil, fmt.Errorf("creating list: %w", err)
	}

	return parseList(resp.Body)
}

// Update implements fedi.ListsClient.Update.
func (c *ListsClient) Update(ctx context.Context, id string, request *fedi.ListCreateRequest) (*fedi.List, error) {
	resp, err := c.httpClient.Put(ctx, "/api/v1/lists/"+id, request)
	if err != nil {
		return nil, fmt.Errorf("updating list: %w", err)
	}

	return parseList(resp.Body)
}

// Delete implements fedi.ListsClient.Delete.
func (c *ListsClient) Delete(ctx context.Context, id string) error {
	_, err := c.httpClient.Delete(ctx, "/api/v1/lists/"+id)
	if err != nil {
		return fmt.Errorf("deleting list: %w", err)
	}

	return nil
}

// Accounts implements fedi.ListsClient.Accounts.
func (c *ListsClient) Accounts(id string, params *fedi.QueryParams) *fedi.Pager[fedi.Account] {
	return fedi.NewPager[fedi.Account](c.httpClient, "/api/v1/lists/"+id+"/accounts", params)
}

// AddAccounts implements fedi.ListsClient.AddAccounts.
func (c *ListsClient) AddAccounts(ctx context.Context, id string, accountIDs []string) error {
	body := &fedi.ListAccountsRequest{AccountIDs: accountIDs}

	_, err := c.httpClient.Post(ctx, "/api/v1/lists/"+id+"/accounts", body)
	if err != nil {
		return fmt.Errorf("adding list accounts: %w", err)
	}

	return nil
}

// RemoveAccounts implements fedi.ListsClient.RemoveAccounts.
func (c *ListsClient) RemoveAccounts(ctx context.Context, id string, accountIDs []string) error {
	body := &fedi.ListAccountsRequest{AccountIDs: accountIDs}

	_, err := c.httpClient.Do(ctx, &http.Request{
		Method: "DELETE",
		Path:   "/api/v1/lists/" + id + "/accounts",
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("removing list accounts: %w", err)
	}

	return nil
}

func parseList(body []byte) (*fedi.List, error) {
	var list fedi.List

	err := json.Unmarshal(body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
	}

	return &list, nil
}
