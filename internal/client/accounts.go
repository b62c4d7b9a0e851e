package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// AccountsClient implements fedi.AccountsClient.
type AccountsClient struct {
	httpClient *http.Client
}

// NewAccountsClient creates a new accounts client.
func NewAccountsClient(httpClient *http.Client) *AccountsClient {
	return &AccountsClient{httpClient: httpClient}
}

// Get implements fedi.AccountsClient.Get.
func (c *AccountsClient) Get(ctx context.Context, id string) (*fedi.Account, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/accounts/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	var account fedi.Account

	err = json.Unmarshal(resp.Body, &account)
	if err != nil {
		return nil, fmt.Errorf("parsing account response: %w", err)
	}

	return &account, nil
}

// VerifyCredentials implements fedi.AccountsClient.VerifyCredentials.
func (c *AccountsClient) VerifyCredentials(ctx context.Context) (*fedi.Account, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/accounts/verify_credentials", nil)
	if err != nil {
		return nil, fmt.Errorf("verifying credentials: %w", err)
	}

	var account fedi.Account

	err = json.Unmarshal(resp.Body, &account)
	if err != nil {
		return nil, fmt.Errorf("parsing account response: %w", err)
	}

	return &account, nil
}

// Update implements fedi.AccountsClient.Update.
func (c *AccountsClient) Update(ctx context.Context, request *fedi.AccountUpdateRequest) (*fedi.Account, error) {
	resp, err := c.httpClient.Patch(ctx, "/api/v1/accounts/update_credentials", request)
	if err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}

	var account fedi.Account

	err = json.Unmarshal(resp.Body, &account)
	if err != nil {
		return nil, fmt.Errorf("parsing account response: %w", err)
	}

	return &account, nil
}

// Statuses implements fedi.AccountsClient.Statuses.
func (c *AccountsClient) Statuses(id string, params *fedi.QueryParams) *fedi.Pager[fedi.Status] {
	return fedi.NewPager[fedi.Status](c.httpClient, "/api/v1/accounts/"+id+"/statuses", params)
}

// Followers implements fedi.AccountsClient.Followers.
func (c *AccountsClient) Followers(id string, params *fedi.QueryParams) *fedi.Pager[fedi.Account] {
	return fedi.NewPager[fedi.Account](c.httpClient, "/api/v1/accounts/"+id+"/followers", params)
}

// Following implements fedi.AccountsClient.Following.
func (c *AccountsClient) Following(id string, params *fedi.QueryParams) *fedi.Pager[fedi.Account] {
	return fedi.NewPager[fedi.Account](c.httpClient, "/api/v1/accounts/"+id+"/following", params)
}

// Follow implements fedi.AccountsClient.Follow.
func (c *AccountsClient) Follow(ctx context.Context, id string, request *fedi.FollowRequest) (*fedi.Relationship, error) {
	return c.relationshipAction(ctx, id, "follow", request)
}

// Unfollow implements fedi.AccountsClient.Unfollow.
func (c *AccountsClient) Unfollow(ctx context.Context, id string) (*fedi.Relationship, error) {
	return c.relationshipAction(ctx, id, "unfollow", nil)
}

// Block implements fedi.AccountsClient.Block.
func (c *AccountsClient) Block(ctx context.Context, id string) (*fedi.Relationship, error) {
	return c.relationshipAction(ctx, id, "block", nil)
}

// Unblock implements fedi.AccountsClient.Unblock.
func (c *AccountsClient) Unblock(ctx context.Context, id string) (*fedi.Relationship, error) {
	return c.relationshipAction(ctx, id, "unblock", nil)
}

// Mute implements fedi.AccountsClient.Mute.
func (c *AccountsClient) Mute(ctx context.Context, id string) (*fedi.Relationship, error) {
	return c.relationshipAction(ctx, id, "mute", nil)
}

// Unmute implements fedi.AccountsClient.Unmute.
func (c *AccountsClient) Unmute(ctx context.Context, id string) (*fedi.Relationship, error) {
	return c.relationshipAction(ctx, id, "unmute", nil)
}

func (c *AccountsClient) relationshipAction(ctx context.Context, id, action string, body interface{}) (*fedi.Relationship, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/accounts/"+id+"/"+action, body)
	if err != nil {
		return nil, fmt.Errorf("%s account: %w", action, err)
	}

	var relationship fedi.Relationship

	err = json.Unmarshal(resp.Body, &relationship)
	if err != nil {
		return nil, fmt.Errorf("parsing relationship response: %w", err)
	}

	return &relationship, nil
}

// Relationships implements fedi.AccountsClient.Relationships.
func (c *AccountsClient) Relationships(ctx context.Context, ids []string) ([]fedi.Relationship, error) {
	query := url.Values{}
	for _, id := range ids {
		query.Add("id[]", id)
	}

	resp, err := c.httpClient.Get(ctx, "/api/v1/accounts/relationships", query)
	if err != nil {
		return nil, fmt.Errorf("getting relationships: %w", err)
	}

	var relationships []fedi.Relationship

	err = json.Unmarshal(resp.Body, &relationships)
	if err != nil {
		return nil, fmt.Errorf("parsing relationships response: %w", err)
	}

	return relationships, nil
}

// Search implements fedi.AccountsClient.Search.
func (c *AccountsClient) Search(ctx context.Context, q string, limit int) ([]fedi.Account, error) {
	query := url.Values{}
	query.Set("q", q)

	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	resp, err := c.httpClient.Get(ctx, "/api/v1/accounts/search", query)
	if err != nil {
		return nil, fmt.Errorf("searching accounts: %w", err)
	}

	var accounts []fedi.Account

	err = json.Unmarshal(resp.Body, &accounts)
	if err != nil {
		return nil, fmt.Errorf("parsing accounts response: %w", err)
	}

	return accounts, nil
}

// FollowRequests implements fedi.AccountsClient.FollowRequests.
func (c *AccountsClient) FollowRequests(params *fedi.QueryParams) *fedi.Pager[fedi.Account] {
	return fedi.NewPager[fedi.Account](c.httpClient, "/api/v1/follow_requests", params)
}

// AcceptFollowRequest implements fedi.AccountsClient.AcceptFollowRequest.
func (c *AccountsClient) AcceptFollowRequest(ctx context.Context, id string) error {
	_, err := c.httpClient.Post(ctx, "/api/v1/follow_requests/"+id+"/authorize", nil)
	if err != nil {
		return fmt.Errorf("accepting follow request: %w", err)
	}

	return nil
}

// RejectFollowRequest implements fedi.AccountsClient.RejectFollowRequest.
func (c *AccountsClient) RejectFollowRequest(ctx context.Context, id string) error {
	_, err := c.httpClient.Post(ctx, "/api/v1/follow_requests/"+id+"/reject", nil)
	if err != nil {
		return fmt.Errorf("rejecting follow request: %w", err)
	}

	return nil
}

// Blocks implements fedi.AccountsClient.Blocks.
func (c *AccountsClient) Blocks(params *fedi.QueryParams) *fedi.Pager[fedi.Account] {
	return fedi.NewPager[fedi.Account](c.httpClient, "/api/v1/blocks", params)
}

// Mutes implements fedi.AccountsClient.Mutes.
func (c *AccountsClient) Mutes(params *fedi.QueryParams) *fedi.Pager[fedi.Account] {
	return fedi.NewPager[fedi.Account](c.httpClient, "/api/v1/mutes", params)
}
