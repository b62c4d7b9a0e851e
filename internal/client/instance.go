package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// InstanceClient implements fedi.InstanceClient.
type InstanceClient struct {
	httpClient *http.Client
}

// NewInstanceClient creates a new instance client.
func NewInstanceClient(httpClient *http.Client) *InstanceClient {
	return &InstanceClient{httpClient: httpClient}
}

// Get implements fedi.InstanceClient.Get.
func (c *InstanceClient) Get(ctx context.Context) (*fedi.Instance, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/instance", nil)
	if err != nil {
		return nil, fmt.Errorf("getting instance: %w", err)
	}

	var instance fedi.Instance

	err = json.Unmarshal(resp.Body, &instance)
	if err != nil {
		return nil, fmt.Errorf("parsing instance response: %w", err)
	}

	return &instance, nil
}

// Peers implements fedi.InstanceClient.Peers.
func (c *InstanceClient) Peers(ctx context.Context) ([]string, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/instance/peers", nil)
	if err != nil {
		return nil, fmt.Errorf("getting instance peers: %w", err)
	}

	var peers []string

	err = json.Unmarshal(resp.Body, &peers)
	if err != nil {
		return nil, fmt.Errorf("parsing peers response: %w", err)
	}

	return peers, nil
}

// Activity implements fedi.InstanceClient.Activity.
func (c *InstanceClient) Activity(ctx context.Context) ([]fedi.InstanceActivity, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/instance/activity", nil)
	if err != nil {
		return nil, fmt.Errorf("getting instance activity: %w", err)
	}

	var activity []fedi.InstanceActivity

	err = json.Unmarshal(resp.Body, &activity)
	if err != nil {
		return nil, fmt.Errorf("parsing activity response: %w", err)
	}

	return activity, nil
}
