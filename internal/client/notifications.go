package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// NotificationsClient implements fedi.NotificationsClient.
type NotificationsClient struct {
	httpClient *http.Client
}

// NewNotificationsClient creates a new notifications client.
func NewNotificationsClient(httpClient *http.Client) *NotificationsClient {
	return &NotificationsClient{httpClient: httpClient}
}

// List implements fedi.NotificationsClient.List.
func (c *NotificationsClient) List(params *fedi.QueryParams) *fedi.Pager[fedi.Notification] {
	return fedi.NewPager[fedi.Notification](c.httpClient, "/api/v1/notifications", params)
}

// Get implements fedi.NotificationsClient.Get.
func (c *NotificationsClient) Get(ctx context.Context, id string) (*fedi.Notification, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/notifications/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting notification: %w", err)
	}

	var notification fedi.Notification

	err = json.Unmarshal(resp.Body, &notification)
	if err != nil {
		return nil, fmt.Errorf("parsing notification response: %w", err)
	}

	return &notification, nil
}

// Clear implements fedi.NotificationsClient.Clear.
func (c *NotificationsClient) Clear(ctx context.Context) error {
	_, err := c.httpClient.Post(ctx, "/api/v1/notifications/clear", nil)
	if err != nil {
		return fmt.Errorf("clearing notifications: %w", err)
	}

	return nil
}

// Dismiss implements fedi.NotificationsClient.Dismiss.
func (c *NotificationsClient) Dismiss(ctx context.Context, id string) error {
	_, err := c.httpClient.Post(ctx, "/api/v1/notifications/"+id+"/dismiss", nil)
	if err != nil {
		return fmt.Errorf("dismissing notification: %w", err)
	}

	return nil
}
