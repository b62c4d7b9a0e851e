package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// AppsClient implements fedi.AppsClient.
type AppsClient struct {
	httpClient *http.Client
}

// NewAppsClient creates a new apps client.
func NewAppsClient(httpClient *http.Client) *AppsClient {
	return &AppsClient{httpClient: httpClient}
}

// Register implements fedi.AppsClient.Register.
func (c *AppsClient) Register(ctx context.Context, request *fedi.AppRegisterRequest) (*fedi.Application, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/apps", request)
	if err != nil {
		return nil, fmt.Errorf("registering app: %w", err)
	}

	return parseApplication(resp.Body)
}

// VerifyCredentials implements fedi.AppsClient.VerifyCredentials.
func (c *AppsClient) VerifyCredentials(ctx context.Context) (*fedi.Application, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/apps/verify_credentials", nil)
	if err != nil {
		return nil, fmt.Errorf("verifying app credentials: %w", err)
	}

	return parseApplication(resp.Body)
}

func parseApplication(body []byte) (*fedi.Application, error) {
	var app fedi.Application

	err := json.Unmarshal(body, &app)
	if err != nil {
		return nil, fmt.Errorf("parsing application response: %w", err)
	}

	return &app, nil
}
