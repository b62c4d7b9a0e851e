package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// ReportsClient implements fedi.ReportsClient.
type ReportsClient struct {
	httpClient *http.Client
}

// NewReportsClient creates a new reports client.
func NewReportsClient(httpClient *http.Client) *ReportsClient {
	return &ReportsClient{httpClient: httpClient}
}

// Create implements fedi.ReportsClient.Create.
func (c *ReportsClient) Create(ctx context.Context, request *fedi.ReportRequest) (*fedi.Report, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/reports", request)
	if err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}

	var report fedi.Report

	err = json.Unmarshal(resp.Body, &report)
	if err != nil {
		return nil, fmt.Errorf("parsing report response: %w", err)
	}

	return &report, nil
}
