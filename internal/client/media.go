package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// MediaClient implements fedi.MediaClient.
type MediaClient struct {
	httpClient *http.Client
}

// NewMediaClient creates a new media client.
func NewMediaClient(httpClient *http.Client) *MediaClient {
	return &MediaClient{httpClient: httpClient}
}

// Upload implements fedi.MediaClient.Upload.
func (c *MediaClient) Upload(ctx context.Context, file io.Reader, filename string, description string) (*fedi.Attachment, error) {
	fields := map[string]string{}
	if description != "" {
		fields["description"] = description
	}

	resp, err := c.httpClient.PostMultipart(ctx, "/api/v1/media", "file", filename, file, fields)
	if err != nil {
		return nil, fmt.Errorf("uploading media: %w", err)
	}

	return parseAttachment(resp.Body)
}

// Update implements fedi.MediaClient.Update.
func (c *MediaClient) Update(ctx context.Context, id string, request *fedi.MediaUpdateRequest) (*fedi.Attachment, error) {
	resp, err := c.httpClient.Put(ctx, "/api/v1/media/"+id, request)
	if err != nil {
		return nil, fmt.Errorf("updating media: %w", err)
	}

	return parseAttachment(resp.Body)
}

func parseAttachment(body []byte) (*fedi.Attachment, error) {
	var attachment fedi.Attachment

	err := json.Unmarshal(body, &attachment)
	if err != nil {
		return nil, fmt.Errorf("parsing attachment response: %w", err)
	}

	return &attachment, nil
}
