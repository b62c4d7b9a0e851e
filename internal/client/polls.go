package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// PollsClient implements fedi.PollsClient.
type PollsClient struct {
	httpClient *http.Client
}

// NewPollsClient creates a new polls client.
func NewPollsClient(httpClient *http.Client) *PollsClient {
	return &PollsClient{httpClient: httpClient}
}

// Get implements fedi.PollsClient.Get.
func (c *PollsClient) Get(ctx context.Context, id string) (*fedi.Poll, error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/polls/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting poll: %w", err)
	}

	return parsePoll(resp.Body)
}

// Vote implements fedi.PollsClient.Vote.
func (c *PollsClient) Vote(ctx context.Context, id string, choices []int) (*fedi.Poll, error) {
	body := &fedi.PollVoteRequest{Choices: choices}

	resp, err := c.httpClient.Post(ctx, "/api/v1/polls/"+id+"/votes", body)
	if err != nil {
		return nil, fmt.Errorf("voting in poll: %w", err)
	}

	return parsePoll(resp.Body)
}

func parsePoll(body []byte) (*fedi.Poll, error) {
	var poll fedi.Poll

	err := json.Unmarshal(body, &poll)
	if err != nil {
		return nil, fmt.Errorf("parsing poll response: %w", err)
	}

	return &poll, nil
}
