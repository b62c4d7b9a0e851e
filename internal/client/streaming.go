package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/fedikit/fedigo/internal/constants"
	"github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// StreamingClient implements fedi.StreamingClient. The plain constructors
// open the SSE endpoint; the Socket constructors open the WebSocket
// endpoint. Both feed the same StreamSession machinery, so handlers,
// reconnection and close semantics are identical.
type StreamingClient struct {
	httpClient *http.Client
	logger     fedi.Logger
}

// NewStreamingClient creates a new streaming client.
func NewStreamingClient(httpClient *http.Client, logger fedi.Logger) *StreamingClient {
	return &StreamingClient{httpClient: httpClient, logger: logger}
}

// User implements fedi.StreamingClient.User.
func (c *StreamingClient) User(opts ...fedi.StreamOption) *fedi.StreamSession {
	return c.sseSession("/api/v1/streaming/user", nil, opts)
}

// Public implements fedi.StreamingClient.Public.
func (c *StreamingClient) Public(local bool, opts ...fedi.StreamOption) *fedi.StreamSession {
	path := "/api/v1/streaming/public"
	if local {
		path += "/local"
	}

	return c.sseSession(path, nil, opts)
}

// Hashtag implements fedi.StreamingClient.Hashtag.
func (c *StreamingClient) Hashtag(tag string, opts ...fedi.StreamOption) *fedi.StreamSession {
	query := url.Values{}
	query.Set("tag", tag)

	return c.sseSession("/api/v1/streaming/hashtag", query, opts)
}

// List implements fedi.StreamingClient.List.
func (c *StreamingClient) List(id string, opts ...fedi.StreamOption) *fedi.StreamSession {
	query := url.Values{}
	query.Set("list", id)

	return c.sseSession("/api/v1/streaming/list", query, opts)
}

// UserSocket implements fedi.StreamingClient.UserSocket.
func (c *StreamingClient) UserSocket(opts ...fedi.StreamOption) *fedi.StreamSession {
	return c.socketSession("user", nil, opts)
}

// PublicSocket implements fedi.StreamingClient.PublicSocket.
func (c *StreamingClient) PublicSocket(local bool, opts ...fedi.StreamOption) *fedi.StreamSession {
	stream := "public"
	if local {
		stream = "public:local"
	}

	return c.socketSession(stream, nil, opts)
}

// HashtagSocket implements fedi.StreamingClient.HashtagSocket.
func (c *StreamingClient) HashtagSocket(tag string, opts ...fedi.StreamOption) *fedi.StreamSession {
	query := url.Values{}
	query.Set("tag", tag)

	return c.socketSession("hashtag", query, opts)
}

// ListSocket implements fedi.StreamingClient.ListSocket.
func (c *StreamingClient) ListSocket(id string, opts ...fedi.StreamOption) *fedi.StreamSession {
	query := url.Values{}
	query.Set("list", id)

	return c.socketSession("list", query, opts)
}

// sseSession builds an unconnected session whose opener re-reads the
// access token and re-opens the SSE endpoint on every attempt.
func (c *StreamingClient) sseSession(path string, extra url.Values, opts []fedi.StreamOption) *fedi.StreamSession {
	opener := fedi.StreamOpenerFunc(func(ctx context.Context) (fedi.FrameSource, error) {
		query := cloneValues(extra)

		token, err := c.httpClient.AccessToken(ctx)
		if err != nil {
			return nil, err
		}

		if token != "" {
			query.Set("access_token", token)
		}

		body, err := c.httpClient.OpenStream(ctx, path, query)
		if err != nil {
			return nil, err
		}

		return &sseFrameSource{body: body, decoder: fedi.NewStreamDecoder(body)}, nil
	})

	return fedi.NewStreamSession(opener, c.withLoggerOption(opts)...)
}

// socketSession builds an unconnected session over the WebSocket endpoint.
func (c *StreamingClient) socketSession(stream string, extra url.Values, opts []fedi.StreamOption) *fedi.StreamSession {
	opener := fedi.StreamOpenerFunc(func(ctx context.Context) (fedi.FrameSource, error) {
		query := cloneValues(extra)
		query.Set("stream", stream)

		token, err := c.httpClient.AccessToken(ctx)
		if err != nil {
			return nil, err
		}

		if token != "" {
			query.Set("access_token", token)
		}

		wsURL, err := websocketURL(c.httpClient.BaseURL(), query)
		if err != nil {
			return nil, err
		}

		dialer := websocket.Dialer{HandshakeTimeout: constants.StreamHandshakeTimeout}

		conn, resp, err := dialer.DialContext(ctx, wsURL, nil)
		if err != nil {
			if resp != nil {
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
				_ = resp.Body.Close()

				return nil, fedi.ClassifyResponse(resp.StatusCode, body)
			}

			return nil, fedi.ClassifyNetworkError(err)
		}

		if resp != nil {
			_ = resp.Body.Close()
		}

		return &wsFrameSource{conn: conn}, nil
	})

	return fedi.NewStreamSession(opener, c.withLoggerOption(opts)...)
}

func (c *StreamingClient) withLoggerOption(opts []fedi.StreamOption) []fedi.StreamOption {
	if c.logger == nil {
		return opts
	}

	return append([]fedi.StreamOption{fedi.WithStreamLogger(c.logger)}, opts...)
}

func cloneValues(values url.Values) url.Values {
	clone := url.Values{}
	for key, vals := range values {
		for _, v := range vals {
			clone.Add(key, v)
		}
	}

	return clone
}

// websocketURL rewrites the REST base URL to the ws/wss streaming endpoint.
func websocketURL(baseURL string, query url.Values) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	switch parsed.Scheme {
	case "https":
		parsed.Scheme = "wss"
	case "http":
		parsed.Scheme = "ws"
	}

	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + "/api/v1/streaming"
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// sseFrameSource decodes frames from one SSE connection.
type sseFrameSource struct {
	body    io.ReadCloser
	decoder *fedi.StreamDecoder
}

func (s *sseFrameSource) Next() (*fedi.EventFrame, error) {
	return s.decoder.Next()
}

func (s *sseFrameSource) Close() error {
	return s.body.Close()
}

// wsMessage is the envelope the WebSocket endpoint sends per event.
type wsMessage struct {
	Event   string `json:"event"`
	Payload string `json:"payload"`
}

// wsFrameSource reads frames from one WebSocket connection.
type wsFrameSource struct {
	conn *websocket.Conn
}

func (s *wsFrameSource) Next() (*fedi.EventFrame, error) {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("reading websocket message: %w", err)
		}

		var msg wsMessage

		err = json.Unmarshal(data, &msg)
		if err != nil {
			// Not an event envelope; skip it.
			continue
		}

		name := msg.Event
		if name == "" {
			name = fedi.DefaultEventName
		}

		return &fedi.EventFrame{Name: name, Payload: msg.Payload}, nil
	}
}

func (s *wsFrameSource) Close() error {
	_ = s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	return s.conn.Close()
}
