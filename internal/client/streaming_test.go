package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedigo/pkg/fedi"
)

func TestStreamingClient_User(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/streaming/user", request.URL.Path)
		assert.Equal(t, "text/event-stream", request.Header.Get("Accept"))

		flusher, ok := writer.(http.Flusher)
		require.True(t, ok)

		writer.Header().Set("Content-Type", "text/event-stream")
		writer.WriteHeader(http.StatusOK)

		_, _ = writer.Write([]byte("event: update\ndata: {\"id\":\"1\"}\n\n"))
		flusher.Flush()

		<-request.Context().Done()
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	frames := make(chan fedi.EventFrame, 1)

	session := client.Streaming().User()
	session.On(fedi.EventUpdate, func(frame fedi.EventFrame) {
		frames <- frame
	})

	err := session.Connect(context.Background())
	require.NoError(t, err)

	defer session.Close()

	select {
	case frame := <-frames:
		assert.Equal(t, fedi.EventUpdate, frame.Name)
		assert.JSONEq(t, `{"id":"1"}`, frame.Payload)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for frame")
	}

	assert.Equal(t, fedi.StateOpen, session.State())
}

func TestStreamingClient_UserRejectedHandshake(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"error":"The access token is invalid"}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)
	session := client.Streaming().User()

	err := session.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, fedi.IsUnauthorized(err))
	assert.Equal(t, fedi.StateClosed, session.State())
}

func TestStreamingClient_HashtagQuery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/streaming/hashtag", request.URL.Path)
		assert.Equal(t, "golang", request.URL.Query().Get("tag"))

		flusher, ok := writer.(http.Flusher)
		require.True(t, ok)

		writer.Header().Set("Content-Type", "text/event-stream")
		writer.WriteHeader(http.StatusOK)
		flusher.Flush()

		<-request.Context().Done()
	}))
	defer server.Close()

	client := NewTestClient(server.URL)
	session := client.Streaming().Hashtag("golang")

	err := session.Connect(context.Background())
	require.NoError(t, err)

	session.Close()
}

func TestStreamingClient_UserSocket(t *testing.T) {
	t.Parallel()

	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/streaming", request.URL.Path)
		assert.Equal(t, "user", request.URL.Query().Get("stream"))

		conn, err := upgrader.Upgrade(writer, request, nil)
		require.NoError(t, err)

		defer func() { _ = conn.Close() }()

		err = conn.WriteJSON(map[string]string{
			"event":   "notification",
			"payload": `{"id":"9"}`,
		})
		require.NoError(t, err)

		// Hold the connection open until the client disconnects.
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				return
			}
		}
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	frames := make(chan fedi.EventFrame, 1)

	session := client.Streaming().UserSocket()
	session.On(fedi.EventNotification, func(frame fedi.EventFrame) {
		frames <- frame
	})

	err := session.Connect(context.Background())
	require.NoError(t, err)

	defer session.Close()

	select {
	case frame := <-frames:
		assert.Equal(t, fedi.EventNotification, frame.Name)
		assert.JSONEq(t, `{"id":"9"}`, frame.Payload)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for frame")
	}
}
