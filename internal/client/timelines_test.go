package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedigo/pkg/fedi"
)

func TestTimelinesClient_Home(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/timelines/home", request.URL.Path)
		assert.Equal(t, "40", request.URL.Query().Get("limit"))

		_ = json.NewEncoder(writer).Encode([]fedi.Status{{ID: "2"}, {ID: "1"}})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)
	pager := client.Timelines().Home(fedi.NewQueryParams().WithLimit(40))

	statuses, err := pager.Advance(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "2", statuses[0].ID)

	// No Link header: the linkless page was returned, the next call ends.
	_, err = pager.Advance(context.Background(), nil)
	require.ErrorIs(t, err, fedi.ErrNoMorePages)
}

func TestTimelinesClient_PublicLocal(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/timelines/public", request.URL.Path)
		assert.Equal(t, "true", request.URL.Query().Get("local"))

		_ = json.NewEncoder(writer).Encode([]fedi.Status{})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	_, err := client.Timelines().Public(true, nil).Advance(context.Background(), nil)
	require.NoError(t, err)
}

func TestTimelinesClient_Tag(t *testing.T) {
	t.Parallel()

	server := newJSONServer(t, "GET", "/api/v1/timelines/tag/golang", http.StatusOK, []fedi.Status{{ID: "7"}})
	defer server.Close()

	client := NewTestClient(server.URL)

	statuses, err := client.Timelines().Tag("golang", nil).Advance(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "7", statuses[0].ID)
}

func TestTimelinesClient_HomeUnauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"error":"The access token is invalid"}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)
	pager := client.Timelines().Home(nil)

	_, err := pager.Advance(context.Background(), nil)
	require.Error(t, err)

	var apiErr *fedi.APIError

	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fedi.ErrorKindUnauthorized, apiErr.Kind)
	assert.Equal(t, "The access token is invalid", apiErr.Message)

	// The cursor survives a failed fetch; the pager is still usable.
	assert.True(t, pager.HasNext())
}
