package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedigo/pkg/fedi"
)

func TestAccountsClient_Get(t *testing.T) {
	t.Parallel()

	server := newJSONServer(t, "GET", "/api/v1/accounts/1", http.StatusOK, &fedi.Account{
		ID:       "1",
		Username: "alice",
		Acct:     "alice@mastodon.example",
	})
	defer server.Close()

	client := NewTestClient(server.URL)

	account, err := client.Accounts().Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
	assert.Equal(t, "alice@mastodon.example", account.Acct)
}

func TestAccountsClient_GetNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"error":"Record not found"}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	_, err := client.Accounts().Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, fedi.IsNotFound(err))
}

func TestAccountsClient_Follow(t *testing.T) {
	t.Parallel()

	server := newJSONServer(t, "POST", "/api/v1/accounts/1/follow", http.StatusOK, &fedi.Relationship{
		ID:        "1",
		Following: true,
	})
	defer server.Close()

	client := NewTestClient(server.URL)

	relationship, err := client.Accounts().Follow(context.Background(), "1", nil)
	require.NoError(t, err)
	assert.True(t, relationship.Following)
}

func TestAccountsClient_Relationships(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/accounts/relationships", request.URL.Path)
		assert.Equal(t, []string{"1", "2"}, request.URL.Query()["id[]"])

		_ = json.NewEncoder(writer).Encode([]fedi.Relationship{{ID: "1"}, {ID: "2"}})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	relationships, err := client.Accounts().Relationships(context.Background(), []string{"1", "2"})
	require.NoError(t, err)
	assert.Len(t, relationships, 2)
}

func TestAccountsClient_FollowersPagination(t *testing.T) {
	t.Parallel()

	var server *httptest.Server

	server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Query().Get("max_id") == "" {
			writer.Header().Set("Link", "<"+server.URL+"/api/v1/accounts/1/followers?max_id=2>; rel=\"next\"")
			_ = json.NewEncoder(writer).Encode([]fedi.Account{{ID: "3"}, {ID: "2"}})

			return
		}

		_ = json.NewEncoder(writer).Encode([]fedi.Account{{ID: "1"}})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	followers, err := client.Accounts().Followers("1", nil).All(context.Background())
	require.NoError(t, err)
	require.Len(t, followers, 3)
	assert.Equal(t, "3", followers[0].ID)
	assert.Equal(t, "1", followers[2].ID)
}
