package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	internalhttp "github.com/fedikit/fedigo/internal/http"
)

// NewTestClient creates a client without authentication for testing.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}

	client.initializeResourceClients()

	return client
}

// newJSONServer starts a test server that answers every request with the
// given status and JSON body after asserting method and path.
func newJSONServer(t *testing.T, method, path string, status int, body interface{}) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != method {
			t.Errorf("expected method %s, got %s", method, request.Method)
		}

		if request.URL.Path != path {
			t.Errorf("expected path %s, got %s", path, request.URL.Path)
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_ = json.NewEncoder(writer).Encode(body)
	}))
}
