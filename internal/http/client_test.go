package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	fedihttp "github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTokenManager for testing.
type MockTokenManager struct {
	token string
	err   error
}

func (m *MockTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, m.err
}

func (m *MockTokenManager) RefreshToken(ctx context.Context) error {
	return nil
}

func (m *MockTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/accounts/verify_credentials", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			response := map[string]string{"id": "1", "username": "alice"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "test-token"}
		client := fedihttp.NewClient(server.URL, tokenManager)

		req := &fedihttp.Request{
			Method: "GET",
			Path:   "/api/v1/accounts/verify_credentials",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var account map[string]string

		err = json.Unmarshal(resp.Body, &account)
		require.NoError(t, err)
		assert.Equal(t, "alice", account["username"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "40", request.URL.Query().Get("limit"))
			assert.Equal(t, "12345", request.URL.Query().Get("max_id"))
			_, _ = writer.Write([]byte("[]"))
		}))
		defer server.Close()

		client := fedihttp.NewClient(server.URL, nil)

		query := url.Values{}
		query.Set("limit", "40")
		query.Set("max_id", "12345")

		resp, err := client.Get(context.Background(), "/api/v1/timelines/home", query)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("request with JSON body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			err := json.NewDecoder(request.Body).Decode(&body)
			require.NoError(t, err)
			assert.Equal(t, "hello world", body["status"])

			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte(`{"id":"1"}`))
		}))
		defer server.Close()

		client := fedihttp.NewClient(server.URL, nil)

		resp, err := client.Post(context.Background(), "/api/v1/statuses", map[string]string{"status": "hello world"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("error response is classified and returned with response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"error":"Record not found"}`))
		}))
		defer server.Close()

		client := fedihttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/api/v1/statuses/999", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.True(t, fedi.IsNotFound(err))

		var apiErr *fedi.APIError

		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Record not found", apiErr.Message)
	})

	t.Run("token manager failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			t.Error("request should not reach server")
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{err: errors.New("token expired")}
		client := fedihttp.NewClient(server.URL, tokenManager)

		_, err := client.Get(context.Background(), "/api/v1/timelines/home", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token expired")
	})

	t.Run("network failure is classified generic", func(t *testing.T) {
		t.Parallel()

		client := fedihttp.NewClient("http://127.0.0.1:1", nil,
			fedihttp.WithTimeout(500*time.Millisecond))

		_, err := client.Get(context.Background(), "/api/v1/instance", nil)
		require.Error(t, err)

		var apiErr *fedi.APIError

		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, fedi.ErrorKindGeneric, apiErr.Kind)
	})

	t.Run("absolute URL bypasses base URL", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/timelines/home", request.URL.Path)
			assert.Equal(t, "9999", request.URL.Query().Get("max_id"))
			_, _ = writer.Write([]byte("[]"))
		}))
		defer server.Close()

		client := fedihttp.NewClient("http://base-url.invalid", nil)

		resp, err := client.Get(context.Background(), server.URL+"/api/v1/timelines/home?max_id=9999", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestClient_HTTPMethods(t *testing.T) {
	t.Parallel()

	methods := []struct {
		name string
		call func(client *fedihttp.Client) (*fedihttp.Response, error)
		want string
	}{
		{
			name: "put",
			call: func(client *fedihttp.Client) (*fedihttp.Response, error) {
				return client.Put(context.Background(), "/api/v1/lists/1", map[string]string{"title": "reading"})
			},
			want: "PUT",
		},
		{
			name: "patch",
			call: func(client *fedihttp.Client) (*fedihttp.Response, error) {
				return client.Patch(context.Background(), "/api/v1/accounts/update_credentials", map[string]string{"note": "hi"})
			},
			want: "PATCH",
		},
		{
			name: "delete",
			call: func(client *fedihttp.Client) (*fedihttp.Response, error) {
				return client.Delete(context.Background(), "/api/v1/statuses/1")
			},
			want: "DELETE",
		},
	}

	for _, testCase := range methods {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var gotMethod string

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				gotMethod = request.Method
				_, _ = writer.Write([]byte("{}"))
			}))
			defer server.Close()

			client := fedihttp.NewClient(server.URL, nil)

			_, err := testCase.call(client)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, gotMethod)
		})
	}
}

func TestClient_GetPage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Link", `<`+`http://example.test/api/v1/timelines/home?max_id=100`+`>; rel="next"`)
		_, _ = writer.Write([]byte(`[{"id":"101"}]`))
	}))
	defer server.Close()

	client := fedihttp.NewClient(server.URL, nil)

	body, header, err := client.GetPage(context.Background(), "/api/v1/timelines/home", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"101"}]`, string(body))

	links := fedi.LinksFromHeader(header)
	assert.Equal(t, "http://example.test/api/v1/timelines/home?max_id=100", links.Next)
}

func TestClient_Cache(t *testing.T) {
	t.Parallel()

	t.Run("GET without Link header is served from cache", func(t *testing.T) {
		t.Parallel()

		var hits int

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			hits++

			_, _ = writer.Write([]byte(`{"id":"1","username":"alice"}`))
		}))
		defer server.Close()

		manager := fedi.NewCacheManager(fedi.NewMemoryCache(10), fedi.DefaultCachingPolicy())
		client := fedihttp.NewClient(server.URL, nil, fedihttp.WithCache(manager))

		for i := 0; i < 2; i++ {
			resp, err := client.Get(context.Background(), "/api/v1/accounts/1", nil)
			require.NoError(t, err)
			assert.JSONEq(t, `{"id":"1","username":"alice"}`, string(resp.Body))
		}

		assert.Equal(t, 1, hits)
	})

	t.Run("paginated response is not cached", func(t *testing.T) {
		t.Parallel()

		var hits int

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			hits++

			writer.Header().Set("Link", `<http://example.test/next>; rel="next"`)
			_, _ = writer.Write([]byte(`[]`))
		}))
		defer server.Close()

		manager := fedi.NewCacheManager(fedi.NewMemoryCache(10), fedi.DefaultCachingPolicy())
		client := fedihttp.NewClient(server.URL, nil, fedihttp.WithCache(manager))

		for i := 0; i < 2; i++ {
			_, err := client.Get(context.Background(), "/api/v1/timelines/public", nil)
			require.NoError(t, err)
		}

		assert.Equal(t, 2, hits)
	})
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "custom-value", request.Header.Get("X-Custom"))
		_, _ = writer.Write([]byte("{}"))
	}))
	defer server.Close()

	chain := fedi.NewInterceptorChain()
	chain.AddRequestInterceptor(fedi.HeaderInterceptor(map[string]string{"X-Custom": "custom-value"}))

	var observedStatus int

	chain.AddResponseInterceptor(func(ctx context.Context, req *fedi.InterceptedRequest, resp *fedi.InterceptedResponse) error {
		observedStatus = resp.StatusCode

		return nil
	})

	client := fedihttp.NewClient(server.URL, nil, fedihttp.WithInterceptors(chain))

	_, err := client.Get(context.Background(), "/api/v1/instance", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, observedStatus)
}

func TestClient_OpenStream(t *testing.T) {
	t.Parallel()

	t.Run("successful handshake", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "text/event-stream", request.Header.Get("Accept"))
			assert.Equal(t, "secret", request.URL.Query().Get("access_token"))

			writer.Header().Set("Content-Type", "text/event-stream")
			_, _ = writer.Write([]byte("event: update\ndata: {}\n\n"))
		}))
		defer server.Close()

		client := fedihttp.NewClient(server.URL, nil)

		query := url.Values{}
		query.Set("access_token", "secret")

		body, err := client.OpenStream(context.Background(), "/api/v1/streaming/user", query)
		require.NoError(t, err)

		defer func() { _ = body.Close() }()

		line, err := bufio.NewReader(body).ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, "event: update", strings.TrimSpace(line))
	})

	t.Run("rejected handshake is classified", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"error":"The access token is invalid"}`))
		}))
		defer server.Close()

		client := fedihttp.NewClient(server.URL, nil)

		_, err := client.OpenStream(context.Background(), "/api/v1/streaming/user", nil)
		require.Error(t, err)
		assert.True(t, fedi.IsUnauthorized(err))
	})
}
