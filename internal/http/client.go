// Package http implements the transport underneath every resource client:
// one JSON request/response round-trip with classification of failures,
// plus the long-lived byte stream used by streaming sessions.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fedikit/fedigo/internal/auth"
	"github.com/fedikit/fedigo/internal/constants"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// Request represents an HTTP request to the API.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an HTTP response from the API.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Logger matches fedi.Logger; declared here so the transport does not
// depend on the public package for its option surface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Option configures the Client.
type Option func(*Client)

// WithLogger attaches a logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the attached logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetryConfig enables retries for transient failures (429 and 5xx).
// Retries are off by default; backoff policy belongs to the caller.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithCache attaches a response cache. Only GET responses without a Link
// header are cached: pagination depends on that header, which a cache hit
// cannot reproduce.
func WithCache(manager *fedi.CacheManager) Option {
	return func(c *Client) {
		c.cache = manager
	}
}

// WithInterceptors attaches an interceptor chain executed around every
// request.
func WithInterceptors(chain *fedi.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// Client issues requests against one server.
type Client struct {
	baseURL      string
	tokenManager auth.TokenManager
	logger       Logger
	debug        bool
	userAgent    string
	timeout      time.Duration
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	cache        *fedi.CacheManager
	interceptors *fedi.InterceptorChain

	httpClient   *http.Client
	streamClient *http.Client
}

// NewClient creates a transport for the given base URL. tokenManager may be
// nil for unauthenticated use.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		userAgent:    "fedigo/1.0",
		timeout:      constants.DefaultHTTPTimeout,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = client.retryMax
	retryClient.RetryWaitMin = client.retryWaitMin
	retryClient.RetryWaitMax = client.retryWaitMax
	retryClient.HTTPClient.Timeout = client.timeout
	retryClient.Logger = nil

	client.httpClient = retryClient.StandardClient()

	// Streaming connections stay open indefinitely; no client timeout.
	client.streamClient = &http.Client{}

	return client
}

// BaseURL returns the normalized server base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AccessToken returns the current bearer token, or "" when the client is
// unauthenticated. Streaming sessions use it as a query parameter.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", nil
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("getting access token: %w", err)
	}

	return token, nil
}

// resolveURL builds the absolute request URL. An absolute pathOrURL (a
// navigation link) is used as-is; query values are merged into whatever
// the URL already carries.
func (c *Client) resolveURL(pathOrURL string, query url.Values) (string, error) {
	raw := pathOrURL
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = c.baseURL + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing request URL: %w", err)
	}

	if len(query) > 0 {
		merged := parsed.Query()
		for key, values := range query {
			for _, v := range values {
				merged.Add(key, v)
			}
		}

		parsed.RawQuery = merged.Encode()
	}

	return parsed.String(), nil
}

// Do executes one request. A status >= 400 returns both the response and a
// classified error; a network-level failure returns a Generic classified
// error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL, err := c.resolveURL(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var bodyBytes []byte

	if req.Body != nil {
		if raw, ok := req.Body.([]byte); ok {
			bodyBytes = raw
		} else {
			bodyBytes, err = json.Marshal(req.Body)
			if err != nil {
				return nil, fmt.Errorf("encoding request body: %w", err)
			}
		}
	}

	cacheKey := c.cacheKey(req)
	if cacheKey != "" {
		if data, cacheErr := c.cache.Get(ctx, cacheKey); cacheErr == nil {
			return &Response{StatusCode: http.StatusOK, Headers: http.Header{}, Body: data}, nil
		}
	}

	httpReq, err := c.buildRequest(ctx, req, fullURL, bodyBytes)
	if err != nil {
		return nil, err
	}

	if c.interceptors != nil {
		intercepted := &fedi.InterceptedRequest{
			Method:  req.Method,
			Path:    req.Path,
			Headers: httpReq.Header,
			Body:    bodyBytes,
		}

		err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fedi.ClassifyNetworkError(err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fedi.ClassifyNetworkError(err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
		})
	}

	var respErr error
	if resp.StatusCode >= 400 {
		respErr = fedi.ClassifyResponse(resp.StatusCode, respBody)
	}

	if c.interceptors != nil {
		intercepted := &fedi.InterceptedRequest{Method: req.Method, Path: req.Path, Headers: httpReq.Header}
		observed := &fedi.InterceptedResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
			Error:      respErr,
		}

		err = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, observed)
		if err != nil {
			return resp, err
		}
	}

	if respErr != nil {
		return resp, respErr
	}

	if cacheKey != "" && resp.Headers.Get("Link") == "" {
		ttl := constants.DefaultCacheTTL
		if policy := c.cache.Policy(); policy != nil && policy.DefaultTTL > 0 {
			ttl = policy.DefaultTTL
		}

		_ = c.cache.SetWithETag(ctx, cacheKey, respBody, resp.Headers.Get("ETag"), ttl)
	}

	return resp, nil
}

// cacheKey returns the cache key for req, or "" when the request is not
// cacheable.
func (c *Client) cacheKey(req *Request) string {
	if c.cache == nil || req.Method != http.MethodGet {
		return ""
	}

	if !c.cache.Policy().ShouldCache(req.Method, req.Path, http.StatusOK) {
		return ""
	}

	params := make(map[string]string, len(req.Query))
	for key := range req.Query {
		params[key] = req.Query.Get(key)
	}

	return c.cache.GetCacheKey(req.Method, req.Path, params)
}

// buildRequest assembles the raw http.Request with standard headers and
// authentication.
func (c *Client) buildRequest(ctx context.Context, req *Request, fullURL string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return httpReq, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// GetPage implements fedi.PageGetter: one pagination fetch returning the
// raw body plus headers so the pager can follow the Link header.
func (c *Client) GetPage(ctx context.Context, pathOrURL string, query url.Values) ([]byte, http.Header, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: pathOrURL, Query: query})
	if err != nil {
		return nil, nil, err
	}

	return resp.Body, resp.Headers, nil
}

// PostMultipart uploads a file with optional extra form fields.
func (c *Client) PostMultipart(ctx context.Context, path, fieldName, filename string, file io.Reader, fields map[string]string) (*Response, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		return nil, fmt.Errorf("creating multipart field: %w", err)
	}

	_, err = io.Copy(part, file)
	if err != nil {
		return nil, fmt.Errorf("copying upload body: %w", err)
	}

	for key, value := range fields {
		err = writer.WriteField(key, value)
		if err != nil {
			return nil, fmt.Errorf("writing form field: %w", err)
		}
	}

	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	return c.Do(ctx, &Request{
		Method:  http.MethodPost,
		Path:    path,
		Body:    buf.Bytes(),
		Headers: map[string]string{"Content-Type": writer.FormDataContentType()},
	})
}

// OpenStream opens the long-lived SSE connection at path. The caller owns
// the returned body. A non-200 handshake is classified and the connection
// closed.
func (c *Client) OpenStream(ctx context.Context, path string, query url.Values) (io.ReadCloser, error) {
	fullURL, err := c.resolveURL(path, query)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating stream request: %w", err)
	}

	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.streamClient.Do(httpReq)
	if err != nil {
		return nil, fedi.ClassifyNetworkError(err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()

		return nil, fedi.ClassifyResponse(resp.StatusCode, body)
	}

	return resp.Body, nil
}
