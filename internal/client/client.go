// Package client implements the fedi.Client interface on top of the
// internal HTTP transport.
package client

import (
	"context"
	"errors"
	"time"

	"github.com/fedikit/fedigo/internal/auth"
	"github.com/fedikit/fedigo/internal/constants"
	"github.com/fedikit/fedigo/internal/http"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// Static errors for err113 compliance.
var (
	ErrServerRequired           = errors.New("server URL is required")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
)

// Client implements the fedi.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       fedi.Logger

	// Resource clients
	accounts      fedi.AccountsClient
	statuses      fedi.StatusesClient
	timelines     fedi.TimelinesClient
	notifications fedi.NotificationsClient
	lists         fedi.ListsClient
	search        fedi.SearchClient
	instance      fedi.InstanceClient
	media         fedi.MediaClient
	apps          fedi.AppsClient
	polls         fedi.PollsClient
	reports       fedi.ReportsClient
	streaming     fedi.StreamingClient
}

// staticTokenManager serves one fixed access token.
type staticTokenManager struct {
	token string
}

func (m *staticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *staticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenCannotRefresh
}

func (m *staticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// createTokenManager picks the token manager matching the configured
// credentials. Nil means unauthenticated.
func createTokenManager(config *fedi.Config) auth.TokenManager {
	if config.AccessToken != "" {
		return &staticTokenManager{token: config.AccessToken}
	}

	if config.ClientID != "" && config.ClientSecret != "" {
		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     config.Server + "/oauth/token",
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Username:     config.Username,
			Password:     config.Password,
			RefreshToken: config.RefreshToken,
		})
	}

	return nil
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *fedi.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.Cache != nil {
		cache, err := fedi.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, err
		}

		policy := config.Cache.Policy
		if policy == nil {
			policy = fedi.DefaultCachingPolicy()
		}

		httpOpts = append(httpOpts, http.WithCache(fedi.NewCacheManager(cache, policy)))
	}

	return httpOpts, nil
}

// New creates a new API client for the configured server.
func New(ctx context.Context, config *fedi.Config) (*Client, error) {
	if config.Server == "" {
		return nil, ErrServerRequired
	}

	tokenManager := createTokenManager(config)

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(config.Server, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.Server,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTokenManager creates a client with a caller-provided token manager.
func NewWithTokenManager(config *fedi.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config.Server == "" {
		return nil, ErrServerRequired
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(config.Server, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.Server,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.accounts = NewAccountsClient(c.httpClient)
	c.statuses = NewStatusesClient(c.httpClient)
	c.timelines = NewTimelinesClient(c.httpClient)
	c.notifications = NewNotificationsClient(c.httpClient)
	c.lists = NewListsClient(c.httpClient)
	c.search = NewSearchClient(c.httpClient)
	c.instance = NewInstanceClient(c.httpClient)
	c.media = NewMediaClient(c.httpClient)
	c.apps = NewAppsClient(c.httpClient)
	c.polls = NewPollsClient(c.httpClient)
	c.reports = NewReportsClient(c.httpClient)
	c.streaming = NewStreamingClient(c.httpClient, c.logger)
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// Accounts implements fedi.Client.Accounts.
func (c *Client) Accounts() fedi.AccountsClient { return c.accounts }

// Statuses implements fedi.Client.Statuses.
func (c *Client) Statuses() fedi.StatusesClient { return c.statuses }

// Timelines implements fedi.Client.Timelines.
func (c *Client) Timelines() fedi.TimelinesClient { return c.timelines }

// Notifications implements fedi.Client.Notifications.
func (c *Client) Notifications() fedi.NotificationsClient { return c.notifications }

// Lists implements fedi.Client.Lists.
func (c *Client) Lists() fedi.ListsClient { return c.lists }

// Search implements fedi.Client.Search.
func (c *Client) Search() fedi.SearchClient { return c.search }

// Instance implements fedi.Client.Instance.
func (c *Client) Instance() fedi.InstanceClient { return c.instance }

// Media implements fedi.Client.Media.
func (c *Client) Media() fedi.MediaClient { return c.media }

// Apps implements fedi.Client.Apps.
func (c *Client) Apps() fedi.AppsClient { return c.apps }

// Polls implements fedi.Client.Polls.
func (c *Client) Polls() fedi.PollsClient { return c.polls }

// Reports implements fedi.Client.Reports.
func (c *Client) Reports() fedi.ReportsClient { return c.reports }

// Streaming implements fedi.Client.Streaming.
func (c *Client) Streaming() fedi.StreamingClient { return c.streaming }
