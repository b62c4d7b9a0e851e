package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fedikit/fedigo/internal/constants"
)

// Static errors.
var (
	ErrNoGrantAvailable = errors.New("no OAuth2 grant available with the configured credentials")
	ErrTokenRequest     = errors.New("token request failed")
)

// OAuth2Config configures the OAuth2 token manager. Mastodon-compatible
// servers accept the password, client_credentials, and refresh_token grants
// at <server>/oauth/token with the client identified by form fields.
type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	RefreshToken string
	Scopes       string

	// AccessToken seeds the manager with an existing token.
	AccessToken string

	// HTTPClient overrides the client used for token requests.
	HTTPClient *http.Client
}

// OAuth2TokenManager obtains and refreshes tokens from the token endpoint.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	httpClient *http.Client
	store      tokenStore
}

// NewOAuth2TokenManager creates a token manager for the given config.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}

	manager := &OAuth2TokenManager{
		config:     config,
		httpClient: httpClient,
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{AccessToken: config.AccessToken})
	}

	return manager
}

// GetToken returns a valid access token, fetching or refreshing as needed.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	err := m.RefreshToken(ctx)
	if err != nil {
		return "", err
	}

	return m.store.Get().AccessToken, nil
}

// RefreshToken obtains a fresh token using the best available grant:
// refresh_token when one is held, then password, then client_credentials.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("client_id", m.config.ClientID)
	form.Set("client_secret", m.config.ClientSecret)

	if m.config.Scopes != "" {
		form.Set("scope", m.config.Scopes)
	}

	refreshToken := m.config.RefreshToken
	if current := m.store.Get(); current != nil && current.RefreshToken != "" {
		refreshToken = current.RefreshToken
	}

	switch {
	case refreshToken != "":
		form.Set("grant_type", "refresh_token")
		form.Set("refresh_token", refreshToken)
	case m.config.Username != "" && m.config.Password != "":
		form.Set("grant_type", "password")
		form.Set("username", m.config.Username)
		form.Set("password", m.config.Password)
	case m.config.ClientID != "":
		form.Set("grant_type", "client_credentials")
	default:
		return ErrNoGrantAvailable
	}

	token, err := m.requestToken(ctx, form)
	if err != nil {
		return err
	}

	m.store.Set(token)

	return nil
}

// SetToken replaces the current token.
func (m *OAuth2TokenManager) SetToken(tokenValue string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: tokenValue,
		ExpiresAt:   expiresAt,
	})
}

// CurrentToken returns the held token, or nil. Used by callers that
// persist tokens across runs.
func (m *OAuth2TokenManager) CurrentToken() *Token {
	return m.store.Get()
}

// requestToken posts the grant form and decodes the token response.
func (m *OAuth2TokenManager) requestToken(ctx context.Context, form url.Values) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting token request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrTokenRequest, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var token Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	return &token, nil
}
