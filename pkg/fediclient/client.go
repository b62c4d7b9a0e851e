// Package fediclient provides the main entry point for creating API clients
// for Mastodon-compatible servers.
package fediclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fedikit/fedigo/internal/client"
	"github.com/fedikit/fedigo/pkg/fedi"
)

// New creates a client for the server named in config.
//
// The server URL is normalized: a trailing slash is trimmed and "https://"
// is assumed when no scheme is present.
func New(ctx context.Context, config *fedi.Config) (fedi.Client, error) {
	if config == nil {
		return nil, fedi.ErrConfigRequired
	}

	if config.Server == "" {
		return nil, fedi.ErrServerRequired
	}

	server := strings.TrimSuffix(config.Server, "/")
	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "https://" + server
	}

	config.Server = server

	fediClient, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return fediClient, nil
}

// NewWithServer creates an unauthenticated client; only public endpoints
// will succeed.
func NewWithServer(ctx context.Context, server string) (fedi.Client, error) {
	return New(ctx, &fedi.Config{Server: server})
}

// NewWithToken creates a client authenticated with a static access token.
func NewWithToken(ctx context.Context, server, accessToken string) (fedi.Client, error) {
	return New(ctx, &fedi.Config{
		Server:      server,
		AccessToken: accessToken,
	})
}

// NewWithPassword creates a client that obtains tokens through the OAuth2
// password grant.
func NewWithPassword(ctx context.Context, server, clientID, clientSecret, username, password string) (fedi.Client, error) {
	return New(ctx, &fedi.Config{
		Server:       server,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Username:     username,
		Password:     password,
	})
}

// NewWithClientCredentials creates a client that obtains app-level tokens
// through the client_credentials grant.
func NewWithClientCredentials(ctx context.Context, server, clientID, clientSecret string) (fedi.Client, error) {
	return New(ctx, &fedi.Config{
		Server:       server,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}
