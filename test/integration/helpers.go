//go:build integration
// +build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/fedikit/fedigo/pkg/fedi"
	"github.com/fedikit/fedigo/pkg/fediclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Server  string
	Token   string
	Verbose bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Server:  os.Getenv("FEDI_SERVER"),
		Token:   os.Getenv("FEDI_TOKEN"),
		Verbose: os.Getenv("FEDI_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips the test when the target server is not configured
func (c *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if c.Server == "" {
		t.Skip("FEDI_SERVER not set; skipping integration test")
	}
}

// SkipIfMissingToken skips the test when no access token is configured
func (c *TestConfig) SkipIfMissingToken(t *testing.T) {
	t.Helper()

	if c.Token == "" {
		t.Skip("FEDI_TOKEN not set; skipping integration test")
	}
}

// NewClient builds a client against the configured server
func (c *TestConfig) NewClient(ctx context.Context, t *testing.T) fedi.Client {
	t.Helper()

	client, err := fediclient.New(ctx, &fedi.Config{
		Server:      c.Server,
		AccessToken: c.Token,
		Debug:       c.Verbose,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	return client
}
