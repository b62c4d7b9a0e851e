//go:build integration
// +build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedikit/fedigo/pkg/fedi"
)

// TestReadOnlyWorkflow_PublicSurface exercises the endpoints that work
// without credentials against a live server
func TestReadOnlyWorkflow_PublicSurface(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	ctx := context.Background()
	client := config.NewClient(ctx, t)

	// 1. Server metadata
	instance, err := client.Instance().Get(ctx)
	require.NoError(t, err, "Failed to fetch instance")
	assert.NotEmpty(t, instance.URI)
	assert.NotEmpty(t, instance.Version)

	// 2. Public timeline, two pages
	pager := client.Timelines().Public(false, fedi.NewQueryParams().WithLimit(5))

	first, err := pager.Advance(ctx, nil)
	require.NoError(t, err, "Failed to fetch first public page")
	assert.NotEmpty(t, first)

	second, err := pager.Advance(ctx, nil)
	if !errors.Is(err, fedi.ErrNoMorePages) {
		require.NoError(t, err, "Failed to fetch second public page")

		// Pages should not overlap
		if len(first) > 0 && len(second) > 0 {
			assert.NotEqual(t, first[0].ID, second[0].ID)
		}
	}

	// 3. Hashtag timeline
	tagged, err := client.Timelines().Tag("introduction", fedi.NewQueryParams().WithLimit(5)).Advance(ctx, nil)
	if !errors.Is(err, fedi.ErrNoMorePages) {
		require.NoError(t, err, "Failed to fetch hashtag timeline")
	}

	_ = tagged
}

// TestAuthenticatedWorkflow_AccountJourney exercises the credentialed
// read endpoints end to end
func TestAuthenticatedWorkflow_AccountJourney(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)
	config.SkipIfMissingToken(t)

	ctx := context.Background()
	client := config.NewClient(ctx, t)

	// 1. Who am I
	account, err := client.Accounts().VerifyCredentials(ctx)
	require.NoError(t, err, "Failed to verify credentials")
	assert.NotEmpty(t, account.ID)
	assert.NotEmpty(t, account.Acct)

	// 2. Home timeline
	home, err := client.Timelines().Home(fedi.NewQueryParams().WithLimit(5)).Advance(ctx, nil)
	if !errors.Is(err, fedi.ErrNoMorePages) {
		require.NoError(t, err, "Failed to fetch home timeline")
	}

	_ = home

	// 3. Notifications
	notifications, err := client.Notifications().List(fedi.NewQueryParams().WithLimit(5)).Advance(ctx, nil)
	if !errors.Is(err, fedi.ErrNoMorePages) {
		require.NoError(t, err, "Failed to fetch notifications")
	}

	_ = notifications

	// 4. Relationships with self are well-formed
	relationships, err := client.Accounts().Relationships(ctx, []string{account.ID})
	require.NoError(t, err, "Failed to fetch relationships")
	require.Len(t, relationships, 1)
	assert.Equal(t, account.ID, relationships[0].ID)
}

// TestStreamingWorkflow_UserStream connects the credentialed user stream
// and waits briefly for the connection to settle
func TestStreamingWorkflow_UserStream(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)
	config.SkipIfMissingToken(t)

	ctx := context.Background()
	client := config.NewClient(ctx, t)

	session := client.Streaming().User()
	session.On(fedi.EventUpdate, func(frame fedi.EventFrame) {})

	require.NoError(t, session.Connect(ctx), "Failed to connect user stream")
	defer session.Close()

	assert.Equal(t, fedi.StateOpen, session.State())

	// Hold the stream open briefly; any server push during the window
	// exercises the dispatch path.
	time.Sleep(2 * time.Second)

	session.Close()
	assert.Equal(t, fedi.StateClosed, session.State())
}
